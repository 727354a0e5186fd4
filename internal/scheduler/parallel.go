package scheduler

import (
	"context"

	"github.com/adwski/binarytrees/internal/batch"
	"github.com/adwski/binarytrees/internal/logger"
	"github.com/adwski/binarytrees/internal/pool"
)

// Parallel dispatches batches across a fixed-size worker pool.
// Pool is created once and reused for every Sum call until Close.
type Parallel struct {
	logger    logger.Logger
	pool      *pool.Pool[int]
	chunkSize int
	parts     int
}

func NewParallel(ctx context.Context, cfg Config) *Parallel {
	p := pool.New[int](ctx, pool.Config{
		Logger:   cfg.Logger,
		PoolSize: cfg.Workers,
	})

	return &Parallel{
		logger:    cfg.Logger,
		pool:      p,
		chunkSize: int(cfg.ChunkSize),
		parts:     int(p.Size()) * partsPerWorker,
	}
}

func (s *Parallel) Sum(ctx context.Context, iterations, depth int) (int, error) {
	batches, err := batch.Partition(iterations, depth, s.chunkSize)
	if err != nil {
		return 0, levelError(depth, err)
	}

	var (
		sum     int
		collect = func(v int) { sum += v }
	)
	for b := range batches {
		// Batch is only valid until next iteration,
		// Map returns after every part is processed.
		parts := b.Split(s.parts)
		if err = s.pool.Map(ctx, len(parts), func(i int) int {
			return sumBatch(parts[i])
		}, collect); err != nil {
			return 0, levelError(depth, err)
		}
	}

	s.logger.DebugFunc(func() (string, []any) {
		return "parallel level done", []any{
			"depth", depth,
			"iterations", iterations,
			"batches", batch.Count(iterations, s.chunkSize),
			"workers", s.pool.Size(),
			"completed", s.pool.Completed(),
		}
	})

	return sum, nil
}

func (s *Parallel) Workers() uint {
	return s.pool.Size()
}

func (s *Parallel) Close() error {
	return s.pool.Close() //nolint:wrapcheck // no need
}
