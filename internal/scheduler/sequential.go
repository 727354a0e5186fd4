package scheduler

import (
	"context"

	"github.com/adwski/binarytrees/internal/batch"
	localErrs "github.com/adwski/binarytrees/internal/errors"
	"github.com/adwski/binarytrees/internal/logger"
)

// Sequential evaluates every task in the calling goroutine.
type Sequential struct {
	logger    logger.Logger
	chunkSize int
}

func NewSequential(cfg Config) *Sequential {
	return &Sequential{
		logger:    cfg.Logger,
		chunkSize: int(cfg.ChunkSize),
	}
}

func (s *Sequential) Sum(ctx context.Context, iterations, depth int) (int, error) {
	batches, err := batch.Partition(iterations, depth, s.chunkSize)
	if err != nil {
		return 0, levelError(depth, err)
	}

	sum := 0
	for b := range batches {
		// cancellation is checked once per batch
		if err = ctx.Err(); err != nil {
			return 0, levelError(depth, err)
		}
		var part int
		if part, err = s.sumBatch(b); err != nil {
			return 0, levelError(depth, err)
		}
		sum += part
	}

	s.logger.Trace("sequential level done", "depth", depth, "iterations", iterations)

	return sum, nil
}

// sumBatch recovers task panic the same way pool workers do.
func (s *Sequential) sumBatch(b batch.Batch) (sum int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = localErrs.NewWorkerFailure(0, r)
			s.logger.Error("task panicked", "error", err)
		}
	}()

	return sumBatch(b), nil
}

func (s *Sequential) Close() error {
	return nil
}
