package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/adwski/binarytrees/internal/batch"
	"github.com/adwski/binarytrees/internal/logger"
	"github.com/adwski/binarytrees/internal/tree"
)

const (
	// Every batch is split into this many parts per worker,
	// so a slow part does not leave other workers idle for long.
	partsPerWorker = 4
)

var (
	ErrScheduler = errors.New("cannot create scheduler")

	// makeCheck is a single task, replaced in tests.
	makeCheck = tree.MakeCheck
)

type (
	// Scheduler runs iterations of build-and-check at given depth
	// and returns sum of their checksums.
	Scheduler interface {
		Sum(ctx context.Context, iterations, depth int) (int, error)
		Close() error
	}

	Config struct {
		Logger logger.Logger

		// Workers is the worker pool size.
		// 1 or less means sequential evaluation.
		Workers uint

		// ChunkSize is the maximum amount of tasks in one batch.
		// Must be even.
		ChunkSize uint
	}
)

// New creates parallel scheduler if more than one worker is configured,
// and sequential scheduler otherwise.
func New(ctx context.Context, cfg Config) (Scheduler, error) {
	if err := batch.ValidateChunkSize(int(cfg.ChunkSize)); err != nil {
		return nil, errors.Join(ErrScheduler, err)
	}

	if cfg.Workers > 1 {
		return NewParallel(ctx, cfg), nil
	}

	return NewSequential(cfg), nil
}

func sumBatch(b batch.Batch) int {
	sum := 0
	for _, task := range b {
		sum += makeCheck(task.Depth)
	}
	return sum
}

func levelError(depth int, err error) error {
	return fmt.Errorf("trees of depth %d: %w", depth, err)
}
