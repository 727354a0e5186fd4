package scheduler

import (
	"context"
	"testing"

	"github.com/adwski/binarytrees/internal/batch"
	localErrs "github.com/adwski/binarytrees/internal/errors"
	"github.com/adwski/binarytrees/internal/logger"
	"github.com/adwski/binarytrees/internal/logger/noop"
	"github.com/adwski/binarytrees/internal/pool"
	"github.com/adwski/binarytrees/internal/tree"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T, workers, chunkSize uint) Scheduler {
	t.Helper()

	s, err := New(context.Background(), Config{
		Logger:    logger.New(noop.NewLogger()),
		Workers:   workers,
		ChunkSize: chunkSize,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestNew_Kind(t *testing.T) {
	assert.IsType(t, &Sequential{}, newScheduler(t, 0, batch.DefaultChunkSize))
	assert.IsType(t, &Sequential{}, newScheduler(t, 1, batch.DefaultChunkSize))

	s := newScheduler(t, 3, batch.DefaultChunkSize)
	require.IsType(t, &Parallel{}, s)
	assert.Equal(t, uint(3), s.(*Parallel).Workers())
}

func TestNew_InvalidChunkSize(t *testing.T) {
	for _, chunkSize := range []uint{0, 1, 4999} {
		_, err := New(context.Background(), Config{
			Logger:    logger.New(noop.NewLogger()),
			Workers:   2,
			ChunkSize: chunkSize,
		})
		assert.ErrorIs(t, err, ErrScheduler)
		assert.ErrorIs(t, err, batch.ErrChunkSize)
	}
}

func TestSum_DepthLevels(t *testing.T) {
	// n=4: max depth 6, min depth 4
	for _, workers := range []uint{1, 4} {
		s := newScheduler(t, workers, batch.DefaultChunkSize)

		sum, err := s.Sum(context.Background(), 64, 4)
		require.NoError(t, err)
		assert.Equal(t, 1984, sum)

		sum, err = s.Sum(context.Background(), 16, 6)
		require.NoError(t, err)
		assert.Equal(t, 2032, sum)
	}
}

func TestSum_Zero(t *testing.T) {
	for _, workers := range []uint{1, 2} {
		sum, err := newScheduler(t, workers, 2).Sum(context.Background(), 0, 8)
		require.NoError(t, err)
		assert.Equal(t, 0, sum)
	}
}

func TestSum_SequentialEqualsParallel(t *testing.T) {
	for range 30 {
		var (
			iterations = gofakeit.IntRange(1, 3000)
			depth      = gofakeit.IntRange(0, 8)
			chunkSize  = uint(2 * gofakeit.IntRange(1, 600))
			workers    = uint(gofakeit.IntRange(2, 8))
		)

		seq, err := newScheduler(t, 1, chunkSize).Sum(context.Background(), iterations, depth)
		require.NoError(t, err)

		par, err := newScheduler(t, workers, chunkSize).Sum(context.Background(), iterations, depth)
		require.NoError(t, err)

		assert.Equal(t, iterations*tree.Checksum(depth), seq,
			"iterations=%d depth=%d chunk=%d", iterations, depth, chunkSize)
		assert.Equal(t, seq, par,
			"iterations=%d depth=%d chunk=%d workers=%d", iterations, depth, chunkSize, workers)
	}
}

func TestSum_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []uint{1, 2} {
		_, err := newScheduler(t, workers, 2).Sum(ctx, 100, 4)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, err.Error(), "trees of depth 4")
	}
}

func TestSum_TaskPanic(t *testing.T) {
	makeCheck = func(depth int) int {
		if depth == 6 {
			panic("out of memory")
		}
		return tree.MakeCheck(depth)
	}
	t.Cleanup(func() {
		makeCheck = tree.MakeCheck
	})

	for _, workers := range []uint{1, 2} {
		s := newScheduler(t, workers, 4)

		sum, err := s.Sum(context.Background(), 16, 4)
		require.NoError(t, err)
		assert.Equal(t, 16*tree.Checksum(4), sum)

		sum, err = s.Sum(context.Background(), 16, 6)
		require.Error(t, err, "workers: %d", workers)
		assert.ErrorIs(t, err, localErrs.WorkerFailureError{})
		assert.Contains(t, err.Error(), "trees of depth 6")
		assert.Contains(t, err.Error(), "out of memory")
		assert.Zero(t, sum)

		// scheduler stays usable after failed level
		sum, err = s.Sum(context.Background(), 2, 4)
		require.NoError(t, err)
		assert.Equal(t, 2*tree.Checksum(4), sum)
	}
}

func TestParallel_Closed(t *testing.T) {
	s := newScheduler(t, 2, batch.DefaultChunkSize)
	require.NoError(t, s.Close())

	_, err := s.Sum(context.Background(), 10, 4)
	assert.ErrorIs(t, err, pool.ErrPoolClosed)
}

func BenchmarkSum(b *testing.B) {
	for name, workers := range map[string]uint{"sequential": 1, "parallel": 0} {
		b.Run(name, func(b *testing.B) {
			var s Scheduler = NewSequential(Config{
				Logger:    logger.New(noop.NewLogger()),
				ChunkSize: batch.DefaultChunkSize,
			})
			if workers != 1 {
				s = NewParallel(context.Background(), Config{
					Logger:    logger.New(noop.NewLogger()),
					ChunkSize: batch.DefaultChunkSize,
				})
			}
			defer func() { _ = s.Close() }()

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = s.Sum(context.Background(), 1024, 6)
			}
		})
	}
}
