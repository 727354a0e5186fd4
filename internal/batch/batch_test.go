package batch

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, iterations, depth, chunkSize int) []Batch {
	t.Helper()

	seq, err := Partition(iterations, depth, chunkSize)
	require.NoError(t, err)

	var batches []Batch
	for b := range seq {
		batches = append(batches, append(Batch(nil), b...))
	}
	return batches
}

func TestValidateChunkSize(t *testing.T) {
	assert.NoError(t, ValidateChunkSize(2))
	assert.NoError(t, ValidateChunkSize(DefaultChunkSize))

	assert.ErrorIs(t, ValidateChunkSize(0), ErrChunkSize)
	assert.ErrorIs(t, ValidateChunkSize(-2), ErrChunkSize)
	assert.ErrorIs(t, ValidateChunkSize(5001), ErrChunkSize)
}

func TestPartition_InvalidChunkSize(t *testing.T) {
	seq, err := Partition(10, 4, 3)
	assert.ErrorIs(t, err, ErrChunkSize)
	assert.Nil(t, seq)
}

func TestPartition_Empty(t *testing.T) {
	assert.Empty(t, collect(t, 0, 4, 2))
	assert.Equal(t, 0, Count(0, 2))
}

func TestPartition_Exact(t *testing.T) {
	batches := collect(t, 6, 8, 2)

	require.Len(t, batches, 3)
	assert.Equal(t, Batch{{1, 8}, {2, 8}}, batches[0])
	assert.Equal(t, Batch{{3, 8}, {4, 8}}, batches[1])
	assert.Equal(t, Batch{{5, 8}, {6, 8}}, batches[2])
}

func TestPartition_Remainder(t *testing.T) {
	batches := collect(t, 64, 4, DefaultChunkSize)

	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 64)

	batches = collect(t, 7, 4, 4)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 4)
	assert.Equal(t, Batch{{5, 4}, {6, 4}, {7, 4}}, batches[1])
}

func TestPartition_EarlyStop(t *testing.T) {
	seq, err := Partition(100, 4, 10)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestPartition_Random(t *testing.T) {
	for range 100 {
		var (
			iterations = gofakeit.IntRange(0, 20000)
			chunkSize  = 2 * gofakeit.IntRange(1, 3000)
			depth      = gofakeit.IntRange(0, 20)
		)

		batches := collect(t, iterations, depth, chunkSize)
		require.Len(t, batches, Count(iterations, chunkSize))

		seen := make(map[int]struct{}, iterations)
		for _, b := range batches {
			require.NotEmpty(t, b)
			require.LessOrEqual(t, len(b), chunkSize)
			for _, task := range b {
				require.Equal(t, depth, task.Depth)
				require.GreaterOrEqual(t, task.Index, 1)
				require.LessOrEqual(t, task.Index, iterations)
				_, dup := seen[task.Index]
				require.False(t, dup, "duplicate task %d", task.Index)
				seen[task.Index] = struct{}{}
			}
		}
		assert.Len(t, seen, iterations)
	}
}

func TestBatch_Split(t *testing.T) {
	b := Batch{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}}

	parts := b.Split(2)
	require.Len(t, parts, 2)
	assert.Equal(t, Batch{{1, 0}, {2, 0}, {3, 0}}, parts[0])
	assert.Equal(t, Batch{{4, 0}, {5, 0}}, parts[1])

	parts = b.Split(10)
	require.Len(t, parts, 5)
	for i, p := range parts {
		assert.Equal(t, Batch{{i + 1, 0}}, p)
	}

	assert.Nil(t, b.Split(0))
	assert.Nil(t, Batch{}.Split(4))
}

func TestBatch_SplitRandom(t *testing.T) {
	for range 100 {
		var (
			size = gofakeit.IntRange(1, 5000)
			n    = gofakeit.IntRange(1, 64)
			b    = make(Batch, size)
		)
		for i := range b {
			b[i] = Task{Index: i + 1}
		}

		parts := b.Split(n)
		require.Len(t, parts, min(n, size))

		next := 1
		for _, p := range parts {
			require.NotEmpty(t, p)
			require.LessOrEqual(t, len(p)-len(parts[len(parts)-1]), 1)
			for _, task := range p {
				require.Equal(t, next, task.Index)
				next++
			}
		}
		assert.Equal(t, size+1, next)
	}
}

func BenchmarkPartition(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seq, _ := Partition(1<<16, 4, DefaultChunkSize)
		for range seq {
		}
	}
}
