package batch

import (
	"errors"
	"iter"
)

const (
	DefaultChunkSize = 5000
)

var (
	ErrChunkSize = errors.New("chunk size must be positive and even")
)

type (
	// Task identifies one build-and-check unit.
	// Index only distinguishes tasks, computation ignores it.
	Task struct {
		Index int
		Depth int
	}

	// Batch is a group of tasks dispatched together.
	Batch []Task
)

func ValidateChunkSize(chunkSize int) error {
	if chunkSize <= 0 || chunkSize%2 != 0 {
		return ErrChunkSize
	}
	return nil
}

// Count returns number of batches Partition yields.
func Count(iterations, chunkSize int) int {
	if iterations <= 0 || chunkSize <= 0 {
		return 0
	}
	return (iterations + chunkSize - 1) / chunkSize
}

// Partition splits task range [1;iterations] into contiguous batches
// of at most chunkSize tasks. Batches are produced lazily, so the whole
// task set never resides in memory at once.
// Yielded batch must not be retained after yield returns.
func Partition(iterations, depth, chunkSize int) (iter.Seq[Batch], error) {
	if err := ValidateChunkSize(chunkSize); err != nil {
		return nil, err
	}

	return func(yield func(Batch) bool) {
		if iterations <= 0 {
			return
		}
		chunk := make(Batch, 0, min(chunkSize, iterations))
		for k := 1; k <= iterations; k++ {
			chunk = append(chunk, Task{Index: k, Depth: depth})
			if len(chunk) == chunkSize {
				if !yield(chunk) {
					return
				}
				chunk = chunk[:0]
			}
		}
		if len(chunk) > 0 {
			yield(chunk)
		}
	}, nil
}

// Split divides batch into at most n contiguous non-empty parts
// whose sizes differ by no more than one.
func (b Batch) Split(n int) []Batch {
	if n > len(b) {
		n = len(b)
	}
	if n <= 0 {
		return nil
	}

	parts := make([]Batch, n)
	size, rem := len(b)/n, len(b)%n
	start := 0
	for i := range parts {
		end := start + size
		if i < rem {
			end++
		}
		parts[i] = b[start:end]
		start = end
	}

	return parts
}
