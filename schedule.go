package binarytrees

import (
	"errors"
	"fmt"
	"io"
)

// Iteration counts are powers of two of (max depth + min depth - depth),
// this keeps them within int64.
const maxScheduleDepth = 62

var (
	ErrInvalidDepth = errors.New("invalid depth")
)

type (
	// Level is one step of the schedule: Iterations trees of Depth.
	Level struct {
		Depth      int
		Iterations int
	}

	// Schedule describes which trees are built during one benchmark run.
	Schedule struct {
		Levels       []Level
		MinDepth     int
		MaxDepth     int
		StretchDepth int
	}
)

// NewSchedule computes depth schedule for max depth parameter n.
func NewSchedule(n, minDepth int) (Schedule, error) {
	if minDepth < 0 {
		return Schedule{}, fmt.Errorf("%w: min depth %d is negative", ErrInvalidDepth, minDepth)
	}

	// bounds are checked before any addition so huge inputs can't wrap
	if minDepth > maxScheduleDepth/2 || n > maxScheduleDepth-minDepth {
		return Schedule{}, fmt.Errorf("%w: depth %d with min depth %d is too large",
			ErrInvalidDepth, n, minDepth)
	}

	maxDepth := max(minDepth+2, n)
	if maxDepth+minDepth > maxScheduleDepth {
		return Schedule{}, fmt.Errorf("%w: max depth %d with min depth %d is too large",
			ErrInvalidDepth, maxDepth, minDepth)
	}

	s := Schedule{
		MinDepth:     minDepth,
		MaxDepth:     maxDepth,
		StretchDepth: maxDepth + 1,
	}
	for d := minDepth; d < s.StretchDepth; d += 2 {
		s.Levels = append(s.Levels, Level{
			Depth:      d,
			Iterations: 1 << (maxDepth + minDepth - d),
		})
	}

	return s, nil
}

// WriteTo prints schedule without checksums.
func (s Schedule) WriteTo(w io.Writer) (int64, error) {
	var (
		total int64
		n     int
		err   error
	)

	n, err = fmt.Fprintf(w, "stretch tree of depth %d\n", s.StretchDepth)
	total += int64(n)
	if err != nil {
		return total, err //nolint:wrapcheck // io error
	}
	for _, lvl := range s.Levels {
		n, err = fmt.Fprintf(w, "%d\t trees of depth %d\n", lvl.Iterations, lvl.Depth)
		total += int64(n)
		if err != nil {
			return total, err //nolint:wrapcheck // io error
		}
	}
	n, err = fmt.Fprintf(w, "long lived tree of depth %d\n", s.MaxDepth)
	total += int64(n)

	return total, err //nolint:wrapcheck // io error
}
