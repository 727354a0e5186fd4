// Package binarytrees implements the binary-trees allocation benchmark.
//
// Benchmark builds a stretch tree, keeps one long-lived tree for the
// whole run and builds many short-lived trees of increasing depth,
// summing node counts of every tree as a checksum.
// Short-lived trees are built on a fixed-size worker pool.
package binarytrees

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/adwski/binarytrees/internal/logger"
	"github.com/adwski/binarytrees/internal/scheduler"
	"github.com/adwski/binarytrees/internal/tree"
)

var (
	ErrCfgScheduler = errors.New("unable to configure scheduler")
	ErrOutput       = errors.New("unable to write report")
)

type (
	Benchmark struct {
		logger    logger.Logger
		scheduler scheduler.Scheduler
		output    io.Writer

		minDepth    int
		inProcIters int

		dryRun bool
	}

	// Report holds totals of one benchmark iteration.
	Report struct {
		Iteration int
		Trees     int
		Nodes     int
		Elapsed   time.Duration
	}
)

// Open creates benchmark and its worker pool.
// Pool lives until Close is called.
func Open(ctx context.Context, opts ...Option) (*Benchmark, error) {
	var cfg Config
	cfg.setDefaults()

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	sched, err := scheduler.New(ctx, scheduler.Config{
		Logger:    cfg.logger,
		Workers:   cfg.workers,
		ChunkSize: cfg.chunkSize,
	})
	if err != nil {
		return nil, errors.Join(ErrCfgScheduler, err)
	}

	cfg.logger.Debug("benchmark created",
		"workers", cfg.workers,
		"chunkSize", cfg.chunkSize,
		"minDepth", cfg.minDepth)

	return &Benchmark{
		logger:      cfg.logger,
		scheduler:   sched,
		output:      cfg.output,
		minDepth:    int(cfg.minDepth),
		inProcIters: int(cfg.inProcIters),
		dryRun:      cfg.dryRun,
	}, nil
}

// Run opens benchmark, runs it for max depth n and closes it.
func Run(ctx context.Context, n int, opts ...Option) error {
	b, err := Open(ctx, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	_, err = b.Run(ctx, n)
	return err
}

func (b *Benchmark) Close() error {
	return b.scheduler.Close() //nolint:wrapcheck // unnecessary
}

// Run executes benchmark for max depth n, printing report lines to output.
// Benchmark is repeated as many times as configured by WithInProcIters.
// Run stops at first failure, depth level that failed is never reported.
func (b *Benchmark) Run(ctx context.Context, n int) ([]Report, error) {
	sched, err := NewSchedule(n, b.minDepth)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("depth schedule",
		"n", n,
		"minDepth", sched.MinDepth,
		"maxDepth", sched.MaxDepth,
		"stretchDepth", sched.StretchDepth,
		"levels", len(sched.Levels))

	if b.dryRun {
		if _, err = sched.WriteTo(b.output); err != nil {
			return nil, errors.Join(ErrOutput, err)
		}
		return nil, nil
	}

	reports := make([]Report, 0, b.inProcIters)
	for i := 1; i <= b.inProcIters; i++ {
		rep, errRun := b.run(ctx, sched)
		if errRun != nil {
			return reports, errRun
		}
		rep.Iteration = i
		reports = append(reports, rep)

		b.logger.Info("benchmark iteration done",
			"iteration", rep.Iteration,
			"elapsed", rep.Elapsed,
			"trees", rep.Trees,
			"nodes", rep.Nodes)
	}

	return reports, nil
}

func (b *Benchmark) run(ctx context.Context, sched Schedule) (Report, error) {
	var (
		rep   Report
		start = time.Now()
	)

	check := tree.MakeCheck(sched.StretchDepth)
	if err := b.printf("stretch tree of depth %d\t check: %d\n", sched.StretchDepth, check); err != nil {
		return rep, err
	}
	rep.Trees++
	rep.Nodes += check

	longLived := tree.Build(sched.MaxDepth)
	rep.Trees++

	timed := b.logger.Enabled("debug")
	for _, lvl := range sched.Levels {
		var levelStart time.Time
		if timed {
			levelStart = time.Now()
		}

		sum, err := b.scheduler.Sum(ctx, lvl.Iterations, lvl.Depth)
		if err != nil {
			return rep, err //nolint:wrapcheck // already has depth context
		}
		if err = b.printf("%d\t trees of depth %d\t check: %d\n", lvl.Iterations, lvl.Depth, sum); err != nil {
			return rep, err
		}
		rep.Trees += lvl.Iterations
		rep.Nodes += sum

		if timed {
			b.logger.Debug("depth level done",
				"depth", lvl.Depth,
				"iterations", lvl.Iterations,
				"elapsed", time.Since(levelStart))
		}
	}

	check = longLived.Check()
	if err := b.printf("long lived tree of depth %d\t check: %d\n", sched.MaxDepth, check); err != nil {
		return rep, err
	}
	rep.Nodes += check
	rep.Elapsed = time.Since(start)

	return rep, nil
}

func (b *Benchmark) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(b.output, format, args...); err != nil {
		return errors.Join(ErrOutput, err)
	}
	return nil
}
