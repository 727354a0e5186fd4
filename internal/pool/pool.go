package pool

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	localErrs "github.com/adwski/binarytrees/internal/errors"
	"github.com/adwski/binarytrees/internal/logger"
)

const (
	minPoolSize = 1

	defaultSaturationThresholdHigh = 100 // percent
	defaultSaturationThresholdLow  = 50  // percent
)

var (
	ErrPoolClosed = errors.New("pool is closed")
)

type (
	job[R any] struct {
		fn      func() R
		results chan<- result[R]
	}

	result[R any] struct {
		err error
		val R
	}

	// Pool is a fixed-size set of worker goroutines.
	// Workers are started once in New and live until Close.
	Pool[R any] struct {
		cancelFunc context.CancelFunc
		done       <-chan struct{}

		wg        *sync.WaitGroup
		closeOnce *sync.Once

		queue chan job[R]

		stats stats

		logger logger.Logger

		size uint

		closed atomic.Bool
	}

	// Config holds pool configuration.
	Config struct {
		Logger logger.Logger

		// PoolSize specifies amount of workers.
		// Default is number of available CPUs.
		PoolSize uint

		// Saturation thresholds specify transition points (in percents
		// of PoolSize) for saturated status.
		// If amount of busy workers is greater or equal than
		// high threshold then pool is saturated.
		// If this amount is equal or less than low threshold then pool is not saturated.
		// Thresholds should be in range [0;100] and satisfy lo < hi condition.
		// If these conditions are not met, pool will fall back
		// to default lo=50, hi=100 values.
		SaturationThresholdPercentHigh uint
		SaturationThresholdPercentLow  uint

		hi, lo int64
	}
)

func (cfg *Config) validate() {
	if cfg.PoolSize < minPoolSize {
		cfg.PoolSize = uint(runtime.NumCPU())
	}

	if cfg.SaturationThresholdPercentLow > 100 {
		cfg.SaturationThresholdPercentLow = defaultSaturationThresholdLow
	}
	if cfg.SaturationThresholdPercentHigh > 100 || cfg.SaturationThresholdPercentHigh == 0 {
		cfg.SaturationThresholdPercentHigh = defaultSaturationThresholdHigh
	}
	if cfg.SaturationThresholdPercentHigh <= cfg.SaturationThresholdPercentLow {
		cfg.SaturationThresholdPercentLow = defaultSaturationThresholdLow
		cfg.SaturationThresholdPercentHigh = defaultSaturationThresholdHigh
	}

	// convert from percents to actual values
	cfg.hi = int64(math.Ceil(float64(cfg.SaturationThresholdPercentHigh) * float64(cfg.PoolSize) / 100))
	cfg.lo = int64(math.Floor(float64(cfg.SaturationThresholdPercentLow) * float64(cfg.PoolSize) / 100))
}

func New[R any](ctx context.Context, cfg Config) *Pool[R] {
	cfg.validate()

	runCtx, cancel := context.WithCancel(ctx)

	pool := &Pool[R]{
		logger: cfg.Logger,
		size:   cfg.PoolSize,

		cancelFunc: cancel,
		done:       runCtx.Done(),

		wg:        &sync.WaitGroup{},
		closeOnce: &sync.Once{},

		queue: make(chan job[R], cfg.PoolSize),

		stats: newStats(cfg.hi, cfg.lo),
	}

	pool.wg.Add(int(cfg.PoolSize))
	for i := 0; i < int(cfg.PoolSize); i++ {
		go pool.work(runCtx, i)
	}

	pool.logger.Debug("pool created", "size", pool.size)

	return pool
}

func (p *Pool[R]) Size() uint {
	return p.size
}

// Saturated reports whether (almost) all workers are busy.
func (p *Pool[R]) Saturated() bool {
	return p.stats.saturated().Get()
}

// Busy returns amount of workers currently running a job.
func (p *Pool[R]) Busy() int64 {
	return p.stats.busy().Get()
}

// Completed returns amount of jobs finished since pool creation.
func (p *Pool[R]) Completed() uint64 {
	return p.stats.completed().Get()
}

// Close stops workers and waits for them to exit.
// It is safe to call Close several times.
func (p *Pool[R]) Close() error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.cancelFunc()
		p.wg.Wait()

		p.logger.Debug("pool closed", "completed", p.Completed())
	})

	return nil
}

// Map runs fn(i) for every i in [0;n) on pool workers and passes every
// result to collect. Collect is always called from the calling goroutine,
// in no particular order.
//
// Map returns first job error, if any, in which case results
// are no longer collected. Map always waits for submitted jobs to finish,
// unless pool is closed concurrently.
func (p *Pool[R]) Map(ctx context.Context, n int, fn func(int) R, collect func(R)) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	if n <= 0 {
		return nil
	}

	var (
		err       error
		submitted int

		// buffered so workers never block on delivery
		results = make(chan result[R], n)
	)

submitLoop:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case p.queue <- job[R]{
			fn:      func() R { return fn(i) },
			results: results,
		}:
			submitted++
		case <-ctx.Done():
			err = ctx.Err()
			break submitLoop
		case <-p.done:
			return p.closedErr(ctx)
		}
	}

	p.logger.Trace("jobs submitted", "count", submitted, "saturated", p.Saturated())

	for ; submitted > 0; submitted-- {
		select {
		case res := <-results:
			switch {
			case res.err != nil:
				if err == nil {
					err = res.err
				}
			case err == nil:
				collect(res.val)
			}
		case <-p.done:
			return p.closedErr(ctx)
		}
	}

	return err
}

// closedErr prefers caller's context error, pool context
// is usually derived from the same parent and is cancelled along with it.
func (p *Pool[R]) closedErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck // returned as is
	}
	return ErrPoolClosed
}

func (p *Pool[R]) work(ctx context.Context, id int) {
	p.stats.idle().Inc()
	p.logger.Trace("pool worker started", "id", id)
	defer func() {
		p.stats.idle().Dec()
		p.wg.Done()
		p.logger.Trace("pool worker exited", "id", id)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.queue:
			p.run(id, j)
		}
	}
}

func (p *Pool[R]) run(id int, j job[R]) {
	p.stats.idle().Dec()
	p.stats.busy().Inc()
	p.stats.updateSaturated()

	res := p.exec(id, j.fn)

	p.stats.busy().Dec()
	p.stats.idle().Inc()
	p.stats.completed().Inc()
	p.stats.updateSaturated()

	j.results <- res
}

func (p *Pool[R]) exec(id int, fn func() R) (res result[R]) {
	defer func() {
		if r := recover(); r != nil {
			err := localErrs.NewWorkerFailure(id, r)
			p.logger.Error("job panicked", "error", err)

			res = result[R]{err: err}
		}
	}()

	return result[R]{val: fn()}
}
