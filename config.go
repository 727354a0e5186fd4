package binarytrees

import (
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/adwski/binarytrees/internal/batch"
	"github.com/adwski/binarytrees/internal/logger"
	"github.com/adwski/binarytrees/internal/logger/noop"
	zaplogger "github.com/adwski/binarytrees/internal/logger/zap"
	zerologger "github.com/adwski/binarytrees/internal/logger/zerolog"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

const (
	DefaultMinDepth = 4

	defaultInProcIters = 1
)

var (
	ErrInProcIters = errors.New("amount of in-process iterations must be positive")
	ErrNilOutput   = errors.New("output is nil")
)

type (
	Config struct {
		logger logger.Logger
		output io.Writer

		workers     uint
		chunkSize   uint
		minDepth    uint
		inProcIters uint

		dryRun bool
	}
	Option func(*Config) error
)

func (cfg *Config) setDefaults() {
	cfg.logger = logger.New(noop.NewLogger())
	cfg.output = os.Stdout
	cfg.workers = uint(runtime.NumCPU())
	cfg.chunkSize = batch.DefaultChunkSize
	cfg.minDepth = DefaultMinDepth
	cfg.inProcIters = defaultInProcIters
}

func WithLogger(log logger.Logger) Option {
	return func(cfg *Config) error {
		cfg.logger = log
		return nil
	}
}

// WithZeroLogger sets zerolog backend, level is taken from log.
func WithZeroLogger(log zerolog.Logger) Option {
	return func(cfg *Config) error {
		ext := zerologger.NewLogger(log)
		l, err := logger.NewWithLevel(ext, ext.Level())
		if err != nil {
			return err //nolint:wrapcheck // unnecessary
		}
		cfg.logger = l
		return nil
	}
}

// WithZapLogger sets zap backend, level is taken from log.
func WithZapLogger(log *zap.Logger) Option {
	return func(cfg *Config) error {
		ext := zaplogger.NewLogger(log)
		l, err := logger.NewWithLevel(ext, ext.Level())
		if err != nil {
			return err //nolint:wrapcheck // unnecessary
		}
		cfg.logger = l
		return nil
	}
}

// WithOutput sets destination for benchmark report lines. Default is stdout.
func WithOutput(w io.Writer) Option {
	return func(cfg *Config) error {
		if w == nil {
			return ErrNilOutput
		}
		cfg.output = w
		return nil
	}
}

// WithWorkers sets worker pool size. 1 means sequential evaluation,
// 0 means number of available CPUs.
func WithWorkers(workers uint) Option {
	return func(cfg *Config) error {
		if workers == 0 {
			workers = uint(runtime.NumCPU())
		}
		cfg.workers = workers
		return nil
	}
}

// WithChunkSize sets maximum amount of trees dispatched in one batch.
// Chunk size must be positive and even.
func WithChunkSize(chunkSize uint) Option {
	return func(cfg *Config) error {
		if err := batch.ValidateChunkSize(int(chunkSize)); err != nil {
			return err //nolint:wrapcheck // unnecessary
		}
		cfg.chunkSize = chunkSize
		return nil
	}
}

func WithMinDepth(depth uint) Option {
	return func(cfg *Config) error {
		cfg.minDepth = depth
		return nil
	}
}

// WithInProcIters sets how many times the whole benchmark is repeated
// within one Run call.
func WithInProcIters(iters uint) Option {
	return func(cfg *Config) error {
		if iters == 0 {
			return ErrInProcIters
		}
		cfg.inProcIters = iters
		return nil
	}
}

// WithDryRun makes Run print depth schedule without building any trees.
func WithDryRun() Option {
	return func(cfg *Config) error {
		cfg.dryRun = true
		return nil
	}
}
