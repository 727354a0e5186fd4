package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/adwski/binarytrees"
	"github.com/adwski/binarytrees/internal/batch"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	loggerZerolog = "zerolog"
	loggerZap     = "zap"
)

var (
	errMissingArg   = errors.New("missing max depth argument")
	errTooManyArgs  = errors.New("too many arguments")
	errInvalidArg   = errors.New("max depth must be an integer")
	errUnknownLog   = errors.New("unknown logger, expected zerolog|zap")
	errInvalidLevel = errors.New("incorrect log level")
)

type args struct {
	logLevel    string
	logger      string
	n           int
	workers     uint
	chunkSize   uint
	minDepth    uint
	inProcIters uint
	dryRun      bool
}

func parseArgs(name string, argv []string, usageOut io.Writer) (args, error) {
	var (
		a  args
		fs = pflag.NewFlagSet(name, pflag.ContinueOnError)
	)
	fs.SetOutput(usageOut)
	fs.Usage = func() {
		fmt.Fprintf(usageOut, "Usage: %s [flags] <max depth>\n", name)
		fs.PrintDefaults()
	}

	fs.UintVarP(&a.workers, "workers", "w", 0, "worker pool size, 1 disables parallel evaluation (default: number of CPUs)")
	fs.UintVarP(&a.chunkSize, "chunk-size", "c", batch.DefaultChunkSize, "amount of trees dispatched in one batch, must be even")
	fs.UintVarP(&a.minDepth, "min-depth", "m", binarytrees.DefaultMinDepth, "minimum tree depth")
	fs.UintVarP(&a.inProcIters, "in-proc-iters", "i", 1, "how many times benchmark is repeated in process")
	fs.BoolVar(&a.dryRun, "dry-run", false, "print depth schedule without building trees")
	fs.StringVarP(&a.logLevel, "log-level", "l", "error", "Log level: error|info|debug|trace")
	fs.StringVar(&a.logger, "logger", loggerZerolog, "Logger: zerolog|zap")

	if err := fs.Parse(argv); err != nil {
		return a, err //nolint:wrapcheck // pflag errors are descriptive
	}

	switch fs.NArg() {
	case 0:
		return a, errMissingArg
	case 1:
	default:
		return a, fmt.Errorf("%w: %v", errTooManyArgs, fs.Args())
	}

	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return a, errors.Join(errInvalidArg, err)
	}
	a.n = n

	if a.logger != loggerZerolog && a.logger != loggerZap {
		return a, fmt.Errorf("%w: %q", errUnknownLog, a.logger)
	}

	return a, nil
}

// options converts args to benchmark options. Logs go to stderr.
func (a args) options(zl zerolog.Logger) ([]binarytrees.Option, error) {
	opts := []binarytrees.Option{
		binarytrees.WithWorkers(a.workers),
		binarytrees.WithChunkSize(a.chunkSize),
		binarytrees.WithMinDepth(a.minDepth),
		binarytrees.WithInProcIters(a.inProcIters),
	}
	if a.dryRun {
		opts = append(opts, binarytrees.WithDryRun())
	}

	switch a.logger {
	case loggerZap:
		lvl, err := zapcore.ParseLevel(a.logLevel)
		if err != nil {
			if a.logLevel != "trace" {
				return nil, errors.Join(errInvalidLevel, err)
			}
			lvl = zapcore.DebugLevel
		}
		opts = append(opts, binarytrees.WithZapLogger(newZapLogger(lvl)))
	default:
		lvl, err := zerolog.ParseLevel(a.logLevel)
		if err != nil {
			return nil, errors.Join(errInvalidLevel, err)
		}
		opts = append(opts, binarytrees.WithZeroLogger(
			zl.Level(lvl).With().Str("component", "binarytrees").Logger()))
	}

	return opts, nil
}

func newZapLogger(lvl zapcore.Level) *zap.Logger {
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}), zapcore.Lock(os.Stderr), lvl))
}
