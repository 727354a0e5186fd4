package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/adwski/binarytrees"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	// create logger
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()

	// parse command line args
	a, err := parseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Error().Err(err).Msg("cannot parse command line args")
		os.Exit(1)
	}

	opts, err := a.options(logger)
	if err != nil {
		logger.Error().Err(err).Msg("cannot configure logger")
		os.Exit(1)
	}

	// create run context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	bench, err := binarytrees.Open(ctx, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("cannot create benchmark")
		defer os.Exit(1)
		return
	}

	if _, err = bench.Run(ctx, a.n); err != nil {
		logger.Error().Err(err).Msg("benchmark failed")
		defer os.Exit(1)
	}

	// close worker pool
	_ = bench.Close() // blocks until all workers exit
}
