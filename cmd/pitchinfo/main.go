// Command pitchinfo prints the format, level and pitch track summary of
// WAVE files.
//
// Usage:
//
//	pitchinfo [flags] file.wav ...
//
// Files are analysed concurrently, each with its own reader and detector,
// sharing one transform engine. Results are printed in argument order.
//
// Examples:
//
//	pitchinfo speech.wav
//	pitchinfo -lower 80 -upper 500 -profile *.wav
//	pitchinfo -config pitch.yaml -stats take1.wav take2.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/internal/config"
	"github.com/cwbudde/algo-pitch/internal/observe"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	block := flag.Int("block", 0, "frames per detector call (overrides config)")
	workers := flag.Int("workers", -1, "files analysed at once, 0 for one per CPU (overrides config)")
	lower := flag.Float64("lower", 0, "lowest pitch searched in Hz (overrides config)")
	upper := flag.Float64("upper", 0, "highest pitch searched in Hz (overrides config)")
	profile := flag.Bool("profile", false, "print the mean harmonic profile of each file")
	stats := flag.Bool("stats", false, "print aggregate detector and decoder counters")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pitchinfo [flags] file.wav ...\n\n")
		fmt.Fprintf(os.Stderr, "Prints format, level and pitch statistics of WAVE files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo speech.wav\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo -lower 80 -upper 500 -profile *.wav\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo -config pitch.yaml -stats take1.wav take2.wav\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	applyFlags(cfg, *block, *workers, *lower, *upper, *verbose)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel.Level()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	a := &analyzer{
		cfg:     cfg,
		engine:  fft.New(fft.WithMaxOrder(cfg.Transform.MaxOrder)),
		logger:  logger,
		metrics: metrics,
	}

	paths := flag.Args()
	reports := make([]*report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	limit := cfg.Workers
	if limit == 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			r, err := a.analyze(gctx, path)
			if err != nil {
				logger.Warn("skipping file", "path", path, "err", err)
				return nil
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "interrupted\n")
		os.Exit(130)
	}

	if err := printReports(os.Stdout, reports); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *profile {
		if err := printProfiles(os.Stdout, reports); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *stats {
		s, err := observe.Summarize(context.Background(), reader)
		if err == nil {
			err = printSummary(os.Stdout, s)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func applyFlags(cfg *config.Config, block, workers int, lower, upper float64, verbose bool) {
	if block > 0 {
		cfg.BlockSize = block
	}
	if workers >= 0 {
		cfg.Workers = workers
	}
	if lower > 0 {
		cfg.Detector.Lower = lower
	}
	if upper > 0 {
		cfg.Detector.Upper = upper
	}
	if verbose {
		cfg.LogLevel = config.LogDebug
	}
}
