package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"mhtidy/internal/config"
	"mhtidy/internal/infrastructure"
	"mhtidy/internal/operations"
	"mhtidy/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	sourceDir := flag.String("source", "", "directory holding the raw exports (defaults to the configured source dir)")
	storeDir := flag.String("store", "", "directory for the tidy dataset store (defaults to the configured store dir)")
	datasets := flag.String("datasets", "", "comma-separated dataset names to tidy (default: all)")
	traceOut := flag.Bool("trace", false, "export pipeline spans to stdout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging:  config.LoggingConfig{Level: "info", Format: "json", Output: "console"},
			Pipeline: config.PipelineConfig{SourceDir: "data/raw", StoreDir: "data/tidy"},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	if *traceOut {
		providers, err := infrastructure.InitOTel(ctx, &infrastructure.OTelConfig{
			EnableTracing: true,
			SampleRatio:   1.0,
		})
		if err != nil {
			logger.Error("failed to initialize tracing", "error", err)
			return 1
		}
		defer providers.Shutdown(ctx)
	}

	if *sourceDir != "" {
		cfg.Pipeline.SourceDir = *sourceDir
	}
	if *storeDir != "" {
		cfg.Pipeline.StoreDir = *storeDir
	}
	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		return 1
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", "error", err)
		return 1
	}

	specs := operations.DefaultManifest(paths.SourceDir)
	if *datasets != "" {
		specs, err = operations.FilterManifest(specs, strings.Split(*datasets, ","))
		if err != nil {
			logger.Error("invalid dataset filter", "error", err)
			return 1
		}
	}

	st, err := store.New(paths.StoreDir)
	if err != nil {
		logger.Error("failed to open dataset store", "error", err)
		return 1
	}

	runner := operations.NewRunner(st, logger, nil)
	summary, err := runner.RunAll(ctx, specs)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		return 1
	}

	for _, res := range summary.Results {
		if res.Failed() {
			fmt.Fprintf(os.Stderr, "FAIL  %-20s %s (stage %s): %v\n", res.Name, res.Source, res.Stage, res.Err)
		} else {
			fmt.Printf("OK    %-20s %d rows in %s\n", res.Name, res.Rows, res.Duration.Round(time.Millisecond))
		}
	}

	if len(summary.Failed()) > 0 {
		return 1
	}
	return 0
}
