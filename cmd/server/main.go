package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mhtidy/internal/config"
	"mhtidy/internal/infrastructure"
	"mhtidy/internal/store"
	transport "mhtidy/internal/transport/http"
)

func main() {
	os.Exit(run())
}

func run() int {
	storeDir := flag.String("store", "", "directory of the tidy dataset store (defaults to the configured store dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	providers, err := infrastructure.InitOTel(ctx, &infrastructure.OTelConfig{
		EnableMetrics: true,
	})
	if err != nil {
		logger.Error("failed to initialize observability", "error", err)
		return 1
	}
	defer providers.Shutdown(ctx)

	if *storeDir != "" {
		cfg.Pipeline.StoreDir = *storeDir
	}
	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		return 1
	}
	st, err := store.New(paths.StoreDir)
	if err != nil {
		logger.Error("failed to open dataset store", "error", err)
		return 1
	}

	router := transport.NewRouter(st, logger, cfg.Server, providers.PrometheusHTTP)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dataset API listening", slog.String("addr", srv.Addr), slog.String("store", paths.StoreDir))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			return 1
		}
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}
