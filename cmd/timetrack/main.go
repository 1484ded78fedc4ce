package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"timetrack/internal/auth"
	"timetrack/internal/cli"
	apphttp "timetrack/internal/http"
	"timetrack/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}
	}()

	authStore, err := auth.Open(ctx, result.Repo)
	if err != nil {
		logger.Error("Failed to open identity store", "error", err)
		os.Exit(1)
	}

	entryStore, err := store.OpenSeeded(ctx, result.Repo)
	if err != nil {
		logger.Error("Failed to open entry store", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, authStore, entryStore, cfg.ReportCacheSize, cfg.ReportCacheTTL)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting timetrack server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"entries", entryStore.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
