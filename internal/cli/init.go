// Package cli provides common initialization utilities for cmd/timetrack.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"timetrack/internal/backend"
	"timetrack/internal/config"
	applog "timetrack/internal/log"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend constructs the configured persistence backend.
// Returns the backend result or exits the process on failure.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.Result {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(slog.Default())
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	return result
}
