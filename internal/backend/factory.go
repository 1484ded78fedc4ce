package backend

import (
	"context"
	"fmt"
	"log/slog"

	"timetrack/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case BadgerBackend:
		return f.createBadgerBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &Result{Repo: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createBadgerBackend(config Config) (*Result, error) {
	repo, err := storage.NewKVRepository(config.BadgerDir)
	if err != nil {
		return nil, fmt.Errorf("initialize Badger repository: %w", err)
	}

	f.logger.Info("Initialized Badger backend", "dir", config.BadgerDir)
	return &Result{Repo: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	repo := storage.NewMemoryRepository()

	f.logger.Info("Initialized memory backend")
	return &Result{Repo: repo, Cleanup: nil}, nil
}
