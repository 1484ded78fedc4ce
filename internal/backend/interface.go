// Package backend selects and constructs the persistence backend both
// stores mirror their records to.
package backend

import (
	"context"

	"timetrack/internal/storage"
)

// CleanupFunc represents a cleanup function for backend resources
type CleanupFunc func() error

// Result contains the repository handle and optional cleanup function
type Result struct {
	Repo    storage.Repository
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Badger specific
	BadgerDir string
}

// Type represents the kind of persistence backend
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
	BadgerBackend Type = "badger"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, BadgerBackend:
		return true
	default:
		return false
	}
}
