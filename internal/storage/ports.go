// Package storage mirrors the two persisted records of the application: the
// ordered time-entry collection and the sanitized session identity. Saves
// are whole-record overwrites; the last write wins.
package storage

import (
	"context"

	"timetrack/internal/core"
)

// EntryRepository persists the full entry collection. Load returns the
// collection in its stored order; Save replaces it wholesale.
type EntryRepository interface {
	LoadEntries(ctx context.Context) ([]core.TimeEntry, error)
	SaveEntries(ctx context.Context, entries []core.TimeEntry) error
}

// SessionRepository persists the single session identity. Load returns nil
// when no session is stored; Clear is idempotent.
type SessionRepository interface {
	LoadSession(ctx context.Context) (*core.User, error)
	SaveSession(ctx context.Context, u core.User) error
	ClearSession(ctx context.Context) error
}

// Repository is a backend handle covering both records.
type Repository interface {
	EntryRepository
	SessionRepository
	Close() error
}
