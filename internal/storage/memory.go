package storage

import (
	"context"
	"sync"

	"timetrack/internal/core"
)

// MemoryRepository keeps both records in process memory only. It backs the
// `memory` backend and the test suites.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []core.TimeEntry
	session *core.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) LoadEntries(_ context.Context) ([]core.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.TimeEntry(nil), r.entries...), nil
}

func (r *MemoryRepository) SaveEntries(_ context.Context, entries []core.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append([]core.TimeEntry(nil), entries...)
	return nil
}

func (r *MemoryRepository) LoadSession(_ context.Context) (*core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, nil
	}
	u := *r.session
	return &u, nil
}

func (r *MemoryRepository) SaveSession(_ context.Context, u core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = &u
	return nil
}

func (r *MemoryRepository) ClearSession(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
