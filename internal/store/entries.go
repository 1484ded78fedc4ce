// Package store owns the time-entry collection. The collection lives in
// memory; every successful mutation mirrors the whole collection to the
// active backend before the caller observes success.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"timetrack/internal/core"
	"timetrack/internal/storage"
)

// EntryStore is the exclusive owner of the entry collection. Queries hand
// out copies, so callers may mutate results freely.
type EntryStore struct {
	mu      sync.Mutex
	entries []core.TimeEntry
	repo    storage.EntryRepository
}

// Open loads the persisted collection. The store starts empty when the
// backend holds nothing; see OpenSeeded for the production path.
func Open(ctx context.Context, repo storage.EntryRepository) (*EntryStore, error) {
	entries, err := repo.LoadEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return &EntryStore{entries: entries, repo: repo}, nil
}

// OpenSeeded is Open plus first-run seeding: an empty backend is populated
// with the synthetic demo dataset and mirrored immediately.
func OpenSeeded(ctx context.Context, repo storage.EntryRepository) (*EntryStore, error) {
	s, err := Open(ctx, repo)
	if err != nil {
		return nil, err
	}
	if len(s.entries) > 0 {
		return s, nil
	}
	s.entries = SeedEntries(time.Now(), SeedOwnerKeys)
	if err := repo.SaveEntries(ctx, s.entries); err != nil {
		return nil, fmt.Errorf("persist seed dataset: %w", err)
	}
	slog.InfoContext(ctx, "Seeded synthetic time entries", "count", len(s.entries))
	return s, nil
}

// Add stores a new entry. The unique key and creation timestamp are
// generated here; caller-supplied values for either are ignored.
func (s *EntryStore) Add(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	e.Key = uuid.NewString()
	e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(s.snapshotLocked(), e)
	if err := s.repo.SaveEntries(ctx, next); err != nil {
		return core.TimeEntry{}, fmt.Errorf("persist entries: %w", err)
	}
	s.entries = next
	return e, nil
}

// Update replaces the entry matching e.Key. The original creation timestamp
// is always preserved; whatever the caller supplied is discarded. Unknown
// keys report core.ErrEntryNotFound and leave the collection unchanged.
func (s *EntryStore) Update(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.entries {
		if s.entries[i].Key == e.Key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.TimeEntry{}, core.ErrEntryNotFound
	}

	e.CreatedAt = s.entries[idx].CreatedAt
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}

	next := s.snapshotLocked()
	next[idx] = e
	if err := s.repo.SaveEntries(ctx, next); err != nil {
		return core.TimeEntry{}, fmt.Errorf("persist entries: %w", err)
	}
	s.entries = next
	return e, nil
}

// Remove deletes the entry with the given key. Removing an absent key is an
// idempotent no-op: the postcondition already holds, so nothing is reported
// and nothing is re-mirrored.
func (s *EntryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.entries {
		if s.entries[i].Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := s.snapshotLocked()
	next = append(next[:idx], next[idx+1:]...)
	if err := s.repo.SaveEntries(ctx, next); err != nil {
		return fmt.Errorf("persist entries: %w", err)
	}
	s.entries = next
	return nil
}

// Get returns the entry with the given key.
func (s *EntryStore) Get(key string) (core.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Key == key {
			return e, true
		}
	}
	return core.TimeEntry{}, false
}

// ByOwner returns the owner's entries in the store's current relative order.
func (s *EntryStore) ByOwner(owner string) []core.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.TimeEntry
	for _, e := range s.entries {
		if e.OwnerKey == owner {
			out = append(out, e)
		}
	}
	return out
}

// ByDateRange returns entries whose date lies in the inclusive range
// [start, end]. The comparison is lexicographic, which is chronological for
// the fixed YYYY-MM-DD form. An empty owner matches all owners.
func (s *EntryStore) ByDateRange(start, end, owner string) []core.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.TimeEntry
	for _, e := range s.entries {
		if e.Date < start || e.Date > end {
			continue
		}
		if owner != "" && e.OwnerKey != owner {
			continue
		}
		out = append(out, e)
	}
	return out
}

// All returns a copy of the full collection.
func (s *EntryStore) All() []core.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of stored entries.
func (s *EntryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *EntryStore) snapshotLocked() []core.TimeEntry {
	return append([]core.TimeEntry(nil), s.entries...)
}
