package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"timetrack/internal/core"
)

const (
	kvEntryPrefix = "entry:"
	kvSessionKey  = "session"
)

// KVRepository mirrors both records into an embedded Badger store: one key
// per entry under a zero-padded position prefix (so iteration order is the
// stored order) plus a dedicated session key.
type KVRepository struct {
	db *badger.DB
}

func NewKVRepository(dir string) (*KVRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}

	// Reduce logging noise
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &KVRepository{db: db}, nil
}

func (r *KVRepository) Close() error {
	return r.db.Close()
}

func kvEntryKey(position int) []byte {
	return []byte(fmt.Sprintf("%s%08d", kvEntryPrefix, position))
}

func (r *KVRepository) LoadEntries(_ context.Context) ([]core.TimeEntry, error) {
	var entries []core.TimeEntry
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(kvEntryPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e core.TimeEntry
				if err := json.Unmarshal(val, &e); err != nil {
					return fmt.Errorf("decode entry payload: %w", err)
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return entries, nil
}

func (r *KVRepository) SaveEntries(_ context.Context, entries []core.TimeEntry) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		// Collect stale keys first; deleting while iterating is unsafe.
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(kvEntryPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		for i, e := range entries {
			payload, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("encode entry %s: %w", e.Key, err)
			}
			if err := txn.Set(kvEntryKey(i), payload); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

func (r *KVRepository) LoadSession(_ context.Context) (*core.User, error) {
	var u *core.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(kvSessionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var decoded core.User
			if err := json.Unmarshal(val, &decoded); err != nil {
				return fmt.Errorf("decode session payload: %w", err)
			}
			u = &decoded
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return u, nil
}

func (r *KVRepository) SaveSession(_ context.Context, u core.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session payload: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(kvSessionKey), payload)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *KVRepository) ClearSession(_ context.Context) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(kvSessionKey))
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
