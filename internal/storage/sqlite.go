package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"timetrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository mirrors both records into a SQLite database. The entry
// table keeps an explicit position column so the stored order survives the
// full-overwrite save model.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) LoadEntries(ctx context.Context) ([]core.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, owner_key, entry_date, hours, description, main_category, sub_category, created_at
		FROM time_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer rows.Close()

	var entries []core.TimeEntry
	for rows.Next() {
		var e core.TimeEntry
		if err := rows.Scan(&e.Key, &e.OwnerKey, &e.Date, &e.Hours, &e.Description, &e.MainCategory, &e.SubCategory, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) SaveEntries(ctx context.Context, entries []core.TimeEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries`); err != nil {
		return fmt.Errorf("clear time entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO time_entries (position, key, owner_key, entry_date, hours, description, main_category, sub_category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.Key, e.OwnerKey, e.Date, e.Hours, e.Description, e.MainCategory, e.SubCategory, e.CreatedAt); err != nil {
			return fmt.Errorf("insert time entry %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}

	slog.DebugContext(ctx, "Entry collection mirrored to SQLite", "count", len(entries))
	return nil
}

func (r *SQLiteRepository) LoadSession(ctx context.Context) (*core.User, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM session WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	var u core.User
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		return nil, fmt.Errorf("decode session payload: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) SaveSession(ctx context.Context, u core.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session payload: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, string(payload))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearSession(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
