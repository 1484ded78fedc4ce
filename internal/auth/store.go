// Package auth owns the session identity: it validates credentials against
// the fixed roster and mirrors the current (sanitized) identity to the
// session record of the active backend.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"timetrack/internal/core"
	"timetrack/internal/storage"
)

// ErrInvalidCredentials is the normal outcome of a mismatched login.
// Callers surface it to the user; there is no retry or lockout policy.
var ErrInvalidCredentials = errors.New("invalid email or password")

type credential struct {
	user   core.User
	secret string
}

// roster is the fixed identity seed. Secrets never leave this package; the
// stored and returned identities are always the sanitized user values.
var roster = []credential{
	{user: core.User{Key: "1", Name: "Admin User", Email: "admin@example.com", Role: core.RoleAdmin}, secret: "admin123"},
	{user: core.User{Key: "2", Name: "Regular User", Email: "user@example.com", Role: core.RoleUser}, secret: "user123"},
	{user: core.User{Key: "3", Name: "John Doe", Email: "john@example.com", Role: core.RoleUser}, secret: "john123"},
}

// Store holds the current session identity. It is the only component that
// touches the persisted session record.
type Store struct {
	mu      sync.Mutex
	current *core.User
	repo    storage.SessionRepository
}

// Open restores the session persisted by a previous run, if any.
func Open(ctx context.Context, repo storage.SessionRepository) (*Store, error) {
	u, err := repo.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if u != nil {
		slog.InfoContext(ctx, "Session restored", "user_key", u.Key, "role", u.Role)
	}
	return &Store{current: u, repo: repo}, nil
}

// Authenticate matches email and secret against the roster, both
// case-sensitive exact comparisons. On success the sanitized identity
// becomes the current session and is persisted; on mismatch the current
// session is left untouched.
func (s *Store) Authenticate(ctx context.Context, email, secret string) (core.User, error) {
	for _, c := range roster {
		emailOK := subtle.ConstantTimeCompare([]byte(c.user.Email), []byte(email)) == 1
		secretOK := subtle.ConstantTimeCompare([]byte(c.secret), []byte(secret)) == 1
		if !emailOK || !secretOK {
			continue
		}
		u := c.user
		if err := s.repo.SaveSession(ctx, u); err != nil {
			return core.User{}, fmt.Errorf("persist session: %w", err)
		}
		s.mu.Lock()
		s.current = &u
		s.mu.Unlock()
		slog.InfoContext(ctx, "Login successful", "user_key", u.Key, "role", u.Role)
		return u, nil
	}
	return core.User{}, ErrInvalidCredentials
}

// Current returns the session identity, or false when nobody is logged in.
func (s *Store) Current() (core.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return core.User{}, false
	}
	return *s.current, true
}

// Logout clears the session from memory and from the persisted record.
// Safe to call with no active session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Users returns the sanitized roster in seed order.
func Users() []core.User {
	out := make([]core.User, 0, len(roster))
	for _, c := range roster {
		out = append(out, c.user)
	}
	return out
}

// UserByKey looks up a roster identity by its unique key.
func UserByKey(key string) (core.User, bool) {
	for _, c := range roster {
		if c.user.Key == key {
			return c.user, true
		}
	}
	return core.User{}, false
}
