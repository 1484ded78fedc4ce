package http

import (
	"errors"
	"log/slog"
	"net/http"

	"timetrack/internal/auth"
	"timetrack/internal/core"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := sanitizeInput(req.Email)
	if email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.auth.Authenticate(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.reportCache.Purge()
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
		respondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	s.reportCache.Purge()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user, ok := s.auth.Current()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": user})
}

// handleListUsers exposes the roster so admins can attribute entries.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}
	if user.Role != core.RoleAdmin {
		respondError(w, http.StatusForbidden, "admin access required")
		return
	}
	respondJSON(w, http.StatusOK, auth.Users())
}
