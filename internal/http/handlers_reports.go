package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"timetrack/internal/core"
)

const defaultTopSubcategories = 10

// reportScope resolves whose entries a report covers. Admins may pass an
// owner query parameter (empty means everyone); regular users are always
// scoped to themselves.
func reportScope(r *http.Request, user core.User) string {
	if user.Role == core.RoleAdmin {
		return sanitizeInput(r.URL.Query().Get("owner"))
	}
	return user.Key
}

// cacheKey identifies a report payload by endpoint, scope and range. The
// whole cache is purged on any entry mutation, so stale reads cannot occur.
func cacheKey(name, owner, from, to, extra string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", name, owner, from, to, extra)
}

// serveReport answers from the cache when possible, otherwise computes the
// payload and stores it.
func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, key string, compute func() (any, error)) {
	if payload, ok := s.reportCache.Get(key); ok {
		respondRaw(w, http.StatusOK, payload)
		return
	}

	result, err := compute()
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build report", "cache_key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode report", "cache_key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	s.reportCache.Set(key, payload)
	respondRaw(w, http.StatusOK, payload)
}

// handleReportByOwner totals hours per owner. Admin only: the per-owner
// breakdown reveals other users' activity.
func (s *Server) handleReportByOwner(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}
	if user.Role != core.RoleAdmin {
		respondError(w, http.StatusForbidden, "admin access required")
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.serveReport(w, r, cacheKey("by-owner", "", from, to, ""), func() (any, error) {
		entries := s.entries.ByDateRange(from, to, "")
		return core.HoursByOwner(entries), nil
	})
}

func (s *Server) handleReportByCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	owner := reportScope(r, user)

	s.serveReport(w, r, cacheKey("by-category", owner, from, to, ""), func() (any, error) {
		entries := s.entries.ByDateRange(from, to, owner)
		return core.HoursByMainCategory(entries), nil
	})
}

func (s *Server) handleReportBySubcategory(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	owner := reportScope(r, user)

	limit := defaultTopSubcategories
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	s.serveReport(w, r, cacheKey("by-subcategory", owner, from, to, strconv.Itoa(limit)), func() (any, error) {
		entries := s.entries.ByDateRange(from, to, owner)
		return core.TopSubCategories(entries, limit), nil
	})
}

func (s *Server) handleReportByDay(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	owner := reportScope(r, user)

	s.serveReport(w, r, cacheKey("by-day", owner, from, to, ""), func() (any, error) {
		entries := s.entries.ByDateRange(from, to, owner)
		return core.HoursByDay(entries, from, to)
	})
}
