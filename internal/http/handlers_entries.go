package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"timetrack/internal/core"
)

type entryRequest struct {
	OwnerKey     string      `json:"owner_key"`
	Date         string      `json:"date"`
	Hours        json.Number `json:"hours"`
	Description  string      `json:"description"`
	MainCategory string      `json:"main_category"`
	SubCategory  string      `json:"sub_category"`
}

// toEntry builds the domain entry. Non-admin callers always own what they
// submit; the owner_key field is only honored for admins.
func (req entryRequest) toEntry(caller core.User) (core.TimeEntry, error) {
	owner := caller.Key
	if caller.Role == core.RoleAdmin && sanitizeInput(req.OwnerKey) != "" {
		owner = sanitizeInput(req.OwnerKey)
	}

	hours, err := core.ParseHours(req.Hours.String())
	if err != nil {
		return core.TimeEntry{}, err
	}

	return core.TimeEntry{
		OwnerKey:     owner,
		Date:         sanitizeInput(req.Date),
		Hours:        hours,
		Description:  sanitizeInput(req.Description),
		MainCategory: sanitizeInput(req.MainCategory),
		SubCategory:  sanitizeInput(req.SubCategory),
	}, nil
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := req.toEntry(user)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.entries.Add(r.Context(), entry)
	if err != nil {
		s.respondEntryError(w, r, err, "Failed to create entry")
		return
	}

	s.reportCache.Purge()
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	key := r.PathValue("key")
	existing, found := s.entries.Get(key)
	if !found {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	if user.Role != core.RoleAdmin && existing.OwnerKey != user.Key {
		respondError(w, http.StatusForbidden, "cannot modify another user's entry")
		return
	}

	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := req.toEntry(user)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	entry.Key = key
	// An omitted owner keeps the entry with its current owner.
	if user.Role != core.RoleAdmin || sanitizeInput(req.OwnerKey) == "" {
		entry.OwnerKey = existing.OwnerKey
	}

	updated, err := s.entries.Update(r.Context(), entry)
	if err != nil {
		s.respondEntryError(w, r, err, "Failed to update entry")
		return
	}

	s.reportCache.Purge()
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	key := r.PathValue("key")
	if existing, found := s.entries.Get(key); found {
		if user.Role != core.RoleAdmin && existing.OwnerKey != user.Key {
			respondError(w, http.StatusForbidden, "cannot delete another user's entry")
			return
		}
	}

	if err := s.entries.Remove(r.Context(), key); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete entry", "entry_key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}

	s.reportCache.Purge()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	owner := sanitizeInput(r.URL.Query().Get("owner"))
	if user.Role != core.RoleAdmin {
		owner = user.Key
	}

	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries := s.entries.ByDateRange(from, to, owner)
	if entries == nil {
		entries = []core.TimeEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"main_categories": core.MainCategories(),
		"sub_categories":  core.Taxonomy(),
	})
}

// respondEntryError maps store errors to HTTP statuses: missing keys are
// 404, validation failures are 422, anything else is a 500.
func (s *Server) respondEntryError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, core.ErrEntryNotFound):
		respondError(w, http.StatusNotFound, "entry not found")
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidHours),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrDescriptionTooLong),
		errors.Is(err, core.ErrEmptyOwner),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, core.ErrUnknownSubcategory):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), logMsg, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
