package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timetrack/internal/auth"
	"timetrack/internal/core"
	"timetrack/internal/storage"
	"timetrack/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	repo := storage.NewMemoryRepository()
	authStore, err := auth.Open(context.Background(), repo)
	require.NoError(t, err)
	entryStore, err := store.Open(context.Background(), repo)
	require.NoError(t, err)

	s := NewServer("127.0.0.1:0", authStore, entryStore, 50, time.Minute)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server, email, password string) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login response: %s", rec.Body.String())
}

func entryBody(owner, date string, hours float64, main, sub string) map[string]any {
	return map[string]any{
		"owner_key":     owner,
		"date":          date,
		"hours":         hours,
		"description":   "worked on " + sub,
		"main_category": main,
		"sub_category":  sub,
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/login", map[string]string{"email": "admin@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/login", map[string]string{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var user core.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "1", user.Key)
	require.Equal(t, core.RoleAdmin, user.Role)

	rec = doJSON(t, s, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"authenticated":true`)
}

func TestLogoutClearsSession(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	rec := doJSON(t, s, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/session", nil)
	require.Contains(t, rec.Body.String(), `"authenticated":false`)

	// Logout with no session is still a success.
	rec = doJSON(t, s, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEntriesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/entries", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/entries", entryBody("2", "2026-03-01", 2, "Development", "Backend"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEntryCRUD(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	rec := doJSON(t, s, http.MethodPost, "/api/entries", entryBody("", "2026-03-01", 2.5, "Development", "Backend"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created core.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Key)
	require.NotEmpty(t, created.CreatedAt)
	require.Equal(t, "2", created.OwnerKey)
	require.Equal(t, 2.5, created.Hours)

	update := entryBody("", "2026-03-02", 3, "Development", "Code Review")
	rec = doJSON(t, s, http.MethodPut, "/api/entries/"+created.Key, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated core.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, created.Key, updated.Key)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, "2026-03-02", updated.Date)
	require.Equal(t, "Code Review", updated.SubCategory)

	rec = doJSON(t, s, http.MethodDelete, "/api/entries/"+created.Key, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Deleting an absent key is still a success.
	rec = doJSON(t, s, http.MethodDelete, "/api/entries/"+created.Key, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/entries?from=2026-03-01&to=2026-03-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestEntryValidation(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	cases := []struct {
		name string
		body map[string]any
	}{
		{"bad date", entryBody("", "03/01/2026", 2, "Development", "Backend")},
		{"bad hours", entryBody("", "2026-03-01", 2.25, "Development", "Backend")},
		{"unknown main category", entryBody("", "2026-03-01", 2, "Gardening", "Backend")},
		{"unknown subcategory", entryBody("", "2026-03-01", 2, "Development", "Interpretive Dance")},
		{"empty description", map[string]any{
			"date": "2026-03-01", "hours": 2, "description": "  ",
			"main_category": "Development", "sub_category": "Backend",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/entries", tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		})
	}

	rec := doJSON(t, s, http.MethodPut, "/api/entries/no-such-key", entryBody("", "2026-03-01", 2, "Development", "Backend"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonAdminScopedToSelf(t *testing.T) {
	s := newTestServer(t)

	login(t, s, "admin@example.com", "admin123")
	rec := doJSON(t, s, http.MethodPost, "/api/entries", entryBody("3", "2026-03-01", 4, "Development", "Backend"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var adminCreated core.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adminCreated))
	require.Equal(t, "3", adminCreated.OwnerKey)

	login(t, s, "user@example.com", "user123")

	// owner_key of another user is ignored for regular users.
	rec = doJSON(t, s, http.MethodPost, "/api/entries", entryBody("3", "2026-03-01", 1, "Development", "Backend"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var userCreated core.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &userCreated))
	require.Equal(t, "2", userCreated.OwnerKey)

	// Listing ignores the owner filter for regular users.
	rec = doJSON(t, s, http.MethodGet, "/api/entries?owner=3&from=2026-03-01&to=2026-03-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []core.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "2", listed[0].OwnerKey)

	// Another user's entry cannot be modified or deleted.
	rec = doJSON(t, s, http.MethodPut, "/api/entries/"+adminCreated.Key, entryBody("", "2026-03-05", 2, "Development", "Backend"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, s, http.MethodDelete, "/api/entries/"+adminCreated.Key, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyEndpoints(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	rec := doJSON(t, s, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/reports/by-owner", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	login(t, s, "admin@example.com", "admin123")

	rec = doJSON(t, s, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []core.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 3)

	rec = doJSON(t, s, http.MethodGet, "/api/reports/by-owner", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTaxonomyEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/taxonomy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		MainCategories []string            `json:"main_categories"`
		SubCategories  map[string][]string `json:"sub_categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, core.MainCategories(), payload.MainCategories)
	require.Equal(t, core.Subcategories("Development"), payload.SubCategories["Development"])
}

func TestReportByDayZeroFills(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	rec := doJSON(t, s, http.MethodPost, "/api/entries", entryBody("", "2026-03-02", 3, "Development", "Backend"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/reports/by-day?from=2026-03-01&to=2026-03-03", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var days []core.DayHours
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	require.Equal(t, []core.DayHours{
		{Date: "2026-03-01", Hours: 0},
		{Date: "2026-03-02", Hours: 3},
		{Date: "2026-03-03", Hours: 0},
	}, days)
}

func TestReportCachePurgedOnMutation(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	path := "/api/reports/by-category?from=2026-03-01&to=2026-03-03"

	rec := doJSON(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "{}", strings.TrimSpace(rec.Body.String()))

	rec = doJSON(t, s, http.MethodPost, "/api/entries", entryBody("", "2026-03-02", 3, "Development", "Backend"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	require.Equal(t, 3.0, totals["Development"])
}

func TestReportBySubcategoryLimit(t *testing.T) {
	s := newTestServer(t)
	login(t, s, "user@example.com", "user123")

	subs := []string{"Backend", "Code Review", "Testing"}
	for i, sub := range subs {
		body := entryBody("", fmt.Sprintf("2026-03-%02d", i+1), float64(i+1), "Development", sub)
		rec := doJSON(t, s, http.MethodPost, "/api/entries", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, s, http.MethodGet, "/api/reports/by-subcategory?from=2026-03-01&to=2026-03-31&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var top []core.CategoryHours
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top, 2)
	require.Equal(t, "Testing", top[0].Name)
	require.Equal(t, 3.0, top[0].Hours)

	rec = doJSON(t, s, http.MethodGet, "/api/reports/by-subcategory?from=2026-03-01&to=2026-03-31&limit=0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
