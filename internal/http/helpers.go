package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"timetrack/internal/core"
)

const maxRequestBody = 1 << 20 // 1MB

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondRaw writes a pre-encoded JSON payload, used for cached reports.
func respondRaw(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// sanitizeInput trims whitespace and strips control characters from user input
func sanitizeInput(input string) string {
	sanitized := strings.TrimSpace(input)
	sanitized = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, sanitized)
	return sanitized
}

// generateRequestID creates a random request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// currentUser resolves the signed-in user, writing a 401 when there is none.
func (s *Server) currentUser(w http.ResponseWriter) (core.User, bool) {
	user, ok := s.auth.Current()
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return core.User{}, false
	}
	return user, true
}

// dateRange resolves the from/to query parameters, defaulting to the last
// 30 days ending today.
func dateRange(r *http.Request) (string, string, error) {
	from := sanitizeInput(r.URL.Query().Get("from"))
	to := sanitizeInput(r.URL.Query().Get("to"))

	if from == "" && to == "" {
		now := time.Now()
		return now.AddDate(0, 0, -29).Format(core.DateLayout), now.Format(core.DateLayout), nil
	}
	if from == "" || to == "" {
		return "", "", fmt.Errorf("from and to must be provided together")
	}
	if err := core.ValidateDate(from); err != nil {
		return "", "", fmt.Errorf("invalid from date %q", from)
	}
	if err := core.ValidateDate(to); err != nil {
		return "", "", fmt.Errorf("invalid to date %q", to)
	}
	return from, to, nil
}
