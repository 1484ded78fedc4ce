// Package http exposes the store contracts as a JSON API. The browser view
// layer consuming it is intentionally not part of this repository.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"timetrack/internal/auth"
	"timetrack/internal/cache"
	"timetrack/internal/store"
)

type Server struct {
	http.Server
	auth    *auth.Store
	entries *store.EntryStore

	rateLimiter *rateLimiter

	// Report payloads are cached per user scope and purged on mutation.
	reportCache  *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures the API routes, returning a ready-to-run http.Server.
func NewServer(addr string, authStore *auth.Store, entryStore *store.EntryStore, cacheSize int, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		auth:         authStore,
		entries:      entryStore,
		rateLimiter:  newRateLimiter(),
		reportCache:  cache.NewLRUCache[[]byte](cacheSize, cacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("POST /api/login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("POST /api/logout", s.withSecurityHeaders(s.handleLogout))
	mux.HandleFunc("GET /api/session", s.withSecurityHeaders(s.handleSession))

	mux.HandleFunc("GET /api/taxonomy", s.withSecurityHeaders(s.handleTaxonomy))
	mux.HandleFunc("GET /api/users", s.withSecurityHeaders(s.handleListUsers))

	mux.HandleFunc("POST /api/entries", s.withSecurityHeaders(s.handleCreateEntry))
	mux.HandleFunc("GET /api/entries", s.withSecurityHeaders(s.handleListEntries))
	mux.HandleFunc("PUT /api/entries/{key}", s.withSecurityHeaders(s.handleUpdateEntry))
	mux.HandleFunc("DELETE /api/entries/{key}", s.withSecurityHeaders(s.handleDeleteEntry))

	mux.HandleFunc("GET /api/reports/by-owner", s.withSecurityHeaders(s.handleReportByOwner))
	mux.HandleFunc("GET /api/reports/by-category", s.withSecurityHeaders(s.handleReportByCategory))
	mux.HandleFunc("GET /api/reports/by-subcategory", s.withSecurityHeaders(s.handleReportBySubcategory))
	mux.HandleFunc("GET /api/reports/by-day", s.withSecurityHeaders(s.handleReportByDay))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit mutating requests only
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if !s.rateLimiter.allow(clientIP) {
				slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
				return
			}
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
