// Package api provides the HTTP server for MoodMuse.
// It exposes the activity tracking, journal, and catalog REST endpoints
// that the web client talks to.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moodmuse-app/moodmuse/internal/app/journal"
	"github.com/moodmuse-app/moodmuse/internal/app/tracking"
	"github.com/moodmuse-app/moodmuse/internal/health"
)

// Server is the MoodMuse HTTP API server.
type Server struct {
	tracker        *tracking.Tracker
	journal        *journal.Service
	checker        *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(tracker *tracking.Tracker, journal *journal.Service, version string) *Server {
	return &Server{tracker: tracker, journal: journal, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetChecker sets the health checker backing /health.
func (s *Server) SetChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "MoodMuse is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	// Activity catalog
	r.Route("/api/activities", func(r chi.Router) {
		r.Get("/", s.handleListActivities)
		r.Get("/{id}", s.handleGetActivity)
	})

	// Tracking engine
	r.Route("/api/tracking", func(r chi.Router) {
		r.Post("/start", s.handleStartActivity)
		r.Post("/complete", s.handleCompleteActivity)
		r.Get("/session", s.handleActiveSession)
		r.Get("/progress", s.handleAllProgress)
		r.Get("/progress/{id}", s.handleProgress)
		r.Get("/streak", s.handleStreak)
		r.Get("/badges", s.handleBadges)
		r.Get("/sessions", s.handleSessions)
		r.Get("/summary", s.handleSummary)
		r.Post("/flush", s.handleFlush)
	})

	// Guided series
	r.Route("/api/series", func(r chi.Router) {
		r.Get("/active", s.handleActiveSeries)
		r.Post("/start", s.handleStartSeries)
		r.Post("/abandon", s.handleAbandonSeries)
	})

	// Mood journal
	r.Route("/api/journal", func(r chi.Router) {
		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleAddEntry)
		r.Get("/prompts", s.handlePrompts)
		r.Post("/reflect", s.handleReflect)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.checker.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"healthy": s.checker.IsHealthy(),
		"checks":  s.checker.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local web client.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
