package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moodmuse-app/moodmuse/internal/domain"
	"github.com/moodmuse-app/moodmuse/internal/infra/catalog"
)

// ─── Activity catalog (/api/activities) ─────────────────────────────────────

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities := catalog.All()
	if cat := r.URL.Query().Get("category"); cat != "" {
		activities = catalog.ByCategory(domain.ActivityCategory(cat))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	a := catalog.Lookup(chi.URLParam(r, "id"))
	if a == nil {
		writeError(w, http.StatusNotFound, domain.ErrActivityNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ─── Tracking engine (/api/tracking) ────────────────────────────────────────

type startActivityRequest struct {
	ActivityID     string                        `json:"activity_id"`
	BeforeMood     int                           `json:"before_mood"`
	Customizations *domain.ActivityCustomization `json:"customizations,omitempty"`
}

func (s *Server) handleStartActivity(w http.ResponseWriter, r *http.Request) {
	var req startActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID, err := s.tracker.StartActivity(req.ActivityID, req.BeforeMood, req.Customizations)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"synced":     !s.tracker.Unsynced(),
	})
}

type completeActivityRequest struct {
	SessionID string `json:"session_id"`
	AfterMood int    `json:"after_mood"`
	Notes     string `json:"notes,omitempty"`
}

func (s *Server) handleCompleteActivity(w http.ResponseWriter, r *http.Request) {
	var req completeActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	unlocked, err := s.tracker.CompleteActivity(req.SessionID, req.AfterMood, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownSession):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, domain.ErrPersistence):
			// The completion stands in memory; the client should retry
			// /api/tracking/flush once the disk recovers.
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"new_badges": unlocked,
				"synced":     false,
				"streak":     s.tracker.Streak(),
			})
			return
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"new_badges": unlocked,
		"synced":     true,
		"streak":     s.tracker.Streak(),
	})
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": s.tracker.ActiveSession(),
	})
}

func (s *Server) handleAllProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress": s.tracker.AllProgress(),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	p := s.tracker.Progress(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "no progress recorded for activity")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Streak())
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": s.tracker.Badges(),
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": s.tracker.Sessions(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Summarize())
}

func (s *Server) handleFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Flush(); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"synced": true,
	})
}

// ─── Guided series (/api/series) ────────────────────────────────────────────

func (s *Server) handleActiveSeries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"series": s.tracker.ActiveSeries(),
	})
}

func (s *Server) handleStartSeries(w http.ResponseWriter, r *http.Request) {
	var series domain.ActivitySeries
	if err := json.NewDecoder(r.Body).Decode(&series); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tracker.StartSeries(series); err != nil {
		if errors.Is(err, domain.ErrSeriesActive) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"series": s.tracker.ActiveSeries(),
	})
}

func (s *Server) handleAbandonSeries(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.AbandonSeries(); err != nil {
		if errors.Is(err, domain.ErrSeriesNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}
