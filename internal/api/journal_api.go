package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/moodmuse-app/moodmuse/internal/app/journal"
	"github.com/moodmuse-app/moodmuse/internal/domain"
)

// ─── Mood journal (/api/journal) ────────────────────────────────────────────

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.journal.Entries(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

type addEntryRequest struct {
	Mood   string `json:"mood"`
	Prompt string `json:"prompt,omitempty"`
	Text   string `json:"text"`
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.journal.AddEntry(req.Mood, req.Prompt, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyEntry) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prompts":       journal.Prompts(),
		"prompt_of_day": journal.PromptOfDay(time.Now()),
		"moods":         journal.Moods,
	})
}

type reflectRequest struct {
	EntryID string `json:"entry_id"`
}

func (s *Server) handleReflect(w http.ResponseWriter, r *http.Request) {
	var req reflectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	apiKey := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	reply, err := s.journal.Reflect(r.Context(), req.EntryID, apiKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntryNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrMissingAPIKey):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, domain.ErrReflectionUnavailable):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"reply": reply,
	})
}
