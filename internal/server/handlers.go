package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		s.log.Error("Failed to list sessions", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, err := s.store.GetSession(id)
	if err != nil {
		s.log.Error("Failed to get session", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}
	if session == nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteSession(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.log.Error("Failed to delete session", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

// handleAnalyze runs the pipeline over a transcript supplied in the request
// body, without touching the store. Degraded analyses are still a 200: once
// the model responded, the pipeline never fails, it only marks the result
// for review.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Transcript)
	if err != nil {
		s.log.Error("Analysis failed", "error", err)
		s.writeError(w, http.StatusBadGateway, "model server unavailable or returned an unusable response")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleAnalyzeSession runs the pipeline over a stored session's transcript
// and persists the result.
func (s *Server) handleAnalyzeSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, err := s.store.GetSession(id)
	if err != nil {
		s.log.Error("Failed to get session", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}
	if session == nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if session.Transcript == "" {
		s.writeError(w, http.StatusConflict, "session has no transcript to analyze")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), session.Transcript)
	if err != nil {
		s.log.Error("Analysis failed", "id", id, "error", err)
		s.writeError(w, http.StatusBadGateway, "model server unavailable or returned an unusable response")
		return
	}

	if err := s.store.SaveAnalysis(id, result); err != nil {
		s.log.Error("Failed to save analysis", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save analysis")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
