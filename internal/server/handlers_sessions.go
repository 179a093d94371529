package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meltforce/liftlog/internal/storage"
)

type createSessionRequest struct {
	DayID int64 `json:"day_id"`
}

type createSessionResponse struct {
	Message     string `json:"message"`
	SessionID   int64  `json:"session_id"`
	SetsCreated any    `json:"sets_created"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.DayID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing day_id"})
		return
	}

	session, created, err := s.sessions.CreateSession(r.Context(), req.DayID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "day not found"})
			return
		}
		s.log.Error("create session", "day_id", req.DayID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session creation failed"})
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		Message:     "Session created",
		SessionID:   session.ID,
		SetsCreated: created,
	})
}

// handleCompleteSession generates the end-of-session coach message. The
// session itself carries no completed flag; this endpoint only produces the
// message, with the coach degrading to a canned line when the AI backend is
// unavailable.
func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	if _, err := s.db.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		s.log.Error("get session", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	// Last 5 sessions including this one, matching the original prompt window.
	history, err := s.db.WorkingSetHistory(r.Context(), sessionID, 4)
	if err != nil {
		s.log.Error("working set history", "session_id", sessionID, "error", err)
		history = nil
	}

	message := s.coach.SessionMessage(r.Context(), sessionID, history)
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
