package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftlog/internal/storage"
)

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.db.ListPrograms(r.Context())
	if err != nil {
		s.log.Error("list programs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleProgramDays(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "programID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}

	days, err := s.db.ListProgramDays(r.Context(), programID)
	if err != nil {
		s.log.Error("list program days", "program_id", programID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	if len(days) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found or has no days"})
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.RecentSessions(r.Context(), 10)
	if err != nil {
		s.log.Error("recent sessions", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleSessionExercises(w http.ResponseWriter, r *http.Request) {
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

	exercises, err := s.db.SessionExercises(r.Context(), sessionID)
	if err != nil {
		s.log.Error("session exercises", "session_id", sessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleSessionExerciseDetail(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}
	exerciseID, err := pathID(r, "exerciseID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	exercise, err := storage.GetExercise(r.Context(), s.db.Pool, exerciseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
			return
		}
		s.log.Error("get exercise", "exercise_id", exerciseID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	sets, err := storage.ListExerciseSets(r.Context(), s.db.Pool, sessionID, exerciseID)
	if err != nil {
		s.log.Error("list exercise sets", "session_id", sessionID, "exercise_id", exerciseID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"exercise": exercise,
		"sets":     sets,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}
