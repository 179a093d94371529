package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meltforce/liftlog/internal/storage"
)

type updateSetRequest struct {
	Weight    *float64   `json:"weight"`
	Reps      *int       `json:"reps"`
	Completed *bool      `json:"completed"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	setID, err := pathID(r, "setID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set ID"})
		return
	}

	var req updateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	fields := storage.SetUpdateFields{
		Weight:    req.Weight,
		Reps:      req.Reps,
		Completed: req.Completed,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if fields.Empty() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields to update"})
		return
	}

	if err := s.db.UpdateExerciseSet(r.Context(), setID, fields); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
			return
		}
		s.log.Error("update set", "set_id", setID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "update failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Set updated"})
}
