package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
)

// Service instantiates sessions from day templates and carries progression
// forward from the athlete's most recent prior performances.
type Service struct {
	db  *storage.DB
	log *slog.Logger
}

// NewService creates a session service.
func NewService(db *storage.DB, log *slog.Logger) *Service {
	return &Service{db: db, log: log}
}

// CreateSession materializes a new session for the given day: one session row
// plus one exercise_set row per template slot, with weight/reps back-filled
// from the latest earlier session per exercise. Everything runs in a single
// transaction; on any failure nothing is committed. Returns the session and
// the identities of the created sets (values are filled after creation, so
// callers re-query for weight/reps).
//
// Two CreateSession calls racing on the same history may both copy from the
// same prior session. The store is single-user, so this is accepted.
func (s *Service) CreateSession(ctx context.Context, dayID int64) (_ *models.Session, _ []models.CreatedSet, err error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("rolling back: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	day, err := storage.GetDay(ctx, tx, dayID)
	if err != nil {
		return nil, nil, err
	}

	session, err := storage.InsertSession(ctx, tx, day.ID)
	if err != nil {
		return nil, nil, err
	}

	slots, err := s.materialize(ctx, tx, day.ID)
	if err != nil {
		return nil, nil, err
	}

	created := make([]models.CreatedSet, 0, len(slots))
	for _, slot := range slots {
		id, err := storage.InsertExerciseSet(ctx, tx, models.ExerciseSet{
			SessionID:  session.ID,
			ExerciseID: slot.ExerciseID,
			SetNumber:  slot.SetNumber,
			SetType:    slot.SetType,
		})
		if err != nil {
			return nil, nil, err
		}
		created = append(created, models.CreatedSet{
			ID:         id,
			ExerciseID: slot.ExerciseID,
			SetType:    slot.SetType,
			SetNumber:  slot.SetNumber,
		})
	}

	if err := s.resolveProgression(ctx, tx, session.ID, slots); err != nil {
		return nil, nil, err
	}

	s.log.Info("session created", "session_id", session.ID, "day_id", day.ID, "sets", len(created))
	return session, created, nil
}

// materialize loads the day's template and expands it into set slots. A
// template row pointing at a missing exercise is skipped with a warning; the
// rest of the day still materializes.
func (s *Service) materialize(ctx context.Context, q storage.Querier, dayID int64) ([]models.SetSlot, error) {
	dayExercises, err := storage.ListDayExercises(ctx, q, dayID)
	if err != nil {
		return nil, err
	}

	exercises := make(map[int64]models.Exercise, len(dayExercises))
	for _, de := range dayExercises {
		ex, err := storage.GetExercise(ctx, q, de.ExerciseID)
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("template references missing exercise, skipping",
				"day_id", dayID, "exercise_id", de.ExerciseID)
			continue
		}
		if err != nil {
			return nil, err
		}
		exercises[ex.ID] = *ex
	}

	return BuildSlots(dayExercises, exercises), nil
}

// resolveProgression back-fills the new session's sets from the most recent
// earlier session per exercise. Exercises with no history are left untouched.
func (s *Service) resolveProgression(ctx context.Context, q storage.Querier, sessionID int64, slots []models.SetSlot) error {
	for _, exerciseID := range distinctExercises(slots) {
		priorSessionID, err := storage.FindMostRecentSessionForExercise(ctx, q, exerciseID, sessionID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		prior, err := storage.ListExerciseSets(ctx, q, priorSessionID, exerciseID)
		if err != nil {
			return err
		}
		current, err := storage.ListExerciseSets(ctx, q, sessionID, exerciseID)
		if err != nil {
			return err
		}

		updates := CarryoverUpdates(current, prior)
		for _, u := range updates {
			if err := storage.ApplyCarryover(ctx, q, u.SetID, u.Weight, u.Reps); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			s.log.Info("progression carried forward",
				"session_id", sessionID, "exercise_id", exerciseID,
				"from_session", priorSessionID, "sets", len(updates))
		}
	}
	return nil
}

// distinctExercises returns the exercise ids of the slots in first-seen
// order, which keeps progression logs deterministic.
func distinctExercises(slots []models.SetSlot) []int64 {
	seen := make(map[int64]bool, len(slots))
	var ids []int64
	for _, slot := range slots {
		if !seen[slot.ExerciseID] {
			seen[slot.ExerciseID] = true
			ids = append(ids, slot.ExerciseID)
		}
	}
	return ids
}
