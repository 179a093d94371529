package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftlog/internal/models"
)

// InsertSession creates a session for a day. start_time is assigned
// server-side and returned along with the generated id.
func InsertSession(ctx context.Context, q Querier, dayID int64) (*models.Session, error) {
	var s models.Session
	err := q.QueryRow(ctx,
		`INSERT INTO sessions (day_id) VALUES ($1) RETURNING id, day_id, start_time`,
		dayID,
	).Scan(&s.ID, &s.DayID, &s.StartTime)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return &s, nil
}

// GetSession looks up a session by id. Returns ErrNotFound when it does not
// exist.
func (db *DB) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`SELECT id, day_id, start_time FROM sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.DayID, &s.StartTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session %d: %w", id, err)
	}
	return &s, nil
}

// FindMostRecentSessionForExercise returns the id of the latest session other
// than excludeSessionID that contains at least one set for the exercise.
// "Latest" means maximum start_time; equal start times break by id descending
// so the result is deterministic. Returns ErrNotFound when the exercise has
// never been performed before.
func FindMostRecentSessionForExercise(ctx context.Context, q Querier, exerciseID, excludeSessionID int64) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`SELECT s.id
		 FROM sessions s
		 WHERE s.id <> $2
		   AND EXISTS (
		       SELECT 1 FROM exercise_sets es
		       WHERE es.session_id = s.id AND es.exercise_id = $1
		   )
		 ORDER BY s.start_time DESC, s.id DESC
		 LIMIT 1`,
		exerciseID, excludeSessionID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("prior session for exercise %d: %w", exerciseID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("querying prior session for exercise %d: %w", exerciseID, err)
	}
	return id, nil
}

// RecentSessions returns the latest sessions joined with day/program titles
// and a comma-joined summary of the day's exercises, newest first.
func (db *DB) RecentSessions(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT
		     s.id,
		     s.start_time,
		     to_char(s.start_time, 'YYYY-MM-DD'),
		     d.title,
		     p.title,
		     string_agg(e.title, ', ' ORDER BY de.sequence)
		 FROM sessions s
		 JOIN days d ON s.day_id = d.id
		 JOIN programs p ON d.program_id = p.id
		 JOIN day_exercises de ON d.id = de.day_id
		 JOIN exercises e ON de.exercise_id = e.id
		 GROUP BY s.id, s.start_time, d.title, p.title
		 ORDER BY s.start_time DESC, s.id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionSummary
	for rows.Next() {
		var sum models.SessionSummary
		if err := rows.Scan(&sum.SessionID, &sum.StartTime, &sum.Date,
			&sum.DayTitle, &sum.ProgramTitle, &sum.ExerciseSummary); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		result = append(result, sum)
	}
	return result, rows.Err()
}

// SessionExercises returns the exercises of a session's day in day order.
func (db *DB) SessionExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT de.exercise_id, e.title, de.sequence
		 FROM sessions s
		 JOIN day_exercises de ON de.day_id = s.day_id
		 JOIN exercises e ON e.id = de.exercise_id
		 WHERE s.id = $1
		 ORDER BY de.sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	var result []models.SessionExercise
	for rows.Next() {
		var se models.SessionExercise
		if err := rows.Scan(&se.ExerciseID, &se.Title, &se.Sequence); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, se)
	}
	return result, rows.Err()
}
