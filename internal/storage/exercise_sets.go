package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

// InsertExerciseSet creates one set row and returns its id. Weight and reps
// start NULL; completed starts false unless the caller says otherwise (the
// legacy importer carries historical values through here).
func InsertExerciseSet(ctx context.Context, q Querier, set models.ExerciseSet) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO exercise_sets
		     (session_id, exercise_id, set_number, set_type, weight, reps, completed, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		set.SessionID, set.ExerciseID, set.SetNumber, set.SetType,
		set.Weight, set.Reps, set.Completed, set.StartTime, set.EndTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise set: %w", err)
	}
	return id, nil
}

// ListExerciseSets returns a session's sets for one exercise, warmups first,
// then by set number.
func ListExerciseSets(ctx context.Context, q Querier, sessionID, exerciseID int64) ([]models.ExerciseSet, error) {
	rows, err := q.Query(ctx,
		`SELECT id, session_id, exercise_id, set_number, set_type,
		        weight, reps, completed, start_time, end_time
		 FROM exercise_sets
		 WHERE session_id = $1 AND exercise_id = $2
		 ORDER BY CASE set_type WHEN 'warmup' THEN 0 ELSE 1 END, set_number`,
		sessionID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise sets: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber, &s.SetType,
			&s.Weight, &s.Reps, &s.Completed, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ApplyCarryover writes progression values onto a freshly created set.
// Completed is deliberately not touched; new sets always start uncompleted.
func ApplyCarryover(ctx context.Context, q Querier, setID int64, weight *float64, reps *int) error {
	tag, err := q.Exec(ctx,
		`UPDATE exercise_sets SET weight = $1, reps = $2 WHERE id = $3`,
		weight, reps, setID)
	if err != nil {
		return fmt.Errorf("applying carryover to set %d: %w", setID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("carryover target set %d: %w", setID, ErrNotFound)
	}
	return nil
}

// SetUpdateFields carries the optional fields of a single-set update. Nil
// pointers mean "leave unchanged".
type SetUpdateFields struct {
	Weight    *float64
	Reps      *int
	Completed *bool
	StartTime *time.Time
	EndTime   *time.Time
}

// Empty reports whether no field is present.
func (f SetUpdateFields) Empty() bool {
	return f.Weight == nil && f.Reps == nil && f.Completed == nil &&
		f.StartTime == nil && f.EndTime == nil
}

// UpdateExerciseSet applies a partial update to one set. Returns ErrNotFound
// when the set does not exist.
func (db *DB) UpdateExerciseSet(ctx context.Context, setID int64, fields SetUpdateFields) error {
	assignments := make([]string, 0, 5)
	args := make([]any, 0, 6)

	add := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.Weight != nil {
		add("weight", *fields.Weight)
	}
	if fields.Reps != nil {
		add("reps", *fields.Reps)
	}
	if fields.Completed != nil {
		add("completed", *fields.Completed)
	}
	if fields.StartTime != nil {
		add("start_time", *fields.StartTime)
	}
	if fields.EndTime != nil {
		add("end_time", *fields.EndTime)
	}
	if len(assignments) == 0 {
		return nil
	}

	args = append(args, setID)
	query := fmt.Sprintf(`UPDATE exercise_sets SET %s WHERE id = $%d`,
		strings.Join(assignments, ", "), len(args))

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating set %d: %w", setID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set %d: %w", setID, ErrNotFound)
	}
	return nil
}

// SessionSets returns every set of a session, ordered by the day's exercise
// sequence, then warmups before working sets, then set number.
func (db *DB) SessionSets(ctx context.Context, sessionID int64) ([]models.ExerciseSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT es.id, es.session_id, es.exercise_id, es.set_number, es.set_type,
		        es.weight, es.reps, es.completed, es.start_time, es.end_time
		 FROM exercise_sets es
		 JOIN sessions s ON es.session_id = s.id
		 LEFT JOIN day_exercises de ON de.day_id = s.day_id AND de.exercise_id = es.exercise_id
		 WHERE es.session_id = $1
		 ORDER BY de.sequence NULLS LAST, es.exercise_id,
		          CASE es.set_type WHEN 'warmup' THEN 0 ELSE 1 END, es.set_number`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber, &s.SetType,
			&s.Weight, &s.Reps, &s.Completed, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scanning session set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// WorkingSetHistory returns the working sets of sessions with ids in
// [sessionID-window, sessionID], newest session first. This is the context
// the coach feeds to the language model.
func (db *DB) WorkingSetHistory(ctx context.Context, sessionID int64, window int) ([]models.WorkingSetRow, error) {
	minID := sessionID - int64(window)
	if minID < 1 {
		minID = 1
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT es.session_id, s.start_time, e.title, es.set_number, es.weight, es.reps
		 FROM exercise_sets es
		 JOIN exercises e ON es.exercise_id = e.id
		 JOIN sessions s ON es.session_id = s.id
		 WHERE es.set_type = 'working' AND s.id BETWEEN $1 AND $2
		 ORDER BY s.start_time DESC, es.id DESC`,
		minID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying working set history: %w", err)
	}
	defer rows.Close()

	var result []models.WorkingSetRow
	for rows.Next() {
		var r models.WorkingSetRow
		if err := rows.Scan(&r.SessionID, &r.StartTime, &r.Exercise,
			&r.SetNumber, &r.Weight, &r.Reps); err != nil {
			return nil, fmt.Errorf("scanning working set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ExerciseHistory returns all sets for one exercise across the latest
// sessions that include it, newest session first. Used by MCP tooling.
func (db *DB) ExerciseHistory(ctx context.Context, exerciseID int64, sessionLimit int) ([]models.ExerciseSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT es.id, es.session_id, es.exercise_id, es.set_number, es.set_type,
		        es.weight, es.reps, es.completed, es.start_time, es.end_time
		 FROM exercise_sets es
		 JOIN sessions s ON es.session_id = s.id
		 WHERE es.exercise_id = $1
		   AND es.session_id IN (
		       SELECT s2.id FROM sessions s2
		       JOIN exercise_sets es2 ON es2.session_id = s2.id
		       WHERE es2.exercise_id = $1
		       GROUP BY s2.id, s2.start_time
		       ORDER BY s2.start_time DESC, s2.id DESC
		       LIMIT $2
		   )
		 ORDER BY s.start_time DESC, s.id DESC,
		          CASE es.set_type WHEN 'warmup' THEN 0 ELSE 1 END, es.set_number`,
		exerciseID, sessionLimit)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber, &s.SetType,
			&s.Weight, &s.Reps, &s.Completed, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scanning exercise history: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
