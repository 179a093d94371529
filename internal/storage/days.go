package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftlog/internal/models"
)

// GetDay looks up a day by id. Returns ErrNotFound when it does not exist.
func GetDay(ctx context.Context, q Querier, id int64) (*models.Day, error) {
	var d models.Day
	err := q.QueryRow(ctx,
		`SELECT id, program_id, title FROM days WHERE id = $1`, id,
	).Scan(&d.ID, &d.ProgramID, &d.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("day %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying day %d: %w", id, err)
	}
	return &d, nil
}

// ListProgramDays returns the days of a program ordered by id.
func (db *DB) ListProgramDays(ctx context.Context, programID int64) ([]models.Day, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, title FROM days WHERE program_id = $1 ORDER BY id`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	var result []models.Day
	for rows.Next() {
		var d models.Day
		if err := rows.Scan(&d.ID, &d.ProgramID, &d.Title); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// ListDayExercises returns the day's exercise links ordered by sequence
// ascending. Sequence is unique per day, so the order is stable.
func ListDayExercises(ctx context.Context, q Querier, dayID int64) ([]models.DayExercise, error) {
	rows, err := q.Query(ctx,
		`SELECT day_id, exercise_id, sequence
		 FROM day_exercises WHERE day_id = $1 ORDER BY sequence`, dayID)
	if err != nil {
		return nil, fmt.Errorf("querying day exercises: %w", err)
	}
	defer rows.Close()

	var result []models.DayExercise
	for rows.Next() {
		var de models.DayExercise
		if err := rows.Scan(&de.DayID, &de.ExerciseID, &de.Sequence); err != nil {
			return nil, fmt.Errorf("scanning day exercise: %w", err)
		}
		result = append(result, de)
	}
	return result, rows.Err()
}

// InsertDay creates a day under a program and returns its id.
func InsertDay(ctx context.Context, q Querier, programID int64, title string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO days (program_id, title) VALUES ($1, $2) RETURNING id`,
		programID, title,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting day: %w", err)
	}
	return id, nil
}

// InsertDayExercise links an exercise into a day at the given sequence.
func InsertDayExercise(ctx context.Context, q Querier, dayID, exerciseID int64, sequence int) error {
	_, err := q.Exec(ctx,
		`INSERT INTO day_exercises (day_id, exercise_id, sequence) VALUES ($1, $2, $3)`,
		dayID, exerciseID, sequence)
	if err != nil {
		return fmt.Errorf("inserting day exercise: %w", err)
	}
	return nil
}
