package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftlog/internal/models"
)

// GetExercise looks up an exercise by id. Returns ErrNotFound when it does
// not exist. Set counts left NULL by older data are read as 0.
func GetExercise(ctx context.Context, q Querier, id int64) (*models.Exercise, error) {
	var e models.Exercise
	err := q.QueryRow(ctx,
		`SELECT id, title, COALESCE(warmup_sets, 0), COALESCE(working_sets, 0)
		 FROM exercises WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.WarmupSets, &e.WorkingSets)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise %d: %w", id, err)
	}
	return &e, nil
}

// FindExerciseByTitle returns the id of the exercise with the given title,
// or ErrNotFound. Used by the seeder to reuse movements across days.
func FindExerciseByTitle(ctx context.Context, q Querier, title string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`SELECT id FROM exercises WHERE title = $1 ORDER BY id LIMIT 1`, title,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("exercise %q: %w", title, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("querying exercise by title: %w", err)
	}
	return id, nil
}

// InsertExercise creates an exercise and returns its id.
func InsertExercise(ctx context.Context, q Querier, title string, warmupSets, workingSets int) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO exercises (title, warmup_sets, working_sets)
		 VALUES ($1, $2, $3) RETURNING id`,
		title, warmupSets, workingSets,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return id, nil
}
