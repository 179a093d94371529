package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/liftlog/internal/models"
)

// ListPrograms returns all programs ordered by id.
func (db *DB) ListPrograms(ctx context.Context) ([]models.Program, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, title FROM programs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Title); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// InsertProgram creates a program and returns its id.
func InsertProgram(ctx context.Context, q Querier, title string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO programs (title) VALUES ($1) RETURNING id`, title,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting program: %w", err)
	}
	return id, nil
}
