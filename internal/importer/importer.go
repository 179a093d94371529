// Package importer moves a legacy SQLite database into Postgres.
// Row ids are preserved so progression lookups keep working across
// the migration, and set rows get per-type set numbers derived from
// their legacy insertion order.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/liftlog/internal/legacy"
	"github.com/meltforce/liftlog/internal/storage"
)

type Stats struct {
	Programs         int
	Days             int
	Exercises        int
	DayExerciseLinks int
	Sessions         int
	Sets             int
}

type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
}

func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Import copies everything from the legacy database in one transaction.
// In dry-run mode the transaction is rolled back at the end, so all
// constraint violations still surface but nothing is written.
func (imp *Importer) Import(ctx context.Context, r *legacy.Reader) (*Stats, error) {
	stats := &Stats{}

	tx, err := imp.db.Pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	programs, err := r.Programs()
	if err != nil {
		return stats, err
	}
	for _, p := range programs {
		_, err := tx.Exec(ctx, `INSERT INTO programs (id, title) VALUES ($1, $2)`, p.ID, p.Title)
		if err != nil {
			return stats, fmt.Errorf("inserting program %d: %w", p.ID, err)
		}
		stats.Programs++
	}

	days, err := r.Days()
	if err != nil {
		return stats, err
	}
	for _, d := range days {
		_, err := tx.Exec(ctx,
			`INSERT INTO days (id, program_id, title) VALUES ($1, $2, $3)`,
			d.ID, d.ProgramID, d.Title)
		if err != nil {
			return stats, fmt.Errorf("inserting day %d: %w", d.ID, err)
		}
		stats.Days++
	}

	exercises, err := r.Exercises()
	if err != nil {
		return stats, err
	}
	for _, e := range exercises {
		_, err := tx.Exec(ctx,
			`INSERT INTO exercises (id, title, warmup_sets, working_sets) VALUES ($1, $2, $3, $4)`,
			e.ID, e.Title, e.WarmupSets, e.WorkingSets)
		if err != nil {
			return stats, fmt.Errorf("inserting exercise %d: %w", e.ID, err)
		}
		stats.Exercises++
	}

	links, err := r.DayExercises()
	if err != nil {
		return stats, err
	}
	for _, de := range links {
		_, err := tx.Exec(ctx,
			`INSERT INTO day_exercises (day_id, exercise_id, sequence) VALUES ($1, $2, $3)`,
			de.DayID, de.ExerciseID, de.Sequence)
		if err != nil {
			return stats, fmt.Errorf("linking exercise %d to day %d: %w", de.ExerciseID, de.DayID, err)
		}
		stats.DayExerciseLinks++
	}

	sessions, err := r.Sessions()
	if err != nil {
		return stats, err
	}
	for _, s := range sessions {
		_, err := tx.Exec(ctx,
			`INSERT INTO sessions (id, day_id, start_time) VALUES ($1, $2, $3)`,
			s.ID, s.DayID, s.StartTime)
		if err != nil {
			return stats, fmt.Errorf("inserting session %d: %w", s.ID, err)
		}
		stats.Sessions++
	}

	sets, err := r.ExerciseSets()
	if err != nil {
		return stats, err
	}
	legacy.RenumberSets(sets)
	for _, row := range sets {
		_, err := tx.Exec(ctx,
			`INSERT INTO exercise_sets (id, session_id, exercise_id, set_type, set_number, weight, reps, completed)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			row.ID, row.SessionID, row.ExerciseID, row.SetType, row.SetNumber,
			row.Weight, row.Reps, row.Completed)
		if err != nil {
			return stats, fmt.Errorf("inserting set %d: %w", row.ID, err)
		}
		stats.Sets++
	}

	// Explicit ids bypass the serial sequences, so bump them past the
	// imported maximums.
	for _, table := range []string{"programs", "days", "exercises", "sessions", "exercise_sets"} {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s`,
			table, table)
		if _, err := tx.Exec(ctx, query); err != nil {
			return stats, fmt.Errorf("resetting %s id sequence: %w", table, err)
		}
	}

	if imp.dryRun {
		imp.log.Info("dry run: rolling back")
		return stats, tx.Rollback(ctx)
	}
	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("committing import: %w", err)
	}
	return stats, nil
}
