// Package legacy reads the SQLite database of the original liftlog
// deployment so its data can be imported into Postgres.
package legacy

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// The legacy schema uses singular table names and stores the day_exercise
// sequence on every set row instead of a per-type set number.

type Program struct {
	ID    int64
	Title string
}

type Day struct {
	ID        int64
	ProgramID int64
	Title     string
}

type Exercise struct {
	ID          int64
	Title       string
	WarmupSets  int
	WorkingSets int
}

type DayExercise struct {
	DayID      int64
	ExerciseID int64
	Sequence   int
}

type Session struct {
	ID        int64
	DayID     int64
	StartTime time.Time
}

// SetRow is a raw exercise_set row. SetNumber is not present in the
// legacy schema; RenumberSets derives it.
type SetRow struct {
	ID         int64
	SessionID  int64
	ExerciseID int64
	Sequence   int
	SetType    string
	Weight     *float64
	Reps       *int
	Completed  bool
	SetNumber  int
}

// Reader provides read-only access to a legacy database file.
type Reader struct {
	db *sql.DB
}

// Open opens the legacy SQLite database at path. The file must exist;
// the sqlite driver would otherwise silently create an empty one.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("legacy database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging legacy database: %w", err)
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

func (r *Reader) Programs() ([]Program, error) {
	rows, err := r.db.Query(`SELECT id, title FROM program ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Title); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *Reader) Days() ([]Day, error) {
	rows, err := r.db.Query(`SELECT id, program_id, title FROM day ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	var days []Day
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.ID, &d.ProgramID, &d.Title); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *Reader) Exercises() ([]Exercise, error) {
	rows, err := r.db.Query(
		`SELECT id, title, COALESCE(warmup_sets, 0), COALESCE(working_sets, 0)
		 FROM exercise ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Title, &e.WarmupSets, &e.WorkingSets); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *Reader) DayExercises() ([]DayExercise, error) {
	rows, err := r.db.Query(
		`SELECT day_id, exercise_id, sequence FROM day_exercise ORDER BY day_id, sequence`)
	if err != nil {
		return nil, fmt.Errorf("querying day exercises: %w", err)
	}
	defer rows.Close()

	var links []DayExercise
	for rows.Next() {
		var de DayExercise
		if err := rows.Scan(&de.DayID, &de.ExerciseID, &de.Sequence); err != nil {
			return nil, fmt.Errorf("scanning day exercise: %w", err)
		}
		links = append(links, de)
	}
	return links, rows.Err()
}

func (r *Reader) Sessions() ([]Session, error) {
	rows, err := r.db.Query(`SELECT id, day_id, start_time FROM session ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var start string
		if err := rows.Scan(&s.ID, &s.DayID, &start); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		s.StartTime, err = parseLegacyTime(start)
		if err != nil {
			return nil, fmt.Errorf("session %d start_time: %w", s.ID, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Reader) ExerciseSets() ([]SetRow, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, exercise_id, sequence, set_type, weight, reps, completed
		 FROM exercise_set ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise sets: %w", err)
	}
	defer rows.Close()

	var sets []SetRow
	for rows.Next() {
		var row SetRow
		var weight sql.NullFloat64
		var reps sql.NullInt64
		var completed int
		if err := rows.Scan(&row.ID, &row.SessionID, &row.ExerciseID, &row.Sequence,
			&row.SetType, &weight, &reps, &completed); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		if weight.Valid {
			row.Weight = &weight.Float64
		}
		if reps.Valid {
			n := int(reps.Int64)
			row.Reps = &n
		}
		row.Completed = completed != 0
		sets = append(sets, row)
	}
	return sets, rows.Err()
}

// legacyTimeLayouts covers the formats SQLite stored over the life of
// the old deployment.
var legacyTimeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseLegacyTime(s string) (time.Time, error) {
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
