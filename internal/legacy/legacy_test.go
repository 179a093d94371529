package legacy

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestRenumberSets(t *testing.T) {
	sets := []SetRow{
		{ID: 1, SessionID: 1, ExerciseID: 10, SetType: "warmup"},
		{ID: 2, SessionID: 1, ExerciseID: 10, SetType: "warmup"},
		{ID: 3, SessionID: 1, ExerciseID: 10, SetType: "working"},
		{ID: 4, SessionID: 1, ExerciseID: 10, SetType: "working"},
		{ID: 5, SessionID: 1, ExerciseID: 11, SetType: "working"},
		{ID: 6, SessionID: 2, ExerciseID: 10, SetType: "working"},
	}

	RenumberSets(sets)

	want := []int{1, 2, 1, 2, 1, 1}
	for i, row := range sets {
		if row.SetNumber != want[i] {
			t.Errorf("sets[%d].SetNumber = %d, want %d", i, row.SetNumber, want[i])
		}
	}
}

func TestRenumberSetsEmpty(t *testing.T) {
	if got := RenumberSets(nil); len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}

// fixtureDB builds a minimal legacy database file for reader tests.
func fixtureDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.sqlite")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE program (id INTEGER PRIMARY KEY, title TEXT NOT NULL)`,
		`CREATE TABLE day (id INTEGER PRIMARY KEY, program_id INTEGER NOT NULL, title TEXT NOT NULL)`,
		`CREATE TABLE exercise (id INTEGER PRIMARY KEY, title TEXT NOT NULL, warmup_sets INTEGER, working_sets INTEGER)`,
		`CREATE TABLE day_exercise (day_id INTEGER NOT NULL, exercise_id INTEGER NOT NULL, sequence INTEGER NOT NULL)`,
		`CREATE TABLE session (id INTEGER PRIMARY KEY, day_id INTEGER NOT NULL, start_time TEXT NOT NULL)`,
		`CREATE TABLE exercise_set (id INTEGER PRIMARY KEY, session_id INTEGER NOT NULL, exercise_id INTEGER NOT NULL,
			sequence INTEGER NOT NULL, set_type TEXT NOT NULL, weight REAL, reps INTEGER, completed INTEGER NOT NULL DEFAULT 0)`,

		`INSERT INTO program (id, title) VALUES (1, 'Push Pull Legs')`,
		`INSERT INTO day (id, program_id, title) VALUES (1, 1, 'Push Day')`,
		`INSERT INTO exercise (id, title, warmup_sets, working_sets) VALUES (10, 'Bench Press', 2, 3)`,
		`INSERT INTO exercise (id, title, warmup_sets, working_sets) VALUES (11, 'Overhead Press', NULL, 3)`,
		`INSERT INTO day_exercise (day_id, exercise_id, sequence) VALUES (1, 10, 1), (1, 11, 2)`,
		`INSERT INTO session (id, day_id, start_time) VALUES (1, 1, '2026-02-01 18:00:00')`,
		`INSERT INTO session (id, day_id, start_time) VALUES (2, 1, '2026-02-03 18:12:41.503210')`,
		`INSERT INTO exercise_set (id, session_id, exercise_id, sequence, set_type, weight, reps, completed)
			VALUES (1, 1, 10, 1, 'warmup', 40, 8, 1),
			       (2, 1, 10, 1, 'working', 80, NULL, 0),
			       (3, 1, 10, 1, 'working', NULL, 5, 1)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("fixture statement failed: %v\n%s", err, stmt)
		}
	}
	return path
}

func TestReader(t *testing.T) {
	r, err := Open(fixtureDB(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	programs, err := r.Programs()
	if err != nil {
		t.Fatalf("Programs: %v", err)
	}
	if len(programs) != 1 || programs[0].Title != "Push Pull Legs" {
		t.Errorf("programs = %+v", programs)
	}

	exercises, err := r.Exercises()
	if err != nil {
		t.Fatalf("Exercises: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(exercises))
	}
	if exercises[1].WarmupSets != 0 {
		t.Errorf("NULL warmup_sets should read as 0, got %d", exercises[1].WarmupSets)
	}

	sessions, err := r.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if got := sessions[1].StartTime.Second(); got != 41 {
		t.Errorf("fractional timestamp parsed wrong, seconds = %d", got)
	}

	sets, err := r.ExerciseSets()
	if err != nil {
		t.Fatalf("ExerciseSets: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	if sets[1].Reps != nil {
		t.Error("NULL reps should read as nil")
	}
	if sets[2].Weight != nil {
		t.Error("NULL weight should read as nil")
	}
	if !sets[0].Completed || sets[1].Completed {
		t.Errorf("completed flags wrong: %+v", sets)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.sqlite")); err == nil {
		t.Fatal("expected error for missing database file")
	}
}
