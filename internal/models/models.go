package models

import "time"

// SetType distinguishes warmup sets from working sets. Set numbers are
// assigned 1..N independently within each type.
type SetType string

const (
	SetTypeWarmup  SetType = "warmup"
	SetTypeWorking SetType = "working"
)

// Program is a named multi-day training plan.
type Program struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Day is one workout template within a program.
type Day struct {
	ID        int64  `json:"id"`
	ProgramID int64  `json:"program_id"`
	Title     string `json:"title"`
}

// DayExercise links an exercise into a day at a fixed position. Sequence is
// unique within a day and drives slot generation order.
type DayExercise struct {
	DayID      int64 `json:"day_id"`
	ExerciseID int64 `json:"exercise_id"`
	Sequence   int   `json:"sequence"`
}

// Exercise is a named movement with configured warmup/working set counts.
type Exercise struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	WarmupSets  int    `json:"warmup_sets"`
	WorkingSets int    `json:"working_sets"`
}

// Session is one concrete instance of performing a day. StartTime is assigned
// by the database at insert and is the sole ordering key for "most recent".
type Session struct {
	ID        int64     `json:"id"`
	DayID     int64     `json:"day_id"`
	StartTime time.Time `json:"start_time"`
}

// ExerciseSet is one planned or performed set within a session. Weight and
// reps stay nil until carried forward from a prior session or edited.
type ExerciseSet struct {
	ID         int64      `json:"id"`
	SessionID  int64      `json:"session_id"`
	ExerciseID int64      `json:"exercise_id"`
	SetNumber  int        `json:"set_number"`
	SetType    SetType    `json:"set_type"`
	Weight     *float64   `json:"weight"`
	Reps       *int       `json:"reps"`
	Completed  bool       `json:"completed"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
}

// SetSlot is a planned (exercise, set_type, set_number) unit produced by the
// materializer before any rows exist.
type SetSlot struct {
	ExerciseID       int64
	ExerciseSequence int
	SetType          SetType
	SetNumber        int
}

// CreatedSet identifies one exercise_set row created during session
// instantiation. Weight/reps may have been filled by progression afterwards;
// callers re-query for values.
type CreatedSet struct {
	ID         int64   `json:"id"`
	ExerciseID int64   `json:"exercise_id"`
	SetType    SetType `json:"set_type"`
	SetNumber  int     `json:"set_number"`
}

// SessionSummary is one row of the recent-sessions listing.
type SessionSummary struct {
	SessionID       int64     `json:"session_id"`
	StartTime       time.Time `json:"session_start_time"`
	Date            string    `json:"session_date_display"`
	DayTitle        string    `json:"day_title"`
	ProgramTitle    string    `json:"program_title"`
	ExerciseSummary string    `json:"exercise_summary"`
}

// SessionExercise is one exercise of a session's day, in day order.
type SessionExercise struct {
	ExerciseID int64  `json:"exercise_id"`
	Title      string `json:"title"`
	Sequence   int    `json:"sequence"`
}

// WorkingSetRow is one working set of a recent session, used to build the
// coach's workout-history context.
type WorkingSetRow struct {
	SessionID int64     `json:"session_id"`
	StartTime time.Time `json:"workout_time"`
	Exercise  string    `json:"exercise"`
	SetNumber int       `json:"set_number"`
	Weight    *float64  `json:"weight_kg"`
	Reps      *int      `json:"reps"`
}
