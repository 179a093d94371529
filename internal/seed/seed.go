// Package seed loads program templates from YAML and writes them to the
// database. Templates describe programs, their days, and the exercises
// of each day in workout order.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meltforce/liftlog/internal/storage"
)

type File struct {
	Programs []ProgramSpec `yaml:"programs"`
}

type ProgramSpec struct {
	Title string    `yaml:"title"`
	Days  []DaySpec `yaml:"days"`
}

type DaySpec struct {
	Title     string         `yaml:"title"`
	Exercises []ExerciseSpec `yaml:"exercises"`
}

type ExerciseSpec struct {
	Title       string `yaml:"title"`
	WarmupSets  int    `yaml:"warmup_sets"`
	WorkingSets int    `yaml:"working_sets"`
}

// Stats counts what Apply wrote.
type Stats struct {
	Programs         int
	Days             int
	Exercises        int
	ReusedExercises  int
	DayExerciseLinks int
}

// Load reads and validates a template file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing template file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template file: %w", err)
	}
	return &f, nil
}

// Validate checks the template for holes that would produce unusable
// rows: missing titles, duplicate exercises within a day, and exercises
// with no sets at all.
func (f *File) Validate() error {
	if len(f.Programs) == 0 {
		return errors.New("no programs defined")
	}

	for pi, p := range f.Programs {
		if p.Title == "" {
			return fmt.Errorf("program %d: missing title", pi+1)
		}
		if len(p.Days) == 0 {
			return fmt.Errorf("program %q: no days defined", p.Title)
		}
		for di, d := range p.Days {
			if d.Title == "" {
				return fmt.Errorf("program %q, day %d: missing title", p.Title, di+1)
			}
			if len(d.Exercises) == 0 {
				return fmt.Errorf("day %q: no exercises defined", d.Title)
			}
			seen := make(map[string]bool)
			for ei, e := range d.Exercises {
				if e.Title == "" {
					return fmt.Errorf("day %q, exercise %d: missing title", d.Title, ei+1)
				}
				if seen[e.Title] {
					return fmt.Errorf("day %q: duplicate exercise %q", d.Title, e.Title)
				}
				seen[e.Title] = true
				if e.WarmupSets < 0 || e.WorkingSets < 0 {
					return fmt.Errorf("exercise %q: negative set count", e.Title)
				}
				if e.WarmupSets == 0 && e.WorkingSets == 0 {
					return fmt.Errorf("exercise %q: no sets defined", e.Title)
				}
			}
		}
	}
	return nil
}

// Apply writes the template to the database. Exercises are shared
// across days and programs by title: an exercise that already exists
// is linked, not duplicated. Apply is expected to run inside a
// transaction so a broken template leaves nothing behind.
func Apply(ctx context.Context, q storage.Querier, f *File, log *slog.Logger) (Stats, error) {
	var stats Stats

	for _, p := range f.Programs {
		programID, err := storage.InsertProgram(ctx, q, p.Title)
		if err != nil {
			return stats, fmt.Errorf("inserting program %q: %w", p.Title, err)
		}
		stats.Programs++

		for _, d := range p.Days {
			dayID, err := storage.InsertDay(ctx, q, programID, d.Title)
			if err != nil {
				return stats, fmt.Errorf("inserting day %q: %w", d.Title, err)
			}
			stats.Days++

			for seq, e := range d.Exercises {
				exerciseID, err := storage.FindExerciseByTitle(ctx, q, e.Title)
				switch {
				case errors.Is(err, storage.ErrNotFound):
					exerciseID, err = storage.InsertExercise(ctx, q, e.Title, e.WarmupSets, e.WorkingSets)
					if err != nil {
						return stats, fmt.Errorf("inserting exercise %q: %w", e.Title, err)
					}
					stats.Exercises++
				case err != nil:
					return stats, fmt.Errorf("looking up exercise %q: %w", e.Title, err)
				default:
					stats.ReusedExercises++
					log.Debug("reusing existing exercise", "title", e.Title, "id", exerciseID)
				}

				if err := storage.InsertDayExercise(ctx, q, dayID, exerciseID, seq+1); err != nil {
					return stats, fmt.Errorf("linking exercise %q to day %q: %w", e.Title, d.Title, err)
				}
				stats.DayExerciseLinks++
			}
		}
		log.Info("program seeded", "title", p.Title, "days", len(p.Days))
	}
	return stats, nil
}
