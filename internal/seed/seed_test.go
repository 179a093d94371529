package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validTemplate = `
programs:
  - title: Push Pull Legs
    days:
      - title: Push Day
        exercises:
          - title: Bench Press
            warmup_sets: 2
            working_sets: 3
          - title: Overhead Press
            working_sets: 3
      - title: Pull Day
        exercises:
          - title: Deadlift
            warmup_sets: 3
            working_sets: 2
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "programs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	f, err := Load(writeTemplate(t, validTemplate))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(f.Programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(f.Programs))
	}
	p := f.Programs[0]
	if p.Title != "Push Pull Legs" {
		t.Errorf("program title = %q", p.Title)
	}
	if len(p.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(p.Days))
	}

	bench := p.Days[0].Exercises[0]
	if bench.WarmupSets != 2 || bench.WorkingSets != 3 {
		t.Errorf("bench sets = %d/%d, want 2/3", bench.WarmupSets, bench.WorkingSets)
	}
	ohp := p.Days[0].Exercises[1]
	if ohp.WarmupSets != 0 {
		t.Errorf("omitted warmup_sets should default to 0, got %d", ohp.WarmupSets)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty file",
			content: "programs: []",
			wantErr: "no programs",
		},
		{
			name: "program without title",
			content: `
programs:
  - days:
      - title: Day A
        exercises:
          - title: Squat
            working_sets: 3
`,
			wantErr: "missing title",
		},
		{
			name: "day without exercises",
			content: `
programs:
  - title: P
    days:
      - title: Day A
        exercises: []
`,
			wantErr: "no exercises",
		},
		{
			name: "duplicate exercise in day",
			content: `
programs:
  - title: P
    days:
      - title: Day A
        exercises:
          - title: Squat
            working_sets: 3
          - title: Squat
            working_sets: 2
`,
			wantErr: "duplicate exercise",
		},
		{
			name: "exercise without sets",
			content: `
programs:
  - title: P
    days:
      - title: Day A
        exercises:
          - title: Squat
`,
			wantErr: "no sets",
		},
		{
			name: "negative set count",
			content: `
programs:
  - title: P
    days:
      - title: Day A
        exercises:
          - title: Squat
            working_sets: -1
`,
			wantErr: "negative set count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemplate(t, tt.content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
