package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/liftlog/internal/models"
)

// fakeDataSource returns canned data and records the arguments it was
// called with, so handler argument parsing can be verified.
type fakeDataSource struct {
	programs []models.Program
	sessions []models.SessionSummary
	sets     []models.ExerciseSet
	err      error

	gotLimit      int
	gotSessionID  int64
	gotExerciseID int64
	gotSessions   int
}

func (f *fakeDataSource) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return f.programs, f.err
}

func (f *fakeDataSource) RecentSessions(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	f.gotLimit = limit
	return f.sessions, f.err
}

func (f *fakeDataSource) SessionSets(ctx context.Context, sessionID int64) ([]models.ExerciseSet, error) {
	f.gotSessionID = sessionID
	return f.sets, f.err
}

func (f *fakeDataSource) ExerciseHistory(ctx context.Context, exerciseID int64, sessionLimit int) ([]models.ExerciseSet, error) {
	f.gotExerciseID = exerciseID
	f.gotSessions = sessionLimit
	return f.sets, f.err
}

func testHandlers(ds DataSource) *handlers {
	return &handlers{
		ds:  ds,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestListPrograms(t *testing.T) {
	ds := &fakeDataSource{
		programs: []models.Program{
			{ID: 1, Title: "Push Pull Legs"},
			{ID: 2, Title: "Upper Lower"},
		},
	}
	h := testHandlers(ds)

	res, err := h.listPrograms(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("listPrograms: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	text := resultText(t, res)
	if !strings.Contains(text, "Push Pull Legs") || !strings.Contains(text, "Upper Lower") {
		t.Errorf("result missing program titles: %s", text)
	}
}

func TestListProgramsQueryError(t *testing.T) {
	h := testHandlers(&fakeDataSource{err: errors.New("connection refused")})

	res, err := h.listPrograms(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("listPrograms: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error result")
	}
}

func TestGetRecentSessionsLimit(t *testing.T) {
	ds := &fakeDataSource{
		sessions: []models.SessionSummary{
			{SessionID: 9, DayTitle: "Push Day", ProgramTitle: "Push Pull Legs", StartTime: time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)},
		},
	}
	h := testHandlers(ds)

	res, err := h.getRecentSessions(context.Background(), callReq(map[string]any{"limit": 3}))
	if err != nil {
		t.Fatalf("getRecentSessions: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if ds.gotLimit != 3 {
		t.Errorf("limit = %d, want 3", ds.gotLimit)
	}
	if text := resultText(t, res); !strings.Contains(text, "Push Day") {
		t.Errorf("result missing day title: %s", text)
	}
}

func TestGetRecentSessionsDefaultLimit(t *testing.T) {
	ds := &fakeDataSource{}
	h := testHandlers(ds)

	if _, err := h.getRecentSessions(context.Background(), callReq(nil)); err != nil {
		t.Fatalf("getRecentSessions: %v", err)
	}
	if ds.gotLimit != 10 {
		t.Errorf("default limit = %d, want 10", ds.gotLimit)
	}
}

func TestGetRecentSessionsRejectsNonPositiveLimit(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.getRecentSessions(context.Background(), callReq(map[string]any{"limit": -1}))
	if err != nil {
		t.Fatalf("getRecentSessions: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for negative limit")
	}
}

func TestGetSessionSets(t *testing.T) {
	weight := 80.0
	reps := 5
	ds := &fakeDataSource{
		sets: []models.ExerciseSet{
			{ID: 1, SessionID: 42, ExerciseID: 7, SetType: models.SetTypeWorking, SetNumber: 1, Weight: &weight, Reps: &reps, Completed: true},
		},
	}
	h := testHandlers(ds)

	res, err := h.getSessionSets(context.Background(), callReq(map[string]any{"session_id": 42}))
	if err != nil {
		t.Fatalf("getSessionSets: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if ds.gotSessionID != 42 {
		t.Errorf("session_id = %d, want 42", ds.gotSessionID)
	}
}

func TestGetSessionSetsRequiresID(t *testing.T) {
	h := testHandlers(&fakeDataSource{})

	res, err := h.getSessionSets(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("getSessionSets: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error when session_id is missing")
	}
}

func TestGetExerciseHistory(t *testing.T) {
	ds := &fakeDataSource{}
	h := testHandlers(ds)

	res, err := h.getExerciseHistory(context.Background(), callReq(map[string]any{
		"exercise_id": 7,
		"sessions":    2,
	}))
	if err != nil {
		t.Fatalf("getExerciseHistory: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if ds.gotExerciseID != 7 {
		t.Errorf("exercise_id = %d, want 7", ds.gotExerciseID)
	}
	if ds.gotSessions != 2 {
		t.Errorf("sessions = %d, want 2", ds.gotSessions)
	}
}

func TestGetExerciseHistoryDefaults(t *testing.T) {
	ds := &fakeDataSource{}
	h := testHandlers(ds)

	if _, err := h.getExerciseHistory(context.Background(), callReq(map[string]any{"exercise_id": 7})); err != nil {
		t.Fatalf("getExerciseHistory: %v", err)
	}
	if ds.gotSessions != 5 {
		t.Errorf("default sessions = %d, want 5", ds.gotSessions)
	}
}

func TestJSONResourceContents(t *testing.T) {
	contents, err := jsonResourceContents("liftlog://recent_sessions", []models.Program{{ID: 1, Title: "PPL"}})
	if err != nil {
		t.Fatalf("jsonResourceContents: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}
	if tc.MIMEType != "application/json" {
		t.Errorf("mime type = %q", tc.MIMEType)
	}
	if !strings.Contains(tc.Text, "PPL") {
		t.Errorf("payload missing data: %s", tc.Text)
	}
}
