package coach

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltforce/liftlog/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSessionMessageUnconfigured verifies the fallback when no endpoint is
// configured at all.
func TestSessionMessageUnconfigured(t *testing.T) {
	c := New(config.CoachConfig{}, testLogger())
	got := c.SessionMessage(context.Background(), 1, nil)
	if got != fallbackUnavailable {
		t.Errorf("message = %q, want %q", got, fallbackUnavailable)
	}
}

// TestSessionMessageSuccess verifies the happy path: request shape, auth
// header, and the trimmed completion coming back.
func TestSessionMessageSuccess(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Crushed it, session 9 was a PR day!  "}},
			},
		})
	}))
	defer srv.Close()

	c := New(config.CoachConfig{
		BaseURL: srv.URL,
		APIKey:  "sk-test",
		Athlete: "Sam",
	}, testLogger())

	got := c.SessionMessage(context.Background(), 9, nil)
	if got != "Crushed it, session 9 was a PR day!" {
		t.Errorf("message = %q", got)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.Model != defaultModel {
		t.Errorf("model = %q, want %q", gotBody.Model, defaultModel)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, `"Sam"`) {
		t.Errorf("user prompt missing athlete name: %q", gotBody.Messages[1].Content)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "workout number 9") {
		t.Errorf("user prompt missing session number: %q", gotBody.Messages[1].Content)
	}
}

// TestSessionMessageServerError verifies the error fallback on non-200
// responses.
func TestSessionMessageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(config.CoachConfig{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	got := c.SessionMessage(context.Background(), 2, nil)
	if got != fallbackError {
		t.Errorf("message = %q, want %q", got, fallbackError)
	}
}

// TestSessionMessageEmptyChoices verifies the empty-completion fallback.
func TestSessionMessageEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := New(config.CoachConfig{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	got := c.SessionMessage(context.Background(), 3, nil)
	if got != fallbackEmpty {
		t.Errorf("message = %q, want %q", got, fallbackEmpty)
	}
}

// TestSessionMessageUnreachable verifies the error fallback when the endpoint
// cannot be reached.
func TestSessionMessageUnreachable(t *testing.T) {
	c := New(config.CoachConfig{BaseURL: "http://127.0.0.1:1", APIKey: "k"}, testLogger())
	got := c.SessionMessage(context.Background(), 4, nil)
	if got != fallbackError {
		t.Errorf("message = %q, want %q", got, fallbackError)
	}
}
