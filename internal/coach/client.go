package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/config"
	"github.com/meltforce/liftlog/internal/models"
)

const (
	defaultModel = "gpt-4.1-nano"

	systemPrompt = "You are a motivational personal trainer. You can be serious, funny, " +
		"give some tough love but you should keep it upbeat and motivational. " +
		"Limit your response to one sentence."

	// Fallbacks, in order of how far the call got before failing.
	fallbackUnavailable = "Failed to connect to AI service. Awesome work today! 💪"
	fallbackError       = "Awesome work today! Keep up the effort. 💪"
	fallbackEmpty       = "Great job completing your session!"
)

// Client generates the end-of-session message via an OpenAI-compatible
// chat-completions endpoint. Every failure path degrades to a canned message;
// the caller never sees an error.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	athlete    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a coach client. With no base URL or API key configured the
// client is inert and only produces fallback messages.
func New(cfg config.CoachConfig, log *slog.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	athlete := cfg.Athlete
	if athlete == "" {
		athlete = "Athlete"
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   model,
		athlete: athlete,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SessionMessage returns a one-sentence congratulation for a finished
// session, grounded in the recent working-set history.
func (c *Client) SessionMessage(ctx context.Context, sessionID int64, history []models.WorkingSetRow) string {
	if c.baseURL == "" || c.apiKey == "" {
		c.log.Info("coach not configured, using fallback message")
		return fallbackUnavailable
	}

	userPrompt := fmt.Sprintf(
		"Your client %q has just completed workout number %d.\n"+
			"Generate a short motivational message to congratulate them, highlighting any notable "+
			"achievements from the provided workout history (including this latest session).\n\n"+
			"Here are the working sets from recent sessions:\n\n%s\n",
		c.athlete, sessionID, HistoryCSV(history))

	message, err := c.complete(ctx, userPrompt)
	if err != nil {
		c.log.Error("coach completion failed", "session_id", sessionID, "error", err)
		return fallbackError
	}
	if message == "" {
		c.log.Warn("coach returned empty message", "session_id", sessionID)
		return fallbackEmpty
	}
	return message
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 1.0,
		MaxTokens:   150,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat completions failed (status %d): %s", resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
