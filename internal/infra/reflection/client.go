// Package reflection is the client for the AI reflection remote: an
// OpenAI-compatible chat completions endpoint that turns a journal
// conversation into a short empathetic reply. The remote is opaque and
// possibly failing; the tracking core never depends on it.
package reflection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/moodmuse-app/moodmuse/internal/domain"
	"github.com/moodmuse-app/moodmuse/internal/infra/metrics"
)

// DefaultEndpoint is the OpenAI API base used when none is configured.
const DefaultEndpoint = "https://api.openai.com"

// Client talks to an OpenAI-compatible /v1/chat/completions endpoint.
type Client struct {
	endpoint string
	model    string
	http     *http.Client
}

// New creates a reflection client. Empty endpoint falls back to the
// OpenAI API; timeout bounds the whole round trip.
func New(endpoint, model string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		http:     &http.Client{Timeout: timeout},
	}
}

// chatRequest is the chat completions request body.
type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

// chatResponse is the subset of the response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends the conversation history and returns the assistant reply.
// The API key is supplied per call — MoodMuse never stores it.
func (c *Client) Generate(ctx context.Context, history []domain.ChatMessage, apiKey string) (string, error) {
	if apiKey == "" {
		return "", domain.ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: history,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ReflectionErrors.Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrReflectionUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.ReflectionLatency.Observe(time.Since(start).Seconds())

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.ReflectionErrors.Inc()
		return "", fmt.Errorf("%w: read response: %v", domain.ErrReflectionUnavailable, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		metrics.ReflectionErrors.Inc()
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrReflectionUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ReflectionErrors.Inc()
		msg := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("%w: %s", domain.ErrReflectionUnavailable, msg)
	}

	if len(parsed.Choices) == 0 {
		metrics.ReflectionErrors.Inc()
		return "", fmt.Errorf("%w: empty completion", domain.ErrReflectionUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}
