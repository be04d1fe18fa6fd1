// Package external provides the client for the OpenAI chat completions API
// used to generate player descriptions.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

const (
	descriptionMaxTokens   = 200
	descriptionTemperature = 0.7
)

// OpenAIClient generates natural-language player descriptions.
type OpenAIClient struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient creates a client. apiKey may be empty; Describe reports a
// configuration error per call rather than failing startup, so the rest of
// the API keeps working without a key.
func NewOpenAIClient(apiKey, endpoint, modelName string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		model:      modelName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Describe generates a short description of the player from their career
// statistics. One attempt, no retry; failures propagate to the caller.
func (c *OpenAIClient) Describe(ctx context.Context, p model.Player) (string, error) {
	if c.apiKey == "" {
		return "", apperr.New(apperr.KindConfiguration, "OPENAI_API_KEY is not set")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a knowledgeable baseball historian and writer."},
			{Role: "user", Content: buildPrompt(p)},
		},
		MaxTokens:   descriptionMaxTokens,
		Temperature: descriptionTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExternalService, "chat completion request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExternalService, "read chat completion body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Newf(apperr.KindExternalService,
			"chat completion returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperr.Wrap(apperr.KindExternalService, "decode chat completion", err)
	}
	if len(result.Choices) == 0 {
		return "", apperr.New(apperr.KindExternalService, "chat completion returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// buildPrompt composes the fixed prompt from the player's statistics.
func buildPrompt(p model.Player) string {
	stats := fmt.Sprintf(`%s was a %s who played in %d games.
Career statistics:
- At-bats: %d
- Hits: %d
- Home runs: %d
- RBIs: %d
- Batting average: %.3f
- On-base percentage: %.3f
- Slugging percentage: %.3f
- OPS: %.3f
- Stolen bases: %d`,
		p.Name, p.Position, p.Games, p.AtBats, p.Hits, p.HomeRuns, p.RBIs,
		p.BattingAverage, p.OnBasePercentage, p.SluggingPercentage, p.OPS,
		p.StolenBases)

	return fmt.Sprintf(`Write a brief, engaging description (2-3 sentences) about this baseball player based on their statistics:

%s

Focus on their most notable achievements and career highlights. Make it interesting and informative.`, stats)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
