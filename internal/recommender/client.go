// Package recommender generates date ideas through an external
// chat-completions model, with a deterministic local synthesizer used
// when the model is unreachable or unparseable.
package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// ErrUnavailable reports that the external recommender could not
// produce ideas. Callers recover with the synthesizer.
var ErrUnavailable = errors.New("recommender unavailable")

// Client talks to an OpenAI-style chat-completions endpoint
type Client struct {
	cfg        config.RecommenderConfig
	httpClient *http.Client
}

// NewClient creates a recommender client
func NewClient(cfg config.RecommenderConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
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

// Generate asks the model for ideas matching a request in a resolved
// location. Returns ErrUnavailable (wrapped) on any transport, status
// or parse failure so callers can fall back uniformly.
func (c *Client) Generate(ctx context.Context, req *models.IdeaRequest, locationKey string) ([]models.Idea, error) {
	log := logger.GetLogger("recommender")

	if !c.cfg.Enabled() {
		return nil, fmt.Errorf("no API key configured: %w", ErrUnavailable)
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemMessage(req.DateType)},
			{Role: "user", Content: BuildPrompt(req, locationKey)},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warnf("completion request failed: %v", err)
		return nil, fmt.Errorf("completion request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("completion status=%d", resp.StatusCode)
		return nil, fmt.Errorf("completion status=%d: %w", resp.StatusCode, ErrUnavailable)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", ErrUnavailable)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("empty choices: %w", ErrUnavailable)
	}

	ideas, err := ParseIdeas(cr.Choices[0].Message.Content)
	if err != nil {
		log.Warnf("failed to parse ideas: %v", err)
		return nil, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}

	log.Infof("generated %d ideas for %s (%s)", len(ideas), locationKey, req.DateType)
	return ideas, nil
}
