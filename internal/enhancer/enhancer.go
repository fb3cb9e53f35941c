// Package enhancer produces richer venue details through the same
// chat-completions backend the recommender uses.
package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
)

// Details is the enhancement payload for one venue
type Details struct {
	EnhancedDescription string `json:"enhanced_description"`
	OperatingHours      string `json:"operating_hours"`
	AdditionalInfo      string `json:"additional_info"`
}

// Enhancer fetches venue details from a chat-completions endpoint
type Enhancer struct {
	cfg        config.RecommenderConfig
	httpClient *http.Client
}

// New creates an enhancer sharing the recommender configuration
func New(cfg config.RecommenderConfig) *Enhancer {
	return &Enhancer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

var objectRe = regexp.MustCompile(`(?s)\{.*\}`)

// Enhance asks the model for richer details about a venue. A failure
// leaves the venue unenhanced; callers retry on a later trigger.
func (e *Enhancer) Enhance(ctx context.Context, name, address, category string) (*Details, error) {
	log := logger.GetLogger("enhancer")

	if !e.cfg.Enabled() {
		return nil, fmt.Errorf("no API key configured")
	}

	prompt := fmt.Sprintf(`Provide details about the %s %q at %s.

Return a JSON object with this exact structure:
{
  "enhanced_description": "3-4 sentence description covering atmosphere, what it is known for, and what makes it good for dates",
  "operating_hours": "Typical operating hours",
  "additional_info": "Practical tips: reservations, parking, best dishes or highlights"
}

Only describe the real establishment. If you are not certain about a detail, give a typical value for this kind of place.`,
		category, name, address)

	body := map[string]any{
		"model": e.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a knowledgeable local guide. Always respond with a single valid JSON object."},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  e.cfg.MaxTokens,
		"temperature": e.cfg.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimRight(e.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enhancement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enhancement status=%d", resp.StatusCode)
	}

	var cr struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("empty choices")
	}

	raw := objectRe.FindString(cr.Choices[0].Message.Content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var d Details
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("failed to parse details: %w", err)
	}
	if d.EnhancedDescription == "" {
		return nil, fmt.Errorf("empty enhancement")
	}

	log.Infof("enhanced details for %q", name)
	return &d, nil
}
