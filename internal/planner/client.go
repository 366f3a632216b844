// Package planner turns a free-text goal into a raw 30-day plan by calling
// the Anthropic Messages API. The result is untrusted input for the plan
// normalizer; this package only guarantees a parseable {title, days[30]}
// document or an error.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	defaultModel   = "claude-3-5-haiku-20241022"
	apiVersion     = "2023-06-01"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the cheapest sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     defaultBaseURL,
		Model:       defaultModel,
		Timeout:     60 * time.Second,
		MaxTokens:   3000,
		Temperature: 0.5,
	}
}

// ConfigFromEnv reads ANTHROPIC_API_KEY and the optional THIRTY_MODEL
// override.
func ConfigFromEnv() Config {
	cfg := DefaultConfig(os.Getenv("ANTHROPIC_API_KEY"))
	if m := os.Getenv("THIRTY_MODEL"); m != "" {
		cfg.Model = m
	}
	return cfg
}

// Client is a minimal Anthropic Messages client. One generation is one
// bounded request; failures and timeouts surface to the caller and are never
// retried here.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GeneratePlan performs a single Messages request and parses the model output
// into a raw plan. The plan must contain exactly 30 day entries; anything
// else is a shape error and no challenge is created from it.
func (c *Client) GeneratePlan(ctx context.Context, goal string) (*engine.RawPlan, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("missing ANTHROPIC_API_KEY")
	}

	payload := messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    []message{{Role: "user", Content: buildPrompt(goal)}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	started := time.Now()
	c.log.Debug("sending plan request", zap.String("model", c.cfg.Model))

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("plan request failed", zap.Error(err))
		return nil, fmt.Errorf("plan request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		c.log.Warn("plan request rejected", zap.Int("status", res.StatusCode))
		return nil, fmt.Errorf("plan request failed: %s: %s", res.Status, strings.TrimSpace(string(raw)))
	}

	var decoded messagesResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	text := ""
	for _, block := range decoded.Content {
		if block.Type == "text" && block.Text != "" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("response missing text content")
	}

	jsonText := ExtractJSONObject(text)
	if jsonText == "" {
		jsonText = text
	}
	var plan engine.RawPlan
	if err := json.Unmarshal([]byte(jsonText), &plan); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}
	if plan.Days == nil {
		return nil, engine.PlanShapeError{Reason: "missing days array"}
	}
	if len(plan.Days) != engine.ChallengeDays {
		return nil, engine.PlanShapeError{Reason: fmt.Sprintf("expected %d days, got %d", engine.ChallengeDays, len(plan.Days))}
	}

	c.log.Info("plan generated",
		zap.String("model", c.cfg.Model),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("days", len(plan.Days)))
	return &plan, nil
}
