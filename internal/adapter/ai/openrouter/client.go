// Package openrouter implements the AI-backed field extractor and the chat
// completer against the OpenRouter chat-completions API.
package openrouter

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

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/internal/config"
	"github.com/dhruvimehta17/pay-parity/internal/domain"
	"github.com/dhruvimehta17/pay-parity/pkg/jsonx"
)

const (
	extractModel = "openai/gpt-4o-mini"
	chatModel    = "openrouter/auto"

	// Resume text beyond this is truncated before prompting; the head of a
	// resume carries the signal.
	maxPromptChars = 4000
	// minTextChars guards against prompting on garbage extractions.
	minTextChars = 50
)

// Client implements domain.FieldExtractor and domain.ChatCompleter.
type Client struct {
	cfg    config.Config
	hc     *http.Client
	chatHC *http.Client
}

// New constructs a client with separate deadlines for extraction and chat.
func New(cfg config.Config) *Client {
	return &Client{
		cfg:    cfg,
		hc:     &http.Client{Timeout: cfg.AITimeout},
		chatHC: &http.Client{Timeout: cfg.ChatTimeout},
	}
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature,omitempty"`
	TopP        float64              `json:"top_p,omitempty"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const extractPrompt = `You are an expert resume parser. Analyze the text and return valid JSON with these fields:
- Job_Title: the current or most recent job title
- Education_Level: highest education (e.g. "Bachelors", "Masters", "PhD", "High School")
- Location: city/state/country
- Skills: an array of ALL technical and professional skills found (be comprehensive)
- Total_Experience_Years: total professional experience in years, as a number

Return ONLY valid JSON, no explanations.

Text:
`

// ExtractFields prompts the model for structured resume fields. The result
// is partial by contract: a missing key, a malformed response, or any
// transport failure yields zero values for the affected fields.
func (c *Client) ExtractFields(ctx context.Context, text string) (domain.ExtractedFields, error) {
	if c.cfg.OpenRouterAPIKey == "" {
		return domain.ExtractedFields{}, fmt.Errorf("%w: OPENROUTER_API_KEY missing", domain.ErrInvalidArgument)
	}
	if len(strings.TrimSpace(text)) < minTextChars {
		return domain.ExtractedFields{}, fmt.Errorf("%w: text too short for field extraction", domain.ErrInvalidArgument)
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	content, err := c.complete(ctx, c.hc, chatRequest{
		Model:    extractModel,
		Messages: []domain.ChatMessage{{Role: "user", Content: extractPrompt + text}},
	})
	if err != nil {
		return domain.ExtractedFields{}, err
	}

	parsed := jsonx.ExtractObject(content)
	if len(parsed) == 0 {
		slog.Warn("field extraction returned no parseable JSON",
			slog.Int("response_chars", len(content)))
	}
	return domain.ExtractedFields{
		JobTitle:             jsonx.String(parsed, "Job_Title"),
		EducationLevel:       jsonx.String(parsed, "Education_Level"),
		Location:             jsonx.String(parsed, "Location"),
		Skills:               skillsString(parsed["Skills"]),
		TotalExperienceYears: jsonx.Number(parsed, "Total_Experience_Years"),
	}, nil
}

// Complete forwards a prepared message history to the chat model.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if c.cfg.OpenRouterAPIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY missing", domain.ErrInvalidArgument)
	}
	return c.complete(ctx, c.chatHC, chatRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: 0.4,
		TopP:        1,
		MaxTokens:   900,
	})
}

func (c *Client) complete(ctx context.Context, hc *http.Client, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenRouterBaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenRouterAPIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.OpenRouterReferer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.OpenRouterReferer)
	}
	if c.cfg.OpenRouterTitle != "" {
		req.Header.Set("X-Title", c.cfg.OpenRouterTitle)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	observability.ObserveUpstream("openrouter", start, err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, truncate(string(b), 200))
	}

	var out chatResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("openrouter decode: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("openrouter error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// skillsString normalizes the Skills field, which models return either as
// an array or as a comma-separated string.
func skillsString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []any:
		parts := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				parts = append(parts, strings.TrimSpace(str))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
