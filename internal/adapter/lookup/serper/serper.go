// Package serper resolves public profile identifiers into free-text
// snippets via the Serper.dev search API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/internal/config"
)

// Client implements domain.ProfileLookup.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a lookup client.
func New(cfg config.Config) *Client {
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.LookupTimeout}}
}

// Snippet searches for the profile and joins the organic result snippets
// into one free-text blob for field extraction.
func (c *Client) Snippet(ctx context.Context, identifier string) (string, error) {
	if c.cfg.SerperAPIKey == "" {
		return "", fmt.Errorf("SERPER_API_KEY missing")
	}

	payload, err := json.Marshal(map[string]string{
		"q": "site:linkedin.com/in " + identifier,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SerperBaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-KEY", c.cfg.SerperAPIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	observability.ObserveUpstream("serper", start, err)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("serper status %d", resp.StatusCode)
	}

	var out struct {
		Organic []struct {
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(out.Organic))
	for _, r := range out.Organic {
		if r.Snippet != "" {
			parts = append(parts, r.Snippet)
		}
	}
	return strings.Join(parts, " "), nil
}
