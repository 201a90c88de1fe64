// Package predictor is the HTTP client for the external salary model
// server. The model is a black box: structured profile in, log-scale base
// salary out. The inverse-log transform belongs to the assessment engine,
// not here.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

// Client implements domain.SalaryPredictor.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New constructs a predictor client. Calls fail fast at the timeout; there
// is no retry.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, hc: &http.Client{Timeout: timeout}}
}

// PredictLogSalary posts the profile to the model server and returns the
// log-scale prediction.
func (c *Client) PredictLogSalary(ctx context.Context, p domain.CandidateProfile) (float64, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	observability.ObserveUpstream("predictor", start, err)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("predictor status %d", resp.StatusCode)
	}

	var out struct {
		LogSalary float64 `json:"log_salary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("predictor decode: %w", err)
	}
	return out.LogSalary, nil
}

// Check probes the model server for readiness.
func (c *Client) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("predictor status %d", resp.StatusCode)
	}
	return nil
}
