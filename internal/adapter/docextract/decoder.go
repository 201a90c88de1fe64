package docextract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/pkg/textx"
)

// DecoderClient is a minimal client for a Tika-compatible decoding service
// implementing domain.DocumentDecoder. It performs PUT /tika with
// Accept: text/plain to retrieve native text.
type DecoderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDecoderClient constructs a decoder client with the given timeout.
func NewDecoderClient(baseURL string, timeout time.Duration) *DecoderClient {
	return &DecoderClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DecodeText uploads the file at path to the decoding service and returns
// plain text with whitespace collapsed.
func (c *DecoderClient) DecodeText(ctx context.Context, path, format string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := c.put(ctx, data, format)
	observability.ObserveUpstream("decoder", start, err)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *DecoderClient) put(ctx context.Context, data []byte, format string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	if ct := contentTypeFor(format); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("decoder status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return textx.CollapseWhitespace(textx.SanitizeText(string(b))), nil
}

// Check probes the decoding service for readiness.
func (c *DecoderClient) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("decoder status %d", resp.StatusCode)
	}
	return nil
}

func contentTypeFor(format string) string {
	switch strings.ToLower(format) {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "doc":
		return "application/msword"
	case "txt":
		return "text/plain"
	default:
		return mime.TypeByExtension("." + format)
	}
}
