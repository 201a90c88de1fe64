package docextract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
)

// OCRClient calls an OCR recognition service implementing domain.OCREngine.
// The service accepts a raw image body on POST /recognize and returns
// {"text": "..."}. Recognition is best effort.
type OCRClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOCRClient constructs an OCR client with the given timeout.
func NewOCRClient(baseURL string, timeout time.Duration) *OCRClient {
	return &OCRClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Recognize uploads the image at path and returns the recognized text.
func (c *OCRClient) Recognize(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(imagePath))
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := c.post(ctx, data)
	observability.ObserveUpstream("ocr", start, err)
	return text, err
}

func (c *OCRClient) post(ctx context.Context, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recognize", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ocr status %d", resp.StatusCode)
	}
	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
