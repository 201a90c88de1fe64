package docextract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
)

// RendererClient calls a PDF page rendering service implementing
// domain.PageRenderer. POST /render takes the PDF body and returns
// {"pages": ["<base64 jpeg>", ...]}; the client materializes the pages as
// files under the caller-owned directory.
type RendererClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRendererClient constructs a renderer client with the given timeout.
func NewRendererClient(baseURL string, timeout time.Duration) *RendererClient {
	return &RendererClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RenderPages renders each page of the PDF at pdfPath into a JPEG under dir
// and returns the written paths in page order.
func (c *RendererClient) RenderPages(ctx context.Context, pdfPath, dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(pdfPath))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pages, err := c.post(ctx, data)
	observability.ObserveUpstream("renderer", start, err)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(pages))
	for i, encoded := range pages {
		img, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		p := filepath.Join(dir, fmt.Sprintf("page_%d.jpg", i))
		if err := os.WriteFile(p, img, 0o600); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (c *RendererClient) post(ctx context.Context, data []byte) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("renderer status %d", resp.StatusCode)
	}
	var out struct {
		Pages []string `json:"pages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Pages, nil
}
