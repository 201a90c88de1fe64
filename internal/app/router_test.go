package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httpserver "github.com/dhruvimehta17/pay-parity/internal/adapter/httpserver"
	"github.com/dhruvimehta17/pay-parity/internal/config"
)

func TestParseOrigins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins("*"))
	assert.Equal(t, []string{"*"}, ParseOrigins(" , ,"))
	assert.Equal(t,
		[]string{"http://localhost:8080", "http://127.0.0.1:8080"},
		ParseOrigins("http://localhost:8080, http://127.0.0.1:8080"))
}

func TestRouterHealthAndMetrics(t *testing.T) {
	t.Parallel()
	cfg := config.Config{RateLimitPerMin: 30}
	srv := httpserver.NewServer(cfg, nil, nil, nil, nil, nil)
	handler := BuildRouter(cfg, srv)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterSecurityHeaders(t *testing.T) {
	t.Parallel()
	cfg := config.Config{RateLimitPerMin: 30}
	handler := BuildRouter(cfg, httpserver.NewServer(cfg, nil, nil, nil, nil, nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
