package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, "data/salaries.csv", cfg.DatasetPath)
	assert.Equal(t, 20*time.Second, cfg.AITimeout)
	assert.Equal(t, 60*time.Second, cfg.ChatTimeout)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PREDICTOR_URL", "http://model:9000")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "http://model:9000", cfg.PredictorURL)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
}

func TestLoadBadValue(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}
