// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv           string `env:"APP_ENV" envDefault:"dev"`
	Port             int    `env:"PORT" envDefault:"8000"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:8080,http://127.0.0.1:8080"`
	RateLimitPerMin  int    `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	MaxUploadMB      int64  `env:"MAX_UPLOAD_MB" envDefault:"10"`

	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterReferer string `env:"OPENROUTER_REFERER" envDefault:"http://localhost:8080"`
	OpenRouterTitle   string `env:"OPENROUTER_TITLE" envDefault:"PayParity"`

	SerperAPIKey  string `env:"SERPER_API_KEY"`
	SerperBaseURL string `env:"SERPER_BASE_URL" envDefault:"https://google.serper.dev"`

	// PredictorURL points at the model server exposing the trained salary
	// model. The service consumes it as a black box over HTTP.
	PredictorURL string `env:"PREDICTOR_URL" envDefault:"http://localhost:9000"`
	// DecoderURL is the document decoding service (Tika-compatible) used for
	// native PDF/DOCX text extraction.
	DecoderURL  string `env:"DECODER_URL" envDefault:"http://localhost:9998"`
	OCRURL      string `env:"OCR_URL" envDefault:"http://localhost:8866"`
	RendererURL string `env:"RENDERER_URL" envDefault:"http://localhost:8867"`

	DatasetPath string `env:"DATASET_PATH" envDefault:"data/salaries.csv"`

	// External calls fail fast after these deadlines; there is no retry.
	AITimeout      time.Duration `env:"AI_TIMEOUT" envDefault:"20s"`
	LookupTimeout  time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"25s"`
	ChatTimeout    time.Duration `env:"CHAT_TIMEOUT" envDefault:"60s"`
	ExtractTimeout time.Duration `env:"EXTRACT_TIMEOUT" envDefault:"15s"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"pay-parity"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }
