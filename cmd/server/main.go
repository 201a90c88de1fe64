// Command server starts the pay-parity assessment HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/ai/openrouter"
	"github.com/dhruvimehta17/pay-parity/internal/adapter/dataset"
	"github.com/dhruvimehta17/pay-parity/internal/adapter/docextract"
	httpserver "github.com/dhruvimehta17/pay-parity/internal/adapter/httpserver"
	"github.com/dhruvimehta17/pay-parity/internal/adapter/lookup/serper"
	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/internal/adapter/predictor"
	"github.com/dhruvimehta17/pay-parity/internal/app"
	"github.com/dhruvimehta17/pay-parity/internal/classify"
	"github.com/dhruvimehta17/pay-parity/internal/config"
	"github.com/dhruvimehta17/pay-parity/internal/usecase"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	rules, err := classify.NewRuleset()
	if err != nil {
		slog.Error("classification rules load failed", slog.Any("error", err))
		os.Exit(1)
	}

	// The reference dataset is required; peer comparisons are part of every
	// successful assessment.
	store, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		slog.Error("dataset load failed", slog.String("path", cfg.DatasetPath), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("dataset loaded", slog.String("path", cfg.DatasetPath), slog.Int("records", store.Len()))

	// Text acquisition pipeline: native decode, page render, OCR.
	decoder := docextract.NewDecoderClient(cfg.DecoderURL, cfg.ExtractTimeout)
	renderer := docextract.NewRendererClient(cfg.RendererURL, cfg.ExtractTimeout)
	ocr := docextract.NewOCRClient(cfg.OCRURL, cfg.ExtractTimeout)
	acquirer := docextract.New(decoder, renderer, ocr)

	aiClient := openrouter.New(cfg)
	lookupClient := serper.New(cfg)
	predictorClient := predictor.New(cfg.PredictorURL, cfg.AITimeout)

	assessSvc := usecase.NewAssessService(acquirer, aiClient, lookupClient, predictorClient, store, rules)
	chatSvc := usecase.NewChatService(aiClient)

	srv := httpserver.NewServer(cfg, assessSvc, chatSvc, predictorClient.Check, decoder.Check, store.Len)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
