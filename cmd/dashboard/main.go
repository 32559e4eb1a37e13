package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/bird-survey-dashboard/internal/adapter/excel"
	"github.com/couchcryptid/bird-survey-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
	"github.com/couchcryptid/bird-survey-dashboard/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	reader := excel.NewReader(cfg, logger)
	transformer := pipeline.NewTransformer(nil, logger)
	ingestor := pipeline.NewIngestor(reader, transformer, logger, metrics)

	dash, err := httpadapter.NewDashboard(ingestor, cfg, logger)
	if err != nil {
		logger.Error("failed to build dashboard", "error", err)
		os.Exit(1)
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, reader, dash, logger)

	logger.Info("serving survey workbook",
		"path", cfg.WorkbookPath,
		"sheets", cfg.SurveySheets,
		"taxa", domain.DefaultTaxonomy().Len(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
