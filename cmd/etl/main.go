// Command etl ingests the survey workbook once. With Kafka enabled it
// publishes every sighting to the configured topic; otherwise it writes the
// CSV export to stdout.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/bird-survey-dashboard/internal/adapter/excel"
	kafkaadapter "github.com/couchcryptid/bird-survey-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/bird-survey-dashboard/internal/config"
	"github.com/couchcryptid/bird-survey-dashboard/internal/export"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
	"github.com/couchcryptid/bird-survey-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr so CSV on stdout stays clean.
	logger := observability.NewLoggerTo(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, logger)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	metrics := observability.NewMetrics()

	reader := excel.NewReader(cfg, logger)
	transformer := pipeline.NewTransformer(nil, logger)
	ingestor := pipeline.NewIngestor(reader, transformer, logger, metrics)

	if !cfg.KafkaEnabled {
		sightings, err := ingestor.Load(ctx)
		if err != nil {
			return 1
		}
		if err := export.WriteCSV(os.Stdout, sightings); err != nil {
			logger.Error("write csv failed", "error", err)
			return 1
		}
		return 0
	}

	writer := kafkaadapter.NewWriter(cfg, logger)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()

	p := pipeline.New(ingestor, writer, logger, metrics, cfg.BatchSize)
	if _, err := p.Run(ctx); err != nil {
		logger.Error("publish failed", "error", err, "topic", cfg.KafkaTopic)
		return 1
	}
	return 0
}
