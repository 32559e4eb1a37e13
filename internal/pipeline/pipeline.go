package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// SightingSource produces the current sighting set.
type SightingSource interface {
	Load(ctx context.Context) ([]domain.Sighting, error)
}

// BatchLoader writes multiple sightings to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, sightings []domain.Sighting) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
	maxAttempts    = 5
)

// Pipeline publishes one ingestion's sightings to a loader in batches.
type Pipeline struct {
	source    SightingSource
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// New creates a Pipeline with the given stages and observability.
func New(s SightingSource, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Pipeline{
		source:    s,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run ingests the workbook once and publishes the sightings in batches,
// retrying a failed batch with exponential backoff. It returns the number of
// sightings published.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	sightings, err := p.source.Load(ctx)
	if err != nil {
		return 0, err
	}
	p.logger.Info("publishing sightings", "sightings", len(sightings), "batch_size", p.batchSize)

	published := 0
	for start := 0; start < len(sightings); start += p.batchSize {
		batch := sightings[start:min(start+p.batchSize, len(sightings))]
		if err := p.publish(ctx, batch); err != nil {
			return published, err
		}
		published += len(batch)
	}

	p.logger.Info("publish complete", "published", published)
	return published, nil
}

func (p *Pipeline) publish(ctx context.Context, batch []domain.Sighting) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = p.loader.LoadBatch(ctx, batch); err == nil {
			p.metrics.SightingsPublished.Add(float64(len(batch)))
			p.metrics.PublishBatchSize.Observe(float64(len(batch)))
			return nil
		}
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish batch failed", "error", err, "batch_size", len(batch), "attempt", attempt)

		if attempt == maxAttempts || !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("publish batch: %w", err)
}
