package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
)

// WorkbookExtractor reads the configured survey sheets from the source.
type WorkbookExtractor interface {
	ExtractWorkbook(ctx context.Context) (domain.Workbook, error)
}

// SheetTransformer turns one sheet into sightings plus diagnostics.
type SheetTransformer interface {
	TransformSheet(sheet domain.Sheet) domain.SheetResult
}

// Report summarizes one ingestion for diagnostics.
type Report struct {
	Sheets  []domain.SheetResult
	Missing []string
}

// Ingestor loads the full sighting set from the workbook on every call.
type Ingestor struct {
	extractor   WorkbookExtractor
	transformer SheetTransformer
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewIngestor creates an Ingestor with the given stages and observability.
func NewIngestor(e WorkbookExtractor, t SheetTransformer, logger *slog.Logger, metrics *observability.Metrics) *Ingestor {
	return &Ingestor{
		extractor:   e,
		transformer: t,
		logger:      logger,
		metrics:     metrics,
	}
}

// Load returns every sighting in the workbook, sheets concatenated in
// configured order. When the workbook cannot be read it logs the failure and
// returns an empty set together with the error; callers render that as an
// empty dashboard rather than failing.
func (i *Ingestor) Load(ctx context.Context) ([]domain.Sighting, error) {
	sightings, _, err := i.LoadReport(ctx)
	return sightings, err
}

// LoadReport is Load plus the per-sheet diagnostics.
func (i *Ingestor) LoadReport(ctx context.Context) ([]domain.Sighting, Report, error) {
	start := time.Now()

	wb, err := i.extractor.ExtractWorkbook(ctx)
	if err != nil {
		i.logger.Error("load workbook failed", "error", err)
		i.metrics.WorkbookLoads.WithLabelValues("error").Inc()
		i.metrics.LastSightings.Set(0)
		return []domain.Sighting{}, Report{}, err
	}

	report := Report{Missing: wb.Missing}
	for _, name := range wb.Missing {
		i.logger.Warn("survey sheet not found", "sheet", name)
		i.metrics.SheetsMissing.Inc()
	}

	sightings := []domain.Sighting{}
	for _, sheet := range wb.Sheets {
		res := i.transformer.TransformSheet(sheet)
		i.recordSkips(res)
		report.Sheets = append(report.Sheets, res)
		sightings = append(sightings, res.Sightings...)
	}

	i.metrics.WorkbookLoads.WithLabelValues("success").Inc()
	i.metrics.SightingsIngested.Add(float64(len(sightings)))
	i.metrics.LastSightings.Set(float64(len(sightings)))
	i.metrics.IngestDuration.Observe(time.Since(start).Seconds())

	i.logger.Info("workbook loaded",
		"sheets", len(wb.Sheets),
		"missing_sheets", len(wb.Missing),
		"sightings", len(sightings),
		"duration", time.Since(start),
	)
	return sightings, report, nil
}

func (i *Ingestor) recordSkips(res domain.SheetResult) {
	for reason, n := range res.Skipped {
		if reason == domain.SkipUnknownSpecies {
			i.metrics.RowsSkipped.WithLabelValues(string(reason)).Add(float64(n))
			continue
		}
		i.metrics.CellsSkipped.WithLabelValues(string(reason)).Add(float64(n))
	}
}
