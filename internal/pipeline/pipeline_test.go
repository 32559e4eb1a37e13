package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/bird-survey-dashboard/internal/domain"
	"github.com/couchcryptid/bird-survey-dashboard/internal/observability"
	"github.com/couchcryptid/bird-survey-dashboard/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	wb  domain.Workbook
	err error
}

func (m *mockExtractor) ExtractWorkbook(_ context.Context) (domain.Workbook, error) {
	return m.wb, m.err
}

type mockSource struct {
	sightings []domain.Sighting
	err       error
}

func (m *mockSource) Load(_ context.Context) ([]domain.Sighting, error) {
	return m.sightings, m.err
}

type mockLoader struct {
	batches  [][]domain.Sighting
	failures int
	err      error
}

func (m *mockLoader) LoadBatch(_ context.Context, sightings []domain.Sighting) error {
	if m.failures > 0 {
		m.failures--
		return errors.New("broker unavailable")
	}
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, sightings)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- fixtures ---

func text(s string) domain.Cell { return domain.TextCell(s) }

func num(f float64) domain.Cell { return domain.NumberCell(f) }

// surveySheet lays out a sheet with two survey columns (D and F) and a
// running-total column (E) between them.
func surveySheet(name string, rows ...[]domain.Cell) domain.Sheet {
	blank := domain.Cell{}
	grid := [][]domain.Cell{
		{},
		{blank, blank, blank, text("A. Walker"), blank, text("B. Hart")},
		{blank, blank, blank, text("15/04/2024"), text("Monthly Totals"), num(45432)},
		{blank, blank, blank, text("Top Meadow"), blank},
		{},
		{},
	}
	grid = append(grid, rows...)
	return domain.Sheet{Name: name, Rows: grid}
}

func speciesRow(name string, d, e, f domain.Cell) []domain.Cell {
	blank := domain.Cell{}
	return []domain.Cell{text(name), blank, blank, d, e, f}
}

func makeSightings(n int) []domain.Sighting {
	out := make([]domain.Sighting, n)
	for i := range out {
		out[i] = domain.Sighting{
			Taxon:     domain.Taxon{Name: "Robin", Category: domain.Green},
			Surveyors: "A. Walker",
			Date:      time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
			Location:  "Top Meadow",
			Count:     i + 1,
		}
	}
	return out
}

// --- ingestor ---

func TestIngestor_Load_ConcatenatesSheets(t *testing.T) {
	ext := &mockExtractor{wb: domain.Workbook{
		Sheets: []domain.Sheet{
			surveySheet("2024",
				speciesRow("Robin", num(3), num(3), num(2)),
				speciesRow("Dodo", num(1), domain.Cell{}, domain.Cell{}),
			),
			surveySheet("2025",
				speciesRow("Skylark", text("4"), domain.Cell{}, text("c. 5")),
			),
		},
		Missing: []string{"2026"},
	}}
	metrics := newTestMetrics()
	ing := pipeline.NewIngestor(ext, pipeline.NewTransformer(nil, discardLogger()), discardLogger(), metrics)

	sightings, report, err := ing.LoadReport(context.Background())
	require.NoError(t, err)

	require.Len(t, sightings, 3)
	assert.Equal(t, "Robin", sightings[0].Species())
	assert.Equal(t, "Top Meadow", sightings[0].Location)
	assert.Equal(t, "Robin", sightings[1].Species())
	assert.Equal(t, "Unknown", sightings[1].Location)
	assert.Equal(t, "B. Hart", sightings[1].Surveyors)
	assert.Equal(t, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), sightings[1].Date)
	assert.Equal(t, "Skylark", sightings[2].Species())
	assert.Equal(t, 4, sightings[2].Count)

	assert.Equal(t, []string{"2026"}, report.Missing)
	require.Len(t, report.Sheets, 2)
	assert.Equal(t, []int{3, 5}, report.Sheets[0].DataColumns)

	assert.InDelta(t, 3, testutil.ToFloat64(metrics.SightingsIngested), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.LastSightings), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SheetsMissing), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RowsSkipped.WithLabelValues("unknown_species")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CellsSkipped.WithLabelValues("invalid_count")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WorkbookLoads.WithLabelValues("success")), 0)
}

func TestIngestor_Load_FileFailureReturnsEmpty(t *testing.T) {
	ext := &mockExtractor{err: errors.New("open workbook: no such file")}
	metrics := newTestMetrics()
	ing := pipeline.NewIngestor(ext, pipeline.NewTransformer(nil, discardLogger()), discardLogger(), metrics)

	sightings, err := ing.Load(context.Background())
	require.Error(t, err)
	assert.NotNil(t, sightings)
	assert.Empty(t, sightings)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WorkbookLoads.WithLabelValues("error")), 0)
}

func TestIngestor_Load_NoSheets(t *testing.T) {
	ext := &mockExtractor{wb: domain.Workbook{Missing: []string{"2024", "2025"}}}
	ing := pipeline.NewIngestor(ext, pipeline.NewTransformer(nil, discardLogger()), discardLogger(), newTestMetrics())

	sightings, err := ing.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sightings)
}

func TestSurveyTransformer_LogsSkips(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sheet := surveySheet("2024",
		speciesRow("Dodo", num(1), domain.Cell{}, domain.Cell{}),
		speciesRow("Robin", text("lots"), domain.Cell{}, domain.Cell{}),
	)
	sheet.Rows[2][3] = text("31/31/2024")

	res := pipeline.NewTransformer(nil, logger).TransformSheet(sheet)
	assert.Empty(t, res.Sightings)

	out := buf.String()
	assert.Contains(t, out, "unknown species")
	assert.Contains(t, out, "name=Dodo")
	assert.NotContains(t, out, "invalid count", "count failures only log at debug")
}

func TestSurveyTransformer_DateErrorsAreWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	sheet := surveySheet("2024", speciesRow("Robin", num(2), domain.Cell{}, domain.Cell{}))
	sheet.Rows[2][3] = text("31/31/2024")

	res := pipeline.NewTransformer(nil, logger).TransformSheet(sheet)
	assert.Empty(t, res.Sightings)
	assert.Contains(t, buf.String(), "unparseable survey date")
	assert.Contains(t, buf.String(), "raw=31/31/2024")
}

// --- publishing pipeline ---

func TestPipeline_Run_PublishesInBatches(t *testing.T) {
	src := &mockSource{sightings: makeSightings(5)}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(src, ldr, discardLogger(), metrics, 2)

	n, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.Len(t, ldr.batches, 3)
	assert.Len(t, ldr.batches[0], 2)
	assert.Len(t, ldr.batches[2], 1)
	assert.Equal(t, 5, ldr.batches[2][0].Count)
	assert.InDelta(t, 5, testutil.ToFloat64(metrics.SightingsPublished), 0)
}

func TestPipeline_Run_RetriesFailedBatch(t *testing.T) {
	src := &mockSource{sightings: makeSightings(1)}
	ldr := &mockLoader{failures: 1}
	metrics := newTestMetrics()

	p := pipeline.New(src, ldr, discardLogger(), metrics, 10)

	n, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.PublishErrors), 0)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	src := &mockSource{sightings: makeSightings(3)}
	ldr := &mockLoader{err: errors.New("broker unavailable")}

	p := pipeline.New(src, ldr, discardLogger(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	n, err := p.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, n)
}

func TestPipeline_Run_SourceError(t *testing.T) {
	src := &mockSource{err: errors.New("open workbook: corrupt")}
	ldr := &mockLoader{}

	p := pipeline.New(src, ldr, discardLogger(), newTestMetrics(), 10)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, ldr.batches)
}

func TestPipeline_Run_NothingToPublish(t *testing.T) {
	p := pipeline.New(&mockSource{}, &mockLoader{}, discardLogger(), newTestMetrics(), 10)

	n, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
