package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bird_survey"

// Metrics holds the Prometheus counters, histograms, and gauges for workbook
// ingestion and sighting publishing.
type Metrics struct {
	WorkbookLoads     *prometheus.CounterVec // labels: outcome={success,error}
	SightingsIngested prometheus.Counter
	RowsSkipped       *prometheus.CounterVec // labels: reason
	CellsSkipped      *prometheus.CounterVec // labels: reason
	SheetsMissing     prometheus.Counter
	IngestDuration    prometheus.Histogram
	LastSightings     prometheus.Gauge

	// Publishing metrics.
	SightingsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	PublishBatchSize   prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.WorkbookLoads,
		m.SightingsIngested,
		m.RowsSkipped,
		m.CellsSkipped,
		m.SheetsMissing,
		m.IngestDuration,
		m.LastSightings,
		m.SightingsPublished,
		m.PublishErrors,
		m.PublishBatchSize,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		WorkbookLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workbook_loads_total",
			Help:      "Workbook ingestions by outcome.",
		}, []string{"outcome"}),
		SightingsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sightings_ingested_total",
			Help:      "Total sightings produced by workbook ingestion.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Species rows skipped during ingestion, by reason.",
		}, []string{"reason"}),
		CellsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_skipped_total",
			Help:      "Count cells that produced no sighting, by reason.",
		}, []string{"reason"}),
		SheetsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheets_missing_total",
			Help:      "Configured survey sheets absent from the workbook.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a full workbook ingestion.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		LastSightings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_ingest_sightings",
			Help:      "Number of sightings returned by the most recent ingestion.",
		}),
		SightingsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sightings_published_total",
			Help:      "Total sightings written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed batch writes to the Kafka topic.",
		}),
		PublishBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_batch_size",
			Help:      "Number of sightings per published batch.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
	}
}
