package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for shiplog. Each registry
// owns its prometheus.Registry so tests and runs never collide.
type MetricsRegistry struct {
	Registry *prometheus.Registry

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Report Metrics
	ReportsTotal       *prometheus.CounterVec
	RowsExportedTotal  *prometheus.CounterVec
	ShipmentsLoadTotal prometheus.Counter
}

const (
	OutcomeOK       = "ok"
	OutcomeExported = "exported"
	OutcomeError    = "error"
)

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsRegistry{
		Registry: reg,

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiplog_db_queries_total",
				Help: "Total database queries by query name",
			},
			[]string{"query"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shiplog_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"query"},
		),

		ReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiplog_reports_total",
				Help: "Total reports run by report name and outcome",
			},
			[]string{"report", "outcome"},
		),
		RowsExportedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiplog_rows_exported_total",
				Help: "Total rows written to export files by report name",
			},
			[]string{"report"},
		),
		ShipmentsLoadTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shiplog_shipments_loaded_total",
				Help: "Total shipment records loaded from JSON",
			},
		),
	}
}

// WriteTextfile dumps the registry in the Prometheus text format, for the
// node_exporter textfile collector.
func (m *MetricsRegistry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
