package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a dashboard run.
type Metrics struct {
	RecordsLoaded    prometheus.Counter
	UnparseableDates prometheus.Counter
	UnknownTypeTags  prometheus.Counter
	SentinelFills    *prometheus.CounterVec // labels: column
	PipelineRunning  prometheus.Gauge

	// Run metrics.
	Runs             *prometheus.CounterVec   // labels: outcome={success,error}
	StageDuration    *prometheus.HistogramVec // labels: stage={extract,normalize,aggregate,publish}
	SinkErrors       *prometheus.CounterVec   // labels: sink
	LastRunTimestamp prometheus.Gauge
}

var stageBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.RecordsLoaded,
		m.UnparseableDates,
		m.UnknownTypeTags,
		m.SentinelFills,
		m.PipelineRunning,
		m.Runs,
		m.StageDuration,
		m.SinkErrors,
		m.LastRunTimestamp,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog_dashboard",
			Name:      "records_loaded_total",
			Help:      "Total catalog rows read from the input.",
		}),
		UnparseableDates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog_dashboard",
			Name:      "unparseable_dates_total",
			Help:      "Rows whose date_added did not match the expected format.",
		}),
		UnknownTypeTags: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog_dashboard",
			Name:      "unknown_type_tags_total",
			Help:      "Rows whose type is neither Movie nor TV Show.",
		}),
		SentinelFills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog_dashboard",
			Name:      "sentinel_fills_total",
			Help:      "Missing cells replaced with the Unknown sentinel, by column.",
		}, []string{"column"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "catalog_dashboard",
			Name:      "pipeline_running",
			Help:      "1 while a run is in progress, 0 otherwise.",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog_dashboard",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog_dashboard",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   stageBuckets,
		}, []string{"stage"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog_dashboard",
			Name:      "sink_errors_total",
			Help:      "Failed publishes by sink.",
		}, []string{"sink"}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "catalog_dashboard",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
}
