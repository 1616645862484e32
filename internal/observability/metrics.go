package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dataset loader and the dashboard HTTP surface.
type Metrics struct {
	LoadsTotal      prometheus.Counter
	LoadErrorsTotal prometheus.Counter
	LoadDuration    prometheus.Histogram
	DatasetReady    prometheus.Gauge

	// Dataset content metrics, set after each successful load.
	RecordsLoaded  prometheus.Gauge
	YearsSkipped   prometheus.Gauge
	RecordsDropped prometheus.Gauge
	ValueCoercions prometheus.Gauge
	DateCoercions  prometheus.Gauge

	HTTPRequests *prometheus.CounterVec // labels: route, code
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LoadsTotal,
		m.LoadErrorsTotal,
		m.LoadDuration,
		m.DatasetReady,
		m.RecordsLoaded,
		m.YearsSkipped,
		m.RecordsDropped,
		m.ValueCoercions,
		m.DateCoercions,
		m.HTTPRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LoadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "dataset_loads_total",
			Help:      "Total dataset load attempts.",
		}),
		LoadErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "dataset_load_errors_total",
			Help:      "Total dataset load attempts that failed.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aria",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a complete read-parse-join load.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "dataset_ready",
			Help:      "1 when the unified dataset is loaded and servable.",
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "dataset_records",
			Help:      "Rows in the unified dataset after the last load.",
		}),
		YearsSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "dataset_years_skipped",
			Help:      "Supported years with no archive file in the last load.",
		}),
		RecordsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "dataset_records_dropped",
			Help:      "Measurement records dropped for missing required fields.",
		}),
		ValueCoercions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "dataset_value_coercions",
			Help:      "Non-numeric measurement values coerced to missing.",
		}),
		DateCoercions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "dataset_date_coercions",
			Help:      "Unparsable measurement dates coerced to missing.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "http_requests_total",
			Help:      "Dashboard API requests by route and status code.",
		}, []string{"route", "code"}),
	}
}
