package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dashboard API.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: path, status
	RequestDuration *prometheus.HistogramVec // labels: path

	// Dataset load metrics, set once at startup.
	DatasetRows        prometheus.Gauge
	DatasetLoadSeconds prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incendios",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status code.",
		}, []string{"path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "incendios",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route template.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"path"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incendios",
			Name:      "dataset_rows",
			Help:      "Number of enriched incident rows loaded at startup.",
		}),
		DatasetLoadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incendios",
			Name:      "dataset_load_seconds",
			Help:      "Wall time spent loading and enriching the dataset.",
		}),
	}
}

// New creates the metrics and registers them with the default Prometheus
// registry.
func New() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.DatasetRows,
		m.DatasetLoadSeconds,
	)
	return m
}

// NewForTesting creates unregistered Metrics to avoid "already registered"
// panics when called from multiple tests.
func NewForTesting() *Metrics {
	return newMetrics()
}
