package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics shared by every router.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	Requests       *prometheus.CounterVec
	OpenStreams    prometheus.Gauge
}

// New creates and registers all HTTP metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chimera_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chimera_http_requests_total",
			Help: "HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),

		OpenStreams: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "chimera_http_event_streams_open",
			Help: "Server-Sent Event streams currently open",
		}),
	}
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, method).Observe(d.Seconds())
	m.Requests.WithLabelValues(route, method, status).Inc()
}

func (m *Metrics) IncrementStreams() {
	if m != nil {
		m.OpenStreams.Inc()
	}
}

func (m *Metrics) DecrementStreams() {
	if m != nil {
		m.OpenStreams.Dec()
	}
}
