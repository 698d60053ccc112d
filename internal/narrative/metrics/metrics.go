package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for narrative generation.
type Metrics struct {
	// Outcomes by result: ok, empty, offline, missing_key
	Outcome *prometheus.CounterVec

	// Model call latency, including failed calls
	Latency prometheus.Histogram
}

// New creates a new Metrics instance with all narrative metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chimera_narrative_outcomes_total",
			Help: "Narrative generation outcomes by result",
		}, []string{"outcome"}),

		Latency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chimera_narrative_duration_seconds",
			Help:    "Duration of text model calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// IncrementOutcome records a generation result.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveLatency records a text model call duration.
func (m *Metrics) ObserveLatency(d time.Duration) {
	if m != nil {
		m.Latency.Observe(d.Seconds())
	}
}
