package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the presentation module.
type Metrics struct {
	// Phase entries by phase name
	PhaseEntered *prometheus.CounterVec

	// Time spent in each phase before leaving it
	PhaseDwell *prometheus.HistogramVec

	// Rejected triggers by trigger name
	TransitionRejected *prometheus.CounterVec

	// Live presentation sessions
	ActivePresentations prometheus.Gauge

	// Frames dropped because a subscriber was too slow
	FramesDropped prometheus.Counter
}

// New creates a new Metrics instance with all presentation metrics registered.
func New() *Metrics {
	return &Metrics{
		PhaseEntered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chimera_presentation_phase_entered_total",
			Help: "Total phase entries by phase",
		}, []string{"phase"}),

		PhaseDwell: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chimera_presentation_phase_dwell_seconds",
			Help:    "Time spent in a phase before the next transition",
			Buckets: []float64{0.5, 1, 2.5, 5, 7.5, 10, 15, 30, 60, 300},
		}, []string{"phase"}),

		TransitionRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chimera_presentation_transition_rejected_total",
			Help: "Triggers rejected by the transition table",
		}, []string{"trigger"}),

		ActivePresentations: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "chimera_presentation_active",
			Help: "Presentation sessions currently registered",
		}),

		FramesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chimera_presentation_events_dropped_total",
			Help: "Events not delivered because a subscriber buffer was full",
		}),
	}
}

// IncrementPhaseEntered records entry into phase.
func (m *Metrics) IncrementPhaseEntered(phase string) {
	if m != nil {
		m.PhaseEntered.WithLabelValues(phase).Inc()
	}
}

// ObservePhaseDwell records how long phase was on screen.
func (m *Metrics) ObservePhaseDwell(phase string, d time.Duration) {
	if m != nil {
		m.PhaseDwell.WithLabelValues(phase).Observe(d.Seconds())
	}
}

// IncrementRejected records a trigger the transition table refused.
func (m *Metrics) IncrementRejected(trigger string) {
	if m != nil {
		m.TransitionRejected.WithLabelValues(trigger).Inc()
	}
}

func (m *Metrics) IncrementActive() {
	if m != nil {
		m.ActivePresentations.Inc()
	}
}

func (m *Metrics) DecrementActive() {
	if m != nil {
		m.ActivePresentations.Dec()
	}
}

func (m *Metrics) IncrementDropped() {
	if m != nil {
		m.FramesDropped.Inc()
	}
}
