package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/linnemanlabs/harken/internal/sound"
)

// Hooks lets the host observe engine decisions without the engine importing
// an instrumentation library. Nil fields are skipped.
type Hooks struct {
	OnFrame      func(uncertain bool, fired int)
	OnFire       func(ev *sound.Event)
	OnDeactivate func(category string, at float64)
}

// Metrics holds Prometheus metrics for the alert engine.
type Metrics struct {
	FramesTotal         prometheus.Counter
	UncertainFrames     prometheus.Counter
	FiresTotal          *prometheus.CounterVec
	DeactivationsTotal  *prometheus.CounterVec
	FireConfidence      *prometheus.HistogramVec
	FiresPerFrame       prometheus.Histogram
	ProfileChangesTotal *prometheus.CounterVec
	SessionResetsTotal  prometheus.Counter
}

// NewMetrics registers and returns engine metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harken_frames_total",
			Help: "Total classification frames processed.",
		}),
		UncertainFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harken_uncertain_frames_total",
			Help: "Frames vetoed by the uncertainty gate.",
		}),
		FiresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harken_alert_fires_total",
			Help: "Alert fires by category and tier.",
		}, []string{"category", "tier"}),
		DeactivationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harken_alert_deactivations_total",
			Help: "Alert deactivations by category.",
		}, []string{"category"}),
		FireConfidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harken_alert_fire_confidence",
			Help:    "Confidence at fire time by tier.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9), // 0.1 .. 0.9
		}, []string{"tier"}),
		FiresPerFrame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "harken_fires_per_frame",
			Help:    "Categories fired per processed frame.",
			Buckets: prometheus.LinearBuckets(0, 1, 5), // 0 .. 4
		}),
		ProfileChangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harken_profile_changes_total",
			Help: "Sensitivity profile changes by target level.",
		}, []string{"level"}),
		SessionResetsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harken_session_resets_total",
			Help: "Session state resets.",
		}),
	}

	reg.MustRegister(
		m.FramesTotal,
		m.UncertainFrames,
		m.FiresTotal,
		m.DeactivationsTotal,
		m.FireConfidence,
		m.FiresPerFrame,
		m.ProfileChangesTotal,
		m.SessionResetsTotal,
	)

	return m
}

// Hooks returns engine hooks that increment the corresponding metrics.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnFrame: func(uncertain bool, fired int) {
			m.FramesTotal.Inc()
			if uncertain {
				m.UncertainFrames.Inc()
			}
			m.FiresPerFrame.Observe(float64(fired))
		},
		OnFire: func(ev *sound.Event) {
			m.FiresTotal.WithLabelValues(ev.Category, ev.Tier.String()).Inc()
			m.FireConfidence.WithLabelValues(ev.Tier.String()).Observe(ev.Confidence)
		},
		OnDeactivate: func(category string, _ float64) {
			m.DeactivationsTotal.WithLabelValues(category).Inc()
		},
	}
}
