package picker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts picker activity.
type Metrics struct {
	bound         prometheus.Gauge
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewMetrics registers the picker collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		bound: f.NewGauge(prometheus.GaugeOpts{
			Name: "picker_bound_instances",
			Help: "Number of inputs currently bound to a picker.",
		}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "picker_transitions_total",
			Help: "Checked-state transitions applied to pickers.",
		}, []string{"kind", "origin", "state"}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "picker_notifications_total",
			Help: "Change notifications delivered to subscribers.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) setBound(n int) {
	if m == nil {
		return
	}
	m.bound.Set(float64(n))
}

func (m *Metrics) transition(kind Kind, origin Origin, checked bool) {
	if m == nil {
		return
	}
	state := "unchecked"
	if checked {
		state = "checked"
	}
	m.transitions.WithLabelValues(kind.String(), origin.String(), state).Inc()
}

func (m *Metrics) notified(kind Kind) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind.String()).Inc()
}
