package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	ValidationFailures  *prometheus.CounterVec
	GateDecisions       *prometheus.CounterVec
	AppointmentsCreated prometheus.Counter
	UsersRegistered     prometheus.Counter
}

// New creates all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer. Tests pass a fresh
// registry so repeated setup does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medibook_validation_failures_total",
			Help: "Total validation failures by rule set",
		}, []string{"rule_set"}),
		GateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medibook_gate_decisions_total",
			Help: "Access gate decisions by outcome",
		}, []string{"decision"}),
		AppointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "medibook_appointments_created_total",
			Help: "Total appointments accepted into the store",
		}),
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "medibook_users_registered_total",
			Help: "Total users registered",
		}),
	}
}

// ValidationFailure increments the failure counter for a rule set.
func (m *Metrics) ValidationFailure(ruleSet string) {
	m.ValidationFailures.WithLabelValues(ruleSet).Inc()
}

// GateDecision increments the decision counter for a gate outcome.
func (m *Metrics) GateDecision(decision string) {
	m.GateDecisions.WithLabelValues(decision).Inc()
}
