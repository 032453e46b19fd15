package authz

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records authorization decisions.
type Metrics struct {
	decisions *prometheus.CounterVec
	denied    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewMetrics registers the authorization collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Authorization decisions by entity, operation and outcome.",
		}, []string{"entity", "operation", "decision"}),
		denied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authz_denied_total",
			Help: "Authorization denials by reason.",
		}, []string{"entity", "operation", "reason"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authz_decision_duration_seconds",
			Help:    "Time spent evaluating the policy table.",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001},
		}, []string{"entity"}),
	}
}

func (m *Metrics) observe(entity Entity, op Operation, d Decision, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "allow"
	if !d.Allowed {
		outcome = "deny"
		m.denied.WithLabelValues(string(entity), string(op), string(d.Reason)).Inc()
	}
	m.decisions.WithLabelValues(string(entity), string(op), outcome).Inc()
	m.latency.WithLabelValues(string(entity)).Observe(elapsed.Seconds())
}
