package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the optimizer. A nil
// *Metrics is valid and records nothing, so callers can wire telemetry
// only where it is scraped.
type Metrics struct {
	OptimizationsTotal  *prometheus.CounterVec
	OptimizationSeconds *prometheus.HistogramVec
	CandidatesEvaluated prometheus.Counter
	CandidatesDropped   *prometheus.CounterVec
}

// NewMetrics creates all optimizer collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		OptimizationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenorpick_optimizations_total",
				Help: "Optimization calls by strategy and result",
			},
			[]string{"strategy", "result"},
		),
		OptimizationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tenorpick_optimization_duration_seconds",
				Help:    "Wall time of a single optimization call",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"strategy"},
		),
		CandidatesEvaluated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tenorpick_candidates_evaluated_total",
				Help: "Expiration candidates scored",
			},
		),
		CandidatesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenorpick_candidates_dropped_total",
				Help: "Candidates dropped during normalization by reason",
			},
			[]string{"reason"},
		),
	}
}

// Register adds all collectors to the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	for _, c := range []prometheus.Collector{
		m.OptimizationsTotal,
		m.OptimizationSeconds,
		m.CandidatesEvaluated,
		m.CandidatesDropped,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveOptimization records one completed optimization call.
func (m *Metrics) ObserveOptimization(strategy, result string, elapsed time.Duration, evaluated int) {
	if m == nil {
		return
	}
	m.OptimizationsTotal.WithLabelValues(strategy, result).Inc()
	m.OptimizationSeconds.WithLabelValues(strategy).Observe(elapsed.Seconds())
	m.CandidatesEvaluated.Add(float64(evaluated))
}

// ObserveDrop records a candidate dropped during normalization.
func (m *Metrics) ObserveDrop(reason string) {
	if m == nil {
		return
	}
	m.CandidatesDropped.WithLabelValues(reason).Inc()
}
