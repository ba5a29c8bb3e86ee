package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	// Double registration must surface.
	assert.Error(t, m.Register(reg))
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.ObserveOptimization("csp", "ok", 2*time.Millisecond, 7)
	m.ObserveOptimization("csp", "error", time.Millisecond, 0)
	m.ObserveDrop("invalid_date")

	assert.Equal(t, 7.0, testutil.ToFloat64(m.CandidatesEvaluated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OptimizationsTotal.WithLabelValues("csp", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OptimizationsTotal.WithLabelValues("csp", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CandidatesDropped.WithLabelValues("invalid_date")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOptimization("csp", "ok", time.Millisecond, 3)
		m.ObserveDrop("expired")
	})
	assert.NoError(t, m.Register(prometheus.NewRegistry()))
}
