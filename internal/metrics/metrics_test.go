package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.BlocksRemoved(CauseMatch, 3)
	m.BlocksRemoved(CauseMatch, 2)
	m.BlocksRemoved(CauseSink, 1)
	m.BlocksRemoved(CauseSink, 0)
	m.RowsActivated(2)
	m.Throw("normal", "hit")
	m.Throw("normal", "hit")
	m.SetLive(42)
	m.RoundFinished("cleared")

	assert.Equal(t, 5.0, testutil.ToFloat64(m.removed.WithLabelValues(CauseMatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.removed.WithLabelValues(CauseSink)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.activated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.throws.WithLabelValues("normal", "hit")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.live))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rounds.WithLabelValues("cleared")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BlocksRemoved(CauseMatch, 1)
		m.RowsActivated(1)
		m.Throw("multi", "miss")
		m.SetLive(1)
		m.RoundFinished("failed")
	})
}

func TestRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
