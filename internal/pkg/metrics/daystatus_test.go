package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDayStatusMetrics_ObserveRecompute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDayStatusMetrics(reg)

	m.ObserveRecompute(RecomputeOutcomeWritten, false)
	m.ObserveRecompute(RecomputeOutcomeWritten, false)
	m.ObserveRecompute(RecomputeOutcomeSkippedManual, false)
	m.ObserveRecompute(RecomputeOutcomeWritten, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecomputeCount(RecomputeOutcomeWritten, false)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputeCount(RecomputeOutcomeSkippedManual, false)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputeCount(RecomputeOutcomeWritten, true)))
}

func TestDayStatusMetrics_NilSafe(t *testing.T) {
	var m *DayStatusMetrics
	assert.NotPanics(t, func() {
		m.ObserveRecompute(RecomputeOutcomeError, false)
		m.ObserveOverride("set")
		m.ObserveBackfill("cron", 3)
	})
}

func TestDayStatusMetrics_Backfill(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDayStatusMetrics(reg)

	m.ObserveBackfill("cron", 4)
	m.ObserveBackfill("cron", 0)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.backfillRuns.WithLabelValues("cron")))
}
