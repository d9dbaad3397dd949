package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	RecomputeOutcomeWritten       = "written"
	RecomputeOutcomeSkippedManual = "skipped_manual"
	RecomputeOutcomeError         = "error"
)

// DayStatusMetrics tracks materializer activity.
type DayStatusMetrics struct {
	recompute    *prometheus.CounterVec
	overrides    *prometheus.CounterVec
	backfillRuns *prometheus.CounterVec
}

var (
	dayStatusMetricsOnce sync.Once
	dayStatusMetrics     *DayStatusMetrics
)

// DayStatus returns the process-wide metrics registered on the default registerer.
func DayStatus() *DayStatusMetrics {
	dayStatusMetricsOnce.Do(func() {
		dayStatusMetrics = NewDayStatusMetrics(prometheus.DefaultRegisterer)
	})
	return dayStatusMetrics
}

// NewDayStatusMetrics builds the collectors and registers them on reg when reg is non-nil.
func NewDayStatusMetrics(reg prometheus.Registerer) *DayStatusMetrics {
	m := &DayStatusMetrics{
		recompute: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "daystatus",
			Name:      "recompute_total",
			Help:      "Day status recomputations by outcome. Writes inside a transaction count once it commits.",
		}, []string{"outcome", "forced"}),
		overrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "daystatus",
			Name:      "override_total",
			Help:      "Manual override changes by action.",
		}, []string{"action"}),
		backfillRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "daystatus",
			Name:      "backfill_cells_total",
			Help:      "Cells processed by backfill, by trigger.",
		}, []string{"trigger"}),
	}
	if reg != nil {
		reg.MustRegister(m.recompute, m.overrides, m.backfillRuns)
	}
	return m
}

func (m *DayStatusMetrics) ObserveRecompute(outcome string, forced bool) {
	if m == nil {
		return
	}
	f := "false"
	if forced {
		f = "true"
	}
	m.recompute.WithLabelValues(outcome, f).Inc()
}

func (m *DayStatusMetrics) ObserveOverride(action string) {
	if m == nil {
		return
	}
	m.overrides.WithLabelValues(action).Inc()
}

func (m *DayStatusMetrics) ObserveBackfill(trigger string, cells int) {
	if m == nil || cells <= 0 {
		return
	}
	m.backfillRuns.WithLabelValues(trigger).Add(float64(cells))
}

// RecomputeCount exposes a counter value for tests.
func (m *DayStatusMetrics) RecomputeCount(outcome string, forced bool) prometheus.Counter {
	f := "false"
	if forced {
		f = "true"
	}
	return m.recompute.WithLabelValues(outcome, f)
}
