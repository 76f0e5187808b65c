// Package metrics provides Prometheus instrumentation for the submission
// manager. Grounded on infrastructure/metrics/metrics.go's collector-struct
// pattern.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every collector the manager and workers report to.
type Metrics struct {
	SubmitsTotal    *prometheus.CounterVec
	SubmitDuration  *prometheus.HistogramVec
	StopsTotal      *prometheus.CounterVec
	RunningGauge    prometheus.Gauge
	UpdateCycles    prometheus.Counter
	PurgeCycles     prometheus.Counter
	PurgedTotal     prometheus.Counter
}

// New creates a Metrics instance registered with the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Metrics instance registered with a custom
// registerer, useful for isolated unit tests.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SubmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "submission_manager_submits_total",
			Help: "Total number of submit() calls, labeled by outcome.",
		}, []string{"job_type", "outcome"}),
		SubmitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "submission_manager_submit_duration_seconds",
			Help:    "Duration of submit() calls, end to end.",
			Buckets: []float64{.01, .05, .1, .5, 1, 2, 5, 10, 30},
		}, []string{"job_type"}),
		StopsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "submission_manager_stops_total",
			Help: "Total number of stop() calls, labeled by outcome.",
		}, []string{"outcome"}),
		RunningGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "submission_manager_running_submissions",
			Help: "Submissions currently in a running state, as of the last update cycle.",
		}),
		UpdateCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "submission_manager_update_cycles_total",
			Help: "Total number of update-worker loop iterations.",
		}),
		PurgeCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "submission_manager_purge_cycles_total",
			Help: "Total number of purge-worker loop iterations.",
		}),
		PurgedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "submission_manager_purged_submissions_total",
			Help: "Total number of submissions removed by the purge worker.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.SubmitsTotal,
			m.SubmitDuration,
			m.StopsTotal,
			m.RunningGauge,
			m.UpdateCycles,
			m.PurgeCycles,
			m.PurgedTotal,
		)
	}
	return m
}

// RecordSubmit records the outcome of one submit() call.
func (m *Metrics) RecordSubmit(jobType, outcome string, seconds float64) {
	m.SubmitsTotal.WithLabelValues(jobType, outcome).Inc()
	m.SubmitDuration.WithLabelValues(jobType).Observe(seconds)
}

// RecordStop records the outcome of one stop() call.
func (m *Metrics) RecordStop(outcome string) {
	m.StopsTotal.WithLabelValues(outcome).Inc()
}
