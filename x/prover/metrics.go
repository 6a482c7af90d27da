package prover

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/compose-network/prover-client/pkg/metrics"
)

// Metrics holds client-level metrics. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry *metrics.ComponentRegistry

	SubmissionsTotal *prometheus.CounterVec
	QueriesTotal     *prometheus.CounterVec
	ProofsCompleted  prometheus.Counter
	ProofsFailed     prometheus.Counter
	ProofsTimedOut   prometheus.Counter
	PollAttempts     prometheus.Histogram
	WaitDuration     prometheus.Histogram
}

// NewMetrics creates prover client metrics.
func NewMetrics() *Metrics {
	reg := metrics.NewComponentRegistry("prover_client", "")

	return &Metrics{
		registry: reg,

		SubmissionsTotal: reg.NewCounterVec(prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total proof submissions by mode and outcome",
		}, []string{"mode", "outcome"}),

		QueriesTotal: reg.NewCounterVec(prometheus.CounterOpts{
			Name: "status_queries_total",
			Help: "Total status queries by mode and outcome",
		}, []string{"mode", "outcome"}),

		ProofsCompleted: reg.NewCounter(prometheus.CounterOpts{
			Name: "proofs_completed_total",
			Help: "Total proofs returned complete",
		}),

		ProofsFailed: reg.NewCounter(prometheus.CounterOpts{
			Name: "proofs_failed_total",
			Help: "Total proofs that terminated in a remote failure",
		}),

		ProofsTimedOut: reg.NewCounter(prometheus.CounterOpts{
			Name: "proofs_timed_out_total",
			Help: "Total waits that exhausted the retry budget",
		}),

		PollAttempts: reg.NewHistogram(prometheus.HistogramOpts{
			Name:    "poll_attempts",
			Help:    "Number of status queries per wait",
			Buckets: metrics.CountBuckets,
		}),

		WaitDuration: reg.NewHistogram(prometheus.HistogramOpts{
			Name:    "wait_duration_seconds",
			Help:    "Wall-clock time spent waiting for a proof",
			Buckets: metrics.DurationBuckets,
		}),
	}
}

// Registry exposes the component registry for scraping.
func (m *Metrics) Registry() *metrics.ComponentRegistry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) observeSubmission(mode Mode, outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(string(mode), outcome).Inc()
}

func (m *Metrics) observeQuery(mode Mode, outcome string) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(string(mode), outcome).Inc()
}

func (m *Metrics) observeWait(attempts int, elapsed time.Duration, kind string) {
	if m == nil {
		return
	}
	m.PollAttempts.Observe(float64(attempts))
	m.WaitDuration.Observe(elapsed.Seconds())
	switch kind {
	case "complete":
		m.ProofsCompleted.Inc()
	case "failed":
		m.ProofsFailed.Inc()
	case "timeout":
		m.ProofsTimedOut.Inc()
	}
}
