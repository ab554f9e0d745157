// Package metrics registers intake-specific Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the intake pipeline metrics. All methods are nil-safe so
// tests can pass a nil receiver.
type Metrics struct {
	IntakesStarted     prometheus.Counter
	ExtractionFailures prometheus.Counter
	ExtractionLatency  prometheus.Histogram
	AnalysisFailures   prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	PoliciesCommitted  prometheus.Counter
	ChildrenCommitted  prometheus.Counter
	ChildWarnings      prometheus.Counter
}

// New creates and registers the intake metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		IntakesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policygate_intakes_started_total",
			Help: "Document intakes that passed the ingestion gate.",
		}),
		ExtractionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policygate_extraction_failures_total",
			Help: "Extraction calls that failed or returned unusable output.",
		}),
		ExtractionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "policygate_extraction_duration_seconds",
			Help:    "Latency of document-understanding extraction calls.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}),
		AnalysisFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policygate_analysis_failures_total",
			Help: "Advisory analysis calls that failed.",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "policygate_validation_failures_total",
			Help: "Validation failures by draft field.",
		}, []string{"field"}),
		PoliciesCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policygate_policies_committed_total",
			Help: "Policy aggregates committed by reconciliation.",
		}),
		ChildrenCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policygate_child_records_committed_total",
			Help: "Child records committed across all policies.",
		}),
		ChildWarnings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policygate_child_warnings_total",
			Help: "Child records skipped or failed during reconciliation.",
		}),
	}
}

func (m *Metrics) IncIntakesStarted() {
	if m != nil {
		m.IntakesStarted.Inc()
	}
}

func (m *Metrics) IncExtractionFailures() {
	if m != nil {
		m.ExtractionFailures.Inc()
	}
}

func (m *Metrics) ObserveExtractionLatency(d time.Duration) {
	if m != nil {
		m.ExtractionLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncAnalysisFailures() {
	if m != nil {
		m.AnalysisFailures.Inc()
	}
}

func (m *Metrics) IncValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) IncPoliciesCommitted() {
	if m != nil {
		m.PoliciesCommitted.Inc()
	}
}

func (m *Metrics) AddChildrenCommitted(n int) {
	if m != nil {
		m.ChildrenCommitted.Add(float64(n))
	}
}

func (m *Metrics) AddChildWarnings(n int) {
	if m != nil {
		m.ChildWarnings.Add(float64(n))
	}
}
