// Package metrics registers the HTTP-level Prometheus metrics shared across
// handlers. Feature-specific metrics live next to their feature packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the shared request metrics.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers the shared metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "policygate_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil || m.RequestDuration == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}
