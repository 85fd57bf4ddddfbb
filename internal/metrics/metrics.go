// Package metrics exposes dashboard and remote-API metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by the dashboard.
const (
	OutcomeOK            = "ok"
	OutcomeRedirect      = "redirect"
	OutcomeUpstreamError = "upstream_error"
)

type Metrics struct {
	Registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "botdash_list_requests_total",
			Help: "List page requests served, by resource and outcome.",
		}, []string{"resource", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "botdash_list_request_duration_seconds",
			Help:    "Time spent serving a list page, remote call included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
	}
	m.Registry.MustRegister(m.requests, m.duration)
	return m
}

// Observe records one served list request.
func (m *Metrics) Observe(resource, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(resource, outcome).Inc()
	m.duration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// Requests returns the counter for tests and status pages.
func (m *Metrics) Requests(resource, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(resource, outcome)
}
