package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// UpstreamMetrics records calls to third-party APIs.
type UpstreamMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewUpstreamMetrics registers the upstream metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Upstream API calls by api and outcome.",
	}, []string{"api", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Upstream API call latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"api"})
	reg.MustRegister(calls, duration)
	return &UpstreamMetrics{
		calls:    calls,
		duration: duration,
	}
}

// Observe records one upstream call; err decides the outcome label.
func (m *UpstreamMetrics) Observe(api string, duration time.Duration, err error) {
	if m == nil || m.calls == nil {
		return
	}
	api = normalizeLabel(api)
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.calls.WithLabelValues(api, outcome).Inc()
	m.duration.WithLabelValues(api).Observe(duration.Seconds())
}
