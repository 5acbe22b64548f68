package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records login attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careergate_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// GuardDecisions counts route guard outcomes (allow|redirect).
	GuardDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careergate_guard_decisions_total",
			Help: "Total number of route guard decisions",
		},
		[]string{"outcome"},
	)

	// UpstreamRequests counts calls to the portal backend by endpoint and result.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careergate_upstream_requests_total",
			Help: "Total number of upstream backend requests",
		},
		[]string{"endpoint", "result"},
	)

	// ActiveSessions tracks sessions with a live notification cache entry.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "careergate_active_sessions",
			Help: "Number of active portal sessions",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careergate_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
