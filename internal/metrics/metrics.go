// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blog_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_rate_limit_hits_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	PostViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_post_views_total",
			Help: "Page views reported by the analytics beacon",
		},
		[]string{"slug"},
	)

	EngagementEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_engagement_events_total",
			Help: "Engagement events reported by the analytics beacon",
		},
		[]string{"event"},
	)

	MediaOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_media_operations_total",
			Help: "Media storage calls by operation and result (success, failure, canceled, rejected)",
		},
		[]string{"operation", "result"},
	)

	// 0 closed, 1 open, 2 half-open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blog_circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
		},
		[]string{"name"},
	)
)

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordPostView(slug string) {
	PostViews.WithLabelValues(slug).Inc()
}

func RecordEngagement(event string) {
	EngagementEvents.WithLabelValues(event).Inc()
}

func RecordMediaOperation(operation, result string) {
	MediaOperations.WithLabelValues(operation, result).Inc()
}
