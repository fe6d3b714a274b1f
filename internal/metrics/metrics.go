// Package metrics holds the Prometheus collectors exported on /metrics.
//
// HTTP metrics:
//   - fyyur_http_requests_total{method,route,status}
//   - fyyur_http_request_duration_seconds{method,route}
//
// Directory metrics:
//   - fyyur_mutations_total{entity,op,outcome}  outcome is "ok" or an error kind
//   - fyyur_cache_results_total{result}          hit, miss or bypass
//   - fyyur_events_published_total{outcome}
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_http_requests_total",
			Help: "HTTP requests served, by method, route template and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fyyur_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_mutations_total",
			Help: "Directory writes by entity, operation and outcome.",
		},
		[]string{"entity", "op", "outcome"},
	)

	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_cache_results_total",
			Help: "Response cache lookups and purges.",
		},
		[]string{"result"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fyyur_events_published_total",
			Help: "Directory events handed to the broker.",
		},
		[]string{"outcome"},
	)
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordMutation counts one create/update/delete attempt.
func RecordMutation(entity, op, outcome string) {
	MutationsTotal.WithLabelValues(entity, op, outcome).Inc()
}
