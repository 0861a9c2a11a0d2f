// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package metrics provides Prometheus instrumentation for:
//   - API endpoint latency and throughput
//   - Upstream registration-API calls and relay outcomes
//   - Circuit breaker state for the derived-data upstream path
//   - Photo store (DuckDB) query performance
//   - Cache efficiency for the derived-data endpoints
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Upstream registration API metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests forwarded to the registration API",
		},
		[]string{"car", "endpoint", "status_code"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Registration API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"car", "endpoint"},
	)

	UpstreamRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_errors_total",
			Help: "Total number of failed registration API requests",
		},
		[]string{"car", "endpoint", "error_type"},
	)

	// Proxy gateway policy rejections (allow-list and auth failures)
	ProxyRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_rejections_total",
			Help: "Total number of proxy requests rejected before reaching upstream",
		},
		[]string{"reason"}, // "endpoint", "car", "unauthorized", "misconfigured"
	)

	// Circuit breaker metrics (derived-data upstream path)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Photo store metrics
	PhotoQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_query_duration_seconds",
			Help:    "Duration of photo store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PhotoQueryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_query_errors_total",
			Help: "Total number of photo store query errors",
		},
	)

	// Cache metrics (derived-data endpoints)
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upstream_cache_hits_total",
			Help: "Total number of upstream payload cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upstream_cache_misses_total",
			Help: "Total number of upstream payload cache misses",
		},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordUpstreamRequest records metrics for a completed upstream call.
func RecordUpstreamRequest(car, endpoint string, statusCode int, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(car, endpoint, strconv.Itoa(statusCode)).Inc()
	UpstreamRequestDuration.WithLabelValues(car, endpoint).Observe(duration.Seconds())
}
