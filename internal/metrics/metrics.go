package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentalert_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentalert_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Alert engine metrics
	AlertQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentalert_alert_queries_total",
			Help: "Total number of record store queries issued by the alert engine",
		},
		[]string{"source", "status"}, // status: success, failed
	)

	AlertComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rentalert_alert_compute_duration_seconds",
			Help:    "Time taken to compute one alert batch",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
	)

	AlertsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentalert_alerts_emitted_total",
			Help: "Total number of alerts emitted, by type",
		},
		[]string{"type"},
	)

	AlertComputeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentalert_alert_compute_failures_total",
			Help: "Total number of alert computations that failed",
		},
		[]string{"reason"}, // reason: timeout, unavailable, invalid
	)

	// Cache metrics
	AlertCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentalert_alert_cache_hits_total",
			Help: "Alert computations served from the caller-side cache",
		},
	)

	AlertCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentalert_alert_cache_misses_total",
			Help: "Alert computations that had to hit the engine",
		},
	)
)
