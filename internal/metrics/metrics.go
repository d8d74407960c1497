// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcomes.
const (
	ResolveMatch   = "match"
	ResolveNoMatch = "no_match"
)

var (
	// Catalog Index Metrics
	CatalogBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_build_duration_seconds",
			Help:    "Duration of catalog index builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the indexed catalog",
		},
	)

	CatalogVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_vocabulary_terms",
			Help: "Number of TF-IDF vocabulary terms",
		},
	)

	CatalogSimilarityBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_similarity_matrix_bytes",
			Help: "Memory held by the pairwise similarity matrix",
		},
	)

	// Query Metrics
	ResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolve_requests_total",
			Help: "Title resolutions by outcome",
		},
		[]string{"outcome"},
	)

	ResolveCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resolve_cache_hits_total",
			Help: "Title resolutions served from cache",
		},
	)

	ResolveCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resolve_cache_misses_total",
			Help: "Title resolutions computed against the catalog",
		},
	)

	ResolveCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resolve_cache_entries",
			Help: "Current number of cached title resolutions",
		},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rank_duration_seconds",
			Help:    "Duration of ranking a single anchor in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	RankResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rank_results",
			Help:    "Number of recommendations returned per ranking",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// API Endpoint Metrics
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
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// TMDB Snapshot Metrics
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "TMDB API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordCatalogBuild records a completed index build.
func RecordCatalogBuild(duration time.Duration, movies, vocabulary, matrixBytes int) {
	CatalogBuildDuration.Observe(duration.Seconds())
	CatalogMovies.Set(float64(movies))
	CatalogVocabularySize.Set(float64(vocabulary))
	CatalogSimilarityBytes.Set(float64(matrixBytes))
}

// RecordResolve records a resolution outcome and whether it came from cache.
func RecordResolve(matched, cached bool) {
	outcome := ResolveNoMatch
	if matched {
		outcome = ResolveMatch
	}
	ResolveTotal.WithLabelValues(outcome).Inc()

	if cached {
		ResolveCacheHits.Inc()
	} else {
		ResolveCacheMisses.Inc()
	}
}

// RecordRank records one ranking call.
func RecordRank(duration time.Duration, results int) {
	RankDuration.Observe(duration.Seconds())
	RankResults.Observe(float64(results))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTMDBRequest counts a TMDB call outcome.
func RecordTMDBRequest(endpoint, outcome string) {
	TMDBRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
