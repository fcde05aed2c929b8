// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Metadata Cache Metrics
	MetadataCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_hits_total",
			Help: "Total number of metadata lookups served from cache",
		},
	)

	MetadataCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_misses_total",
			Help: "Total number of metadata lookups that went to the external service",
		},
	)

	MetadataCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "metadata_cache_entries",
			Help: "Current number of cached metadata entries",
		},
	)

	MetadataLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_lookups_total",
			Help: "External metadata lookups by outcome",
		},
		[]string{"result"}, // "found", "not_found", "error"
	)

	MetadataLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metadata_lookup_duration_seconds",
			Help:    "Duration of external metadata lookups including rate-limit wait",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Circuit Breaker Metrics
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
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	MetadataEnrichments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_enrichments_total",
			Help: "Results enriched with metadata by outcome",
		},
		[]string{"result"}, // "ok", "placeholder"
	)

	// History Metrics
	HistoryAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_appends_total",
			Help: "Mark-as-watched appends by outcome",
		},
		[]string{"result"}, // "success", "persist_failed"
	)

	HistoryRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "history_records",
			Help: "Records in the combined history by source",
		},
		[]string{"source"},
	)

	// Model Metrics
	ModelTrainingDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "model_training_duration_seconds",
			Help: "Wall time of the last model build",
		},
		[]string{"model"}, // "svd", "tfidf"
	)

	ModelQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_queries_total",
			Help: "Top-N queries served by model",
		},
		[]string{"model", "result"}, // result: "ok", "not_found"
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_size",
			Help: "Rows loaded from the source tables",
		},
		[]string{"table"}, // "movies", "ratings", "users"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
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

// RecordMetadataCache records a cache hit or miss and the current entry count.
func RecordMetadataCache(hit bool, entries int) {
	if hit {
		MetadataCacheHits.Inc()
	} else {
		MetadataCacheMisses.Inc()
	}
	MetadataCacheEntries.Set(float64(entries))
}

// SetMetadataCacheEntries sets the cache occupancy gauge.
func SetMetadataCacheEntries(n int) {
	MetadataCacheEntries.Set(float64(n))
}

// RecordMetadataLookup records an external lookup outcome and its duration.
func RecordMetadataLookup(result string, duration time.Duration) {
	MetadataLookups.WithLabelValues(result).Inc()
	MetadataLookupDuration.Observe(duration.Seconds())
}

// RecordEnrichment counts one enriched result. placeholder marks a lookup
// that degraded to the failure placeholder.
func RecordEnrichment(placeholder bool) {
	if placeholder {
		MetadataEnrichments.WithLabelValues("placeholder").Inc()
		return
	}
	MetadataEnrichments.WithLabelValues("ok").Inc()
}

// RecordHistoryAppend records the outcome of a live history append.
func RecordHistoryAppend(err error) {
	if err != nil {
		HistoryAppends.WithLabelValues("persist_failed").Inc()
		return
	}
	HistoryAppends.WithLabelValues("success").Inc()
}

// SetHistoryRecords updates the combined history gauges.
func SetHistoryRecords(derived, live int) {
	HistoryRecords.WithLabelValues("movielens").Set(float64(derived))
	HistoryRecords.WithLabelValues("app").Set(float64(live))
}

// RecordModelTraining records how long a model build took.
func RecordModelTraining(model string, duration time.Duration) {
	ModelTrainingDuration.WithLabelValues(model).Set(duration.Seconds())
}

// RecordModelQuery counts a top-N query.
func RecordModelQuery(model string, found bool) {
	result := "ok"
	if !found {
		result = "not_found"
	}
	ModelQueries.WithLabelValues(model, result).Inc()
}

// SetCatalogSize records the size of a loaded source table.
func SetCatalogSize(table string, n int) {
	CatalogSize.WithLabelValues(table).Set(float64(n))
}
