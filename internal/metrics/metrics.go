// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot build metrics
	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_build_duration_seconds",
			Help:    "Duration of each engine build stage in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage"}, // "load", "vectorize", "similarity", "total"
	)

	BuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_builds_total",
			Help: "Total number of engine snapshot builds",
		},
		[]string{"status"},
	)

	SnapshotMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_snapshot_movies",
			Help: "Number of movies in the active snapshot",
		},
	)

	SnapshotVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_snapshot_vocabulary_terms",
			Help: "Vocabulary size of the active snapshot",
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_snapshot_version",
			Help: "Monotonic version of the active snapshot",
		},
	)

	// Dataset metrics
	DroppedRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_join_dropped_rows",
			Help: "Rows dropped by the movies/credits join in the last load",
		},
		[]string{"reason"}, // "no_credits", "no_movie", "bad_id"
	)

	MetadataParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_metadata_parse_failures_total",
			Help: "Malformed serialized metadata fields replaced by empty defaults",
		},
		[]string{"field"},
	)

	// Query metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_recommendations_total",
			Help: "Recommendation queries by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_recommendation_results",
			Help:    "Number of movies returned per successful query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	ResultCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_result_cache_lookups_total",
			Help: "Title-query result cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	// API metrics
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
)

// RecordBuildStage observes the duration of one build stage.
func RecordBuildStage(stage string, d time.Duration) {
	BuildDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordBuild counts a finished build.
func RecordBuild(err error) {
	if err != nil {
		BuildsTotal.WithLabelValues("error").Inc()
		return
	}
	BuildsTotal.WithLabelValues("success").Inc()
}

// UpdateSnapshot publishes the gauges describing the active snapshot.
func UpdateSnapshot(version uint64, movies, vocabulary int) {
	SnapshotVersion.Set(float64(version))
	SnapshotMovies.Set(float64(movies))
	SnapshotVocabulary.Set(float64(vocabulary))
}

// UpdateDroppedRows publishes join drop counts of the last load.
func UpdateDroppedRows(noCredits, noMovie, badID int) {
	DroppedRows.WithLabelValues("no_credits").Set(float64(noCredits))
	DroppedRows.WithLabelValues("no_movie").Set(float64(noMovie))
	DroppedRows.WithLabelValues("bad_id").Set(float64(badID))
}

// RecordParseFailure counts a malformed metadata field.
func RecordParseFailure(field string) {
	MetadataParseFailures.WithLabelValues(field).Inc()
}

// RecordRecommendation counts a query and, on success, its result size.
func RecordRecommendation(mode, outcome string, results int) {
	RecommendationsTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == "ok" {
		RecommendationResults.WithLabelValues(mode).Observe(float64(results))
	}
}

// RecordCacheLookup counts a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		ResultCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	ResultCacheLookups.WithLabelValues("miss").Inc()
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
