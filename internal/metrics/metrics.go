// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics provides Prometheus instrumentation.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format.
package metrics

import (
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

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"mode"}, // "similar", "preferences"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StaleCandidatesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_candidates_dropped_total",
			Help: "Candidates dropped because their item left the collection",
		},
	)

	// Model Metrics
	ModelFitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_fit_duration_seconds",
			Help:    "Feature model fit duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	ModelItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_items",
			Help: "Number of items in the fitted model",
		},
	)

	ModelFeatureColumns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_feature_columns",
			Help: "Total feature columns in the fitted model",
		},
	)

	ModelSnapshotRestores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_snapshot_restores_total",
			Help: "Model snapshot restore attempts",
		},
		[]string{"result"}, // "hit", "miss", "stale", "error"
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one recommendation query.
func RecordRecommendation(mode string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(mode).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordModelFit records a completed model fit.
func RecordModelFit(duration time.Duration, items, columns int) {
	ModelFitDuration.Observe(duration.Seconds())
	ModelItems.Set(float64(items))
	ModelFeatureColumns.Set(float64(columns))
}

// RecordSnapshotRestore records the outcome of a snapshot restore attempt.
func RecordSnapshotRestore(result string) {
	ModelSnapshotRestores.WithLabelValues(result).Inc()
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
