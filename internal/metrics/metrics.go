// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests by backend and outcome",
		},
		[]string{"predictor", "outcome"}, // outcome: "success" or a failure code
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of prediction requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"predictor"},
	)

	PredictionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_confidence",
			Help:    "Confidence scores of successful predictions",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
	)

	PredictionCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_candidate_count",
			Help:    "Number of similar users backing each prediction",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	// Rating Submission Metrics
	RatingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Total number of rating submissions stored",
		},
	)

	RatingSubmissionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_submission_errors_total",
			Help: "Total number of failed rating submissions",
		},
		[]string{"error_type"}, // "validation", "database"
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// LLM Backend Metrics
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of hosted-model API calls",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	LLMRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of hosted-model API calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordPrediction records one prediction request. outcome is "success" for
// successful predictions and the failure code otherwise.
func RecordPrediction(predictor, outcome string, duration time.Duration) {
	PredictionsTotal.WithLabelValues(predictor, outcome).Inc()
	PredictionDuration.WithLabelValues(predictor).Observe(duration.Seconds())
}

// RecordPredictionResult records the quality signals of a successful
// prediction.
func RecordPredictionResult(confidence float64, candidateCount int) {
	PredictionConfidence.Observe(confidence)
	PredictionCandidates.Observe(float64(candidateCount))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordLLMRequest records one hosted-model API call.
func RecordLLMRequest(result string, duration time.Duration) {
	LLMRequestsTotal.WithLabelValues(result).Inc()
	LLMRequestDuration.Observe(duration.Seconds())
}
