// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Status is "success" or "error"; Error is populated only when
// Status is "error".
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is the server time when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the handler execution time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details in an error response.
type APIError struct {
	// Code is a machine-readable error code (e.g. "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details holds optional structured context about the error.
	Details map[string]interface{} `json:"details,omitempty"`
}

// StatsResponse summarizes the collected study data.
type StatsResponse struct {
	// TotalRatings is the number of stored rating rows.
	TotalRatings int `json:"total_ratings"`

	// EstimatedUsers is the number of distinct users observed.
	EstimatedUsers int `json:"estimated_users"`
}

// SubmitRatingResponse acknowledges a stored rating.
type SubmitRatingResponse struct {
	ID int64 `json:"id"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}
