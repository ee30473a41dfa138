// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package metrics defines the Prometheus instrumentation for the service:
// prediction throughput and latency per backend, confidence and candidate
// distributions, rating submission counts, API request metrics, and
// hosted-model call outcomes including circuit breaker state.
//
// Metrics are package-level collectors registered via promauto and exposed
// on GET /metrics by the API layer.
package metrics
