// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package api implements the HTTP surface of the service on the chi router.
//
// Endpoints:
//
//	POST /api/v1/ratings  submit one rating with the full taste profile
//	POST /api/v1/predict  recommendation for a query profile (always 200;
//	                      prediction failures are reported in the body)
//	GET  /api/v1/stats    aggregate counts over the stored ratings
//	GET  /health          database connectivity check
//	GET  /metrics         Prometheus metrics
//
// All responses use the models.APIResponse envelope. The middleware stack
// provides real-IP resolution, request IDs (uuid, honoring X-Request-ID),
// structured request logging, per-endpoint Prometheus metrics, panic
// recovery, request timeouts, CORS, and per-IP rate limiting on the
// /api/v1 subtree.
package api
