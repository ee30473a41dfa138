// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package models defines the HTTP request and response types shared by the
// API layer: the standardized APIResponse envelope, structured error details,
// and the validated payloads for rating submission and prediction queries.
//
// Request types carry go-playground/validator tags. Fields whose zero value
// is meaningful (taste scores, the alcohol flag) are pointers so that
// "explicitly zero" and "omitted" are distinguishable; PredictRequest
// substitutes documented defaults for omitted fields when building the
// engine profile.
package models
