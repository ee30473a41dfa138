// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package llm implements the hosted-model prediction backend. It satisfies
// the same recommend.Predictor contract as the similarity engine and can be
// swapped in via the predictor.type configuration setting.
//
// The backend works by few-shot prompting: for each query it selects the
// most similar observed users of the same category (reusing the core
// feature encoder and similarity ranking), renders each one with their
// top-rated beer as an example, and asks an OpenAI-compatible
// chat-completions endpoint to pick a beer for the query profile.
//
// The model's free-text reply is mapped back to a catalog item by exact name
// match, a "Beer N" reference, or a bare digit. Confidence is a wording
// heuristic rather than a statistical measure; callers that need calibrated
// confidence should use the similarity backend.
//
// All upstream calls run through a sony/gobreaker circuit breaker. When the
// breaker is open, predictions fail fast with a structured failure Result
// instead of waiting out the HTTP timeout.
package llm
