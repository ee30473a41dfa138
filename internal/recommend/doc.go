// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

// Package recommend implements the similarity-based recommendation engine.
//
// # Architecture
//
// A prediction flows through four stages:
//
//   - Category partition: the catalog and the observed population are
//     filtered by the query profile's category flag (alcoholic vs
//     non-alcoholic).
//   - Feature encoding: profiles become fixed-order numeric vectors; gender
//     and frequency labels expand to one-hot columns drawn from explicit,
//     configured enumerations.
//   - Similarity ranking: the candidate population is standardized (zero
//     mean, unit variance, statistics from the current population) and
//     ranked by cosine similarity to the query.
//   - Aggregation: the top-k candidates' ratings are averaged per item; the
//     highest-scoring item wins, with a blended confidence score.
//
// # Design Principles
//
//   - Deterministic: the same store snapshot and query produce identical
//     output (stable tie-breaking throughout).
//   - Stateless: no model is cached between calls; population statistics
//     are refit on every call so new observations take effect immediately.
//   - Uniform failure shape: Predict never returns a Go error; every
//     failure is a structured Result with a FailureCode.
//
// # Usage
//
//	catalog := recommend.DefaultCatalog()
//	predictor, err := recommend.NewSimilarityPredictor(db, catalog, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	result := predictor.Predict(ctx, profile)
//
// # Thread Safety
//
// The predictor holds no mutable state; concurrent Predict calls are safe
// against the same read-only observation source.
package recommend
