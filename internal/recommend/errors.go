// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import "fmt"

// FailureCode classifies why a prediction produced no recommendation.
// All codes are non-fatal: they are surfaced in the Result, never as a Go
// error crossing the Predictor boundary.
type FailureCode string

const (
	// FailureEmptyStore indicates no observations are available at all.
	FailureEmptyStore FailureCode = "EMPTY_STORE"

	// FailureNoCandidates indicates no observations match the query's
	// category flag.
	FailureNoCandidates FailureCode = "NO_CANDIDATES"

	// FailureNoItemData indicates the matching category has no rated items
	// in the observed data.
	FailureNoItemData FailureCode = "NO_ITEM_DATA"

	// FailureSchemaMismatch indicates feature encoding could not align
	// population and query columns (empty population).
	FailureSchemaMismatch FailureCode = "SCHEMA_MISMATCH"

	// FailureNoSimilarUsers indicates similarity ranking produced zero
	// usable candidates.
	FailureNoSimilarUsers FailureCode = "NO_SIMILAR_USERS"

	// FailureAllZeroRatings indicates no item among the top-k candidates
	// has any usable rating.
	FailureAllZeroRatings FailureCode = "ALL_ZERO_RATINGS"

	// FailureInternal indicates an unexpected internal error. The Result's
	// Error field carries the underlying error text.
	FailureInternal FailureCode = "INTERNAL_ERROR"
)

// failure builds a failed Result. candidateCount is best effort and may be 0.
func failure(code FailureCode, candidateCount int, format string, args ...any) Result {
	return Result{
		Success:        false,
		CandidateCount: candidateCount,
		Code:           code,
		Error:          fmt.Sprintf(format, args...),
	}
}
