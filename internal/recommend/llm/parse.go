// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package llm

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	beerNumberPattern = regexp.MustCompile(`(?i)beer\s+(\d+)\b`)
	bareDigitPattern  = regexp.MustCompile(`\b([1-9])\b`)
)

// extractItem pulls the recommended item out of a model response.
// Matching is attempted in order of decreasing reliability: an exact item
// name, a "Beer N" reference, then a bare digit. Numeric references are
// 1-based indices into the candidate item list.
func extractItem(response string, items []string) (string, bool) {
	response = strings.TrimSpace(response)
	lower := strings.ToLower(response)

	for _, item := range items {
		if strings.Contains(lower, strings.ToLower(item)) {
			return item, true
		}
	}

	if m := beerNumberPattern.FindStringSubmatch(response); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= len(items) {
			return items[n-1], true
		}
	}

	if m := bareDigitPattern.FindStringSubmatch(response); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= len(items) {
			return items[n-1], true
		}
	}

	return "", false
}

var (
	decisiveKeywords  = []string{"recommend", "prefer", "best", "ideal", "perfect", "suitable"}
	uncertainKeywords = []string{"maybe", "perhaps", "might", "could", "possibly", "uncertain"}
)

// heuristicConfidence scores a response by its wording: base 0.5, plus 0.2
// when the item is named explicitly, plus 0.2 for decisive phrasing, minus
// 0.2 for hedging, clamped to [0.1, 1.0].
func heuristicConfidence(response, item string) float64 {
	lower := strings.ToLower(response)
	confidence := 0.5

	if item != "" && strings.Contains(lower, strings.ToLower(item)) {
		confidence += 0.2
	}

	for _, kw := range decisiveKeywords {
		if strings.Contains(lower, kw) {
			confidence += 0.2
			break
		}
	}

	for _, kw := range uncertainKeywords {
		if strings.Contains(lower, kw) {
			confidence -= 0.2
			break
		}
	}

	if confidence < 0.1 {
		confidence = 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
