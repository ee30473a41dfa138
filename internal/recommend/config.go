// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import "fmt"

// Config contains the tunables of the similarity engine.
type Config struct {
	// TopK is the number of most similar users to aggregate over.
	// The effective count never exceeds the available candidates.
	TopK int

	// GenderLabels is the explicit enumeration of valid gender labels.
	// One-hot columns are derived from this list, fixed at build time, so
	// the feature-vector layout cannot shift between calls with different
	// candidate populations.
	GenderLabels []string

	// FrequencyLabels is the explicit enumeration of valid
	// consumption-frequency labels, in ascending order of frequency.
	FrequencyLabels []string

	// SimilarityWeight and RatingWeight blend the confidence score:
	// confidence = SimilarityWeight*mean(sim) + RatingWeight*min(rating/10, 1).
	// The mean similarity term is clamped at 0 before blending so that the
	// result stays in [0,1].
	SimilarityWeight float64
	RatingWeight     float64
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		TopK:             3,
		GenderLabels:     []string{"male", "female", "prefer-not-to-say"},
		FrequencyLabels:  []string{"never", "once_a_month", "once_a_week", "multiple_times_a_week"},
		SimilarityWeight: 0.7,
		RatingWeight:     0.3,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if len(c.GenderLabels) == 0 {
		return fmt.Errorf("gender label enumeration is empty")
	}
	if len(c.FrequencyLabels) == 0 {
		return fmt.Errorf("frequency label enumeration is empty")
	}
	if c.SimilarityWeight < 0 || c.RatingWeight < 0 {
		return fmt.Errorf("confidence weights must be non-negative")
	}
	if sum := c.SimilarityWeight + c.RatingWeight; sum <= 0 || sum > 1.0+1e-9 {
		return fmt.Errorf("confidence weights must sum to (0,1], got %v", sum)
	}
	return nil
}
