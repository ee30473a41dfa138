// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// SimilarityPredictor recommends the item expected to please a query profile
// most, by ranking the observed population with cosine similarity over
// standardized feature vectors and averaging the top-k candidates' ratings
// per item.
//
// The predictor is stateless between calls: every Predict re-reads the
// observation snapshot and recomputes population statistics from scratch, so
// new observations are visible on the very next call at a per-call cost
// linear in the category-filtered population. It is safe for concurrent use
// as long as the ObservationSource supports concurrent readers.
type SimilarityPredictor struct {
	source  ObservationSource
	catalog *Catalog
	config  Config
	schema  FeatureSchema
	logger  zerolog.Logger
}

// NewSimilarityPredictor creates the similarity-based predictor.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSimilarityPredictor(source ObservationSource, catalog *Catalog, cfg Config, logger zerolog.Logger) (*SimilarityPredictor, error) {
	if source == nil {
		return nil, fmt.Errorf("observation source not set")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog not set")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &SimilarityPredictor{
		source:  source,
		catalog: catalog,
		config:  cfg,
		schema:  NewFeatureSchema(cfg),
		logger:  logger.With().Str("component", "recommend").Str("predictor", "similarity").Logger(),
	}, nil
}

// Name returns the predictor identifier.
func (p *SimilarityPredictor) Name() string {
	return "similarity"
}

// candidate is one user of the observed population: their authoritative
// profile and their latest rating per item.
type candidate struct {
	userID  string
	profile Profile
	ratings map[string]int
}

// Predict implements the Predictor contract. It never returns an error and
// never panics past this boundary; unexpected internal failures are reported
// as a generic failure carrying the underlying error text.
func (p *SimilarityPredictor) Predict(ctx context.Context, profile Profile) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("prediction panicked")
			result = failure(FailureInternal, 0, "prediction failed: %v", r)
		}
	}()

	observations, err := p.source.Observations(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("observation snapshot failed")
		return failure(FailureInternal, 0, "prediction failed: %v", err)
	}
	if len(observations) == 0 {
		return failure(FailureEmptyStore, 0, "no user data available for prediction")
	}

	candidates := buildCandidates(observations, profile.DrinksAlcohol)
	if len(candidates) == 0 {
		return failure(FailureNoCandidates, 0,
			"no users with %s beer preferences found", categoryName(profile.DrinksAlcohol))
	}

	items := p.catalog.Items(profile.DrinksAlcohol)
	if !anyItemRated(candidates, items) {
		return failure(FailureNoItemData, 0,
			"no %s beer rating data available", categoryName(profile.DrinksAlcohol))
	}

	profiles := make([]Profile, len(candidates))
	for i, c := range candidates {
		profiles[i] = c.profile
	}

	ranked, err := NearestProfiles(p.schema, profiles, profile, p.config.TopK)
	if err != nil {
		// Should not occur: the candidate set is non-empty by now.
		return failure(FailureSchemaMismatch, 0, "feature encoding failed: %v", err)
	}
	if len(ranked) == 0 {
		return failure(FailureNoSimilarUsers, 0, "no similar users found")
	}

	itemMeans := aggregateRatings(candidates, ranked, items)

	winner, winnerMean, ok := selectWinner(itemMeans, items)
	if !ok {
		return failure(FailureAllZeroRatings, len(ranked),
			"no valid ratings found from similar users")
	}

	confidence := p.confidence(ranked, winnerMean)

	p.logger.Debug().
		Str("item", winner).
		Float64("predicted_rating", winnerMean).
		Float64("confidence", confidence).
		Int("candidates", len(ranked)).
		Msg("recommendation complete")

	return Result{
		Success:          true,
		Item:             winner,
		PredictedRating:  round1(winnerMean),
		Confidence:       round2(confidence),
		CandidateCount:   len(ranked),
		ItemRatings:      roundedNonZero(itemMeans),
		SimilarityScores: roundedSimilarities(ranked),
	}
}

// buildCandidates collapses the observation rows into one candidate per user
// sharing the query's category flag. The first-encountered row per user is
// authoritative for the profile; the source already guarantees at most one
// row per (user, item) pair.
func buildCandidates(observations []Observation, drinksAlcohol bool) []candidate {
	index := make(map[string]int)
	candidates := make([]candidate, 0)

	for _, obs := range observations {
		if obs.Profile.DrinksAlcohol != drinksAlcohol {
			continue
		}

		i, ok := index[obs.UserID]
		if !ok {
			i = len(candidates)
			index[obs.UserID] = i
			candidates = append(candidates, candidate{
				userID:  obs.UserID,
				profile: obs.Profile,
				ratings: make(map[string]int),
			})
		}
		if _, seen := candidates[i].ratings[obs.Item]; !seen {
			candidates[i].ratings[obs.Item] = obs.Rating
		}
	}

	return candidates
}

// anyItemRated reports whether any candidate holds a positive rating for any
// item of the subset.
func anyItemRated(candidates []candidate, items []string) bool {
	for _, c := range candidates {
		for _, item := range items {
			if c.ratings[item] > 0 {
				return true
			}
		}
	}
	return false
}

// aggregateRatings computes, per item, the arithmetic mean of the top-k
// candidates' ratings, excluding zero or absent entries. Items with no
// usable rating get mean 0. The mean is deliberately unweighted; similarity
// influences only who is in the top-k, not how their ratings are combined.
func aggregateRatings(candidates []candidate, ranked []RankedCandidate, items []string) map[string]float64 {
	means := make(map[string]float64, len(items))

	for _, item := range items {
		var sum, count float64
		for _, rc := range ranked {
			if r := candidates[rc.Index].ratings[item]; r > 0 {
				sum += float64(r)
				count++
			}
		}
		if count > 0 {
			means[item] = sum / count
		} else {
			means[item] = 0
		}
	}

	return means
}

// selectWinner picks the item with the strictly highest aggregated rating.
// Ties go to the first item in the catalog's canonical order. Returns
// ok=false when every aggregated rating is 0.
func selectWinner(means map[string]float64, items []string) (string, float64, bool) {
	var (
		winner string
		best   float64
	)
	for _, item := range items {
		if means[item] > best {
			winner = item
			best = means[item]
		}
	}
	if winner == "" {
		return "", 0, false
	}
	return winner, best, true
}

// confidence blends the mean similarity of the top-k candidates with the
// strength of the winning rating. A negative mean similarity is clamped to 0
// before blending, which keeps the result in [0,1] by construction.
func (p *SimilarityPredictor) confidence(ranked []RankedCandidate, winnerMean float64) float64 {
	var meanSim float64
	for _, rc := range ranked {
		meanSim += rc.Similarity
	}
	meanSim /= float64(len(ranked))
	if meanSim < 0 {
		meanSim = 0
	}

	ratingTerm := winnerMean / 10.0
	if ratingTerm > 1 {
		ratingTerm = 1
	}

	c := p.config.SimilarityWeight*meanSim + p.config.RatingWeight*ratingTerm
	return math.Min(math.Max(c, 0), 1)
}

// categoryName renders the category flag for diagnostics.
func categoryName(drinksAlcohol bool) string {
	if drinksAlcohol {
		return "alcoholic"
	}
	return "non-alcoholic"
}

// roundedNonZero returns the non-zero aggregated ratings, rounded to 1
// decimal.
func roundedNonZero(means map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(means))
	for item, mean := range means {
		if mean > 0 {
			out[item] = round1(mean)
		}
	}
	return out
}

// roundedSimilarities returns the candidates' similarity scores, descending,
// rounded to 2 decimals.
func roundedSimilarities(ranked []RankedCandidate) []float64 {
	scores := make([]float64, len(ranked))
	for i, rc := range ranked {
		scores[i] = round2(rc.Similarity)
	}
	return scores
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ensure interface compliance.
var _ Predictor = (*SimilarityPredictor)(nil)
