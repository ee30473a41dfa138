// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// staticSource is an in-memory ObservationSource for tests.
type staticSource struct {
	observations []Observation
	err          error
}

func (s *staticSource) Observations(_ context.Context) ([]Observation, error) {
	return s.observations, s.err
}

func newTestPredictor(t *testing.T, observations []Observation) *SimilarityPredictor {
	t.Helper()

	p, err := NewSimilarityPredictor(
		&staticSource{observations: observations},
		DefaultCatalog(),
		DefaultConfig(),
		zerolog.Nop(),
	)
	if err != nil {
		t.Fatalf("NewSimilarityPredictor() error = %v", err)
	}
	return p
}

func observation(userID, item string, rating int, profile Profile) Observation {
	return Observation{
		UserID:      userID,
		Item:        item,
		Rating:      rating,
		Profile:     profile,
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewSimilarityPredictorValidation(t *testing.T) {
	catalog := DefaultCatalog()
	source := &staticSource{}

	tests := []struct {
		name    string
		source  ObservationSource
		catalog *Catalog
		cfg     Config
	}{
		{"nil source", nil, catalog, DefaultConfig()},
		{"nil catalog", source, nil, DefaultConfig()},
		{"invalid config", source, catalog, Config{TopK: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSimilarityPredictor(tt.source, tt.catalog, tt.cfg, zerolog.Nop()); err == nil {
				t.Error("NewSimilarityPredictor() error = nil, want error")
			}
		})
	}
}

func TestPredictEmptyStore(t *testing.T) {
	p := newTestPredictor(t, nil)

	res := p.Predict(context.Background(), testProfile())

	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Code != FailureEmptyStore {
		t.Errorf("Code = %q, want %q", res.Code, FailureEmptyStore)
	}
	if res.Confidence != 0 || res.CandidateCount != 0 || res.Item != "" {
		t.Errorf("failure fields not zeroed: %+v", res)
	}
}

func TestPredictSourceError(t *testing.T) {
	p, err := NewSimilarityPredictor(
		&staticSource{err: errors.New("disk gone")},
		DefaultCatalog(),
		DefaultConfig(),
		zerolog.Nop(),
	)
	if err != nil {
		t.Fatalf("NewSimilarityPredictor() error = %v", err)
	}

	res := p.Predict(context.Background(), testProfile())

	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Code != FailureInternal {
		t.Errorf("Code = %q, want %q", res.Code, FailureInternal)
	}
}

func TestPredictNoCandidates(t *testing.T) {
	// Store only holds non-alcoholic raters; query drinks alcohol.
	abstainer := testProfile()
	abstainer.DrinksAlcohol = false

	p := newTestPredictor(t, []Observation{
		observation("u1", "Beer A", 6, abstainer),
	})

	res := p.Predict(context.Background(), testProfile())

	if res.Code != FailureNoCandidates {
		t.Errorf("Code = %q, want %q", res.Code, FailureNoCandidates)
	}
}

func TestPredictNoItemData(t *testing.T) {
	// The only matching-category user rated an item outside the catalog.
	p := newTestPredictor(t, []Observation{
		observation("u1", "Taproom Special", 9, testProfile()),
	})

	res := p.Predict(context.Background(), testProfile())

	if res.Code != FailureNoItemData {
		t.Errorf("Code = %q, want %q", res.Code, FailureNoItemData)
	}
}

func TestPredictSingleCandidate(t *testing.T) {
	p := newTestPredictor(t, []Observation{
		observation("u1", "Beer 1", 8, testProfile()),
	})

	res := p.Predict(context.Background(), testProfile())

	if !res.Success {
		t.Fatalf("Success = false, error = %s", res.Error)
	}
	if res.Item != "Beer 1" {
		t.Errorf("Item = %q, want %q", res.Item, "Beer 1")
	}
	if res.PredictedRating != 8.0 {
		t.Errorf("PredictedRating = %v, want 8.0", res.PredictedRating)
	}
	if res.CandidateCount != 1 {
		t.Errorf("CandidateCount = %d, want 1", res.CandidateCount)
	}
	if len(res.SimilarityScores) != 1 {
		t.Errorf("len(SimilarityScores) = %d, want 1", len(res.SimilarityScores))
	}
}

// Aggregation is the raw mean of the top-k ratings per item, not a
// similarity-weighted mean: with disjoint items each item's mean equals its
// single rating, so the higher raw rating wins even when its rater is less
// similar to the query.
func TestPredictRawMeanAggregation(t *testing.T) {
	similar := testProfile()
	similar.Age = 30
	similar.Latitude = 52

	dissimilar := testProfile()
	dissimilar.Age = 68
	dissimilar.Latitude = -33

	query := testProfile()
	query.Age = 31
	query.Latitude = 51

	p := newTestPredictor(t, []Observation{
		observation("u1", "Beer 1", 9, similar),
		observation("u2", "Beer 2", 10, dissimilar),
	})

	res := p.Predict(context.Background(), query)

	if !res.Success {
		t.Fatalf("Success = false, error = %s", res.Error)
	}
	if res.Item != "Beer 2" {
		t.Errorf("Item = %q, want %q (raw mean 10 beats 9)", res.Item, "Beer 2")
	}
	if res.PredictedRating != 10.0 {
		t.Errorf("PredictedRating = %v, want 10.0", res.PredictedRating)
	}
	if res.ItemRatings["Beer 1"] != 9.0 || res.ItemRatings["Beer 2"] != 10.0 {
		t.Errorf("ItemRatings = %v, want Beer 1: 9.0, Beer 2: 10.0", res.ItemRatings)
	}
}

func TestPredictTieBreakCanonicalOrder(t *testing.T) {
	p := newTestPredictor(t, []Observation{
		observation("u1", "Beer 3", 7, testProfile()),
		observation("u1", "Beer 5", 7, testProfile()),
	})

	res := p.Predict(context.Background(), testProfile())

	if !res.Success {
		t.Fatalf("Success = false, error = %s", res.Error)
	}
	if res.Item != "Beer 3" {
		t.Errorf("Item = %q, want %q (first in canonical order on ties)", res.Item, "Beer 3")
	}
}

func TestPredictAllZeroRatings(t *testing.T) {
	// Three equally similar users rated only an off-catalog item; the only
	// user with usable ratings falls outside the top-3 under stable
	// tie-breaking.
	obs := []Observation{
		observation("u1", "Taproom Special", 8, testProfile()),
		observation("u2", "Taproom Special", 7, testProfile()),
		observation("u3", "Taproom Special", 6, testProfile()),
		observation("u4", "Beer 1", 9, testProfile()),
	}

	p := newTestPredictor(t, obs)

	res := p.Predict(context.Background(), testProfile())

	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Code != FailureAllZeroRatings {
		t.Errorf("Code = %q, want %q", res.Code, FailureAllZeroRatings)
	}
	if res.CandidateCount != 3 {
		t.Errorf("CandidateCount = %d, want 3 (best effort)", res.CandidateCount)
	}
}

func TestPredictCategoryInvariant(t *testing.T) {
	catalog := DefaultCatalog()

	drinker := testProfile()
	abstainer := testProfile()
	abstainer.DrinksAlcohol = false

	obs := []Observation{
		observation("u1", "Beer 1", 9, drinker),
		observation("u2", "Beer 4", 7, drinker),
		observation("u3", "Beer A", 10, abstainer),
		observation("u4", "Beer C", 8, abstainer),
	}
	p := newTestPredictor(t, obs)

	for _, drinks := range []bool{true, false} {
		query := testProfile()
		query.DrinksAlcohol = drinks

		res := p.Predict(context.Background(), query)
		if !res.Success {
			t.Fatalf("drinks=%v: Success = false, error = %s", drinks, res.Error)
		}
		category, ok := catalog.CategoryOf(res.Item)
		if !ok || category != drinks {
			t.Errorf("drinks=%v: recommended %q from the wrong category", drinks, res.Item)
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	obs := []Observation{
		observation("u1", "Beer 1", 9, testProfile()),
		observation("u2", "Beer 2", 6, testProfile()),
		observation("u3", "Beer 7", 8, testProfile()),
	}
	p := newTestPredictor(t, obs)

	first := p.Predict(context.Background(), testProfile())
	second := p.Predict(context.Background(), testProfile())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated prediction differs:\n%+v\n%+v", first, second)
	}
}

func TestPredictTopKNeverExceedsLimit(t *testing.T) {
	obs := make([]Observation, 0, 10)
	for i := 0; i < 10; i++ {
		prof := testProfile()
		prof.Age = 20 + i
		obs = append(obs, observation(string(rune('a'+i)), "Beer 1", 5+i%5, prof))
	}
	p := newTestPredictor(t, obs)

	res := p.Predict(context.Background(), testProfile())

	if !res.Success {
		t.Fatalf("Success = false, error = %s", res.Error)
	}
	if res.CandidateCount > 3 {
		t.Errorf("CandidateCount = %d, want <= 3", res.CandidateCount)
	}
	if len(res.SimilarityScores) != res.CandidateCount {
		t.Errorf("len(SimilarityScores) = %d, want %d", len(res.SimilarityScores), res.CandidateCount)
	}
}

// Confidence must stay in [0,1] across randomized query profiles against a
// fixed seeded population, and Predict must never fail to produce a Result.
func TestPredictConfidenceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := DefaultConfig()

	randomProfile := func() Profile {
		p := Profile{
			Age:           18 + rng.Intn(60),
			Gender:        cfg.GenderLabels[rng.Intn(len(cfg.GenderLabels))],
			Latitude:      rng.Float64()*180 - 90,
			Longitude:     rng.Float64()*360 - 180,
			Frequency:     cfg.FrequencyLabels[rng.Intn(len(cfg.FrequencyLabels))],
			DrinksAlcohol: rng.Intn(2) == 0,
		}
		p.Tastes = TasteScores{
			DarkWhiteChocolate: rng.Intn(11),
			CurryCucumber:      rng.Intn(11),
			VanillaLemon:       rng.Intn(11),
			CaramelWasabi:      rng.Intn(11),
			BlueMozzarella:     rng.Intn(11),
			SparklingSweet:     rng.Intn(11),
			BarbecueKetchup:    rng.Intn(11),
			TropicalWinter:     rng.Intn(11),
			EarlyNight:         rng.Intn(11),
		}
		return p
	}

	catalog := DefaultCatalog()
	obs := make([]Observation, 0, 40)
	for i := 0; i < 40; i++ {
		prof := randomProfile()
		items := catalog.Items(prof.DrinksAlcohol)
		item := items[rng.Intn(len(items))]
		obs = append(obs, observation(string(rune('A'+i)), item, 1+rng.Intn(10), prof))
	}

	p := newTestPredictor(t, obs)

	for i := 0; i < 200; i++ {
		res := p.Predict(context.Background(), randomProfile())
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("iteration %d: confidence %v outside [0,1] (result %+v)", i, res.Confidence, res)
		}
		if res.Success && res.Item == "" {
			t.Fatalf("iteration %d: success without an item", i)
		}
	}
}

func TestPredictRounding(t *testing.T) {
	// Two raters of the same item: mean of 7 and 8 is 7.5.
	a := testProfile()
	a.Age = 25
	b := testProfile()
	b.Age = 35

	p := newTestPredictor(t, []Observation{
		observation("u1", "Beer 2", 7, a),
		observation("u2", "Beer 2", 8, b),
	})

	res := p.Predict(context.Background(), testProfile())

	if !res.Success {
		t.Fatalf("Success = false, error = %s", res.Error)
	}
	if res.PredictedRating != 7.5 {
		t.Errorf("PredictedRating = %v, want 7.5", res.PredictedRating)
	}
	if res.ItemRatings["Beer 2"] != 7.5 {
		t.Errorf("ItemRatings[Beer 2] = %v, want 7.5", res.ItemRatings["Beer 2"])
	}
}
