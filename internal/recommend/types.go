// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import (
	"context"
	"time"
)

// TasteScores holds the nine bipolar taste-axis scores of a profile.
// Each score is an integer in [0,10]; 5 is the neutral midpoint.
type TasteScores struct {
	DarkWhiteChocolate int `json:"dark_white_chocolate"`
	CurryCucumber      int `json:"curry_cucumber"`
	VanillaLemon       int `json:"vanilla_lemon"`
	CaramelWasabi      int `json:"caramel_wasabi"`
	BlueMozzarella     int `json:"blue_mozzarella"`
	SparklingSweet     int `json:"sparkling_sweet"`
	BarbecueKetchup    int `json:"barbecue_ketchup"`
	TropicalWinter     int `json:"tropical_winter"`
	EarlyNight         int `json:"early_night"`
}

// NumTasteAxes is the number of bipolar taste axes in a profile.
const NumTasteAxes = 9

// TasteAxisNames lists the taste axes in their canonical feature order.
var TasteAxisNames = []string{
	"dark_white_chocolate",
	"curry_cucumber",
	"vanilla_lemon",
	"caramel_wasabi",
	"blue_mozzarella",
	"sparkling_sweet",
	"barbecue_ketchup",
	"tropical_winter",
	"early_night",
}

// values returns the scores in canonical axis order.
func (t TasteScores) values() [NumTasteAxes]int {
	return [NumTasteAxes]int{
		t.DarkWhiteChocolate,
		t.CurryCucumber,
		t.VanillaLemon,
		t.CaramelWasabi,
		t.BlueMozzarella,
		t.SparklingSweet,
		t.BarbecueKetchup,
		t.TropicalWinter,
		t.EarlyNight,
	}
}

// Profile is the demographic and preference description of a user.
// The same shape is used for stored observations and for prediction queries.
type Profile struct {
	// Age in years.
	Age int `json:"age"`

	// Gender is one of the configured gender labels.
	Gender string `json:"gender"`

	// Latitude and Longitude locate the user.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Tastes holds the nine bipolar taste-axis scores.
	Tastes TasteScores `json:"tastes"`

	// Frequency is one of the configured consumption-frequency labels
	// (never, once_a_month, once_a_week, multiple_times_a_week).
	Frequency string `json:"beer_frequency"`

	// DrinksAlcohol is the category flag partitioning the item catalog.
	DrinksAlcohol bool `json:"drinks_alcohol"`
}

// Observation is one recorded (user, item, rating, profile) fact.
// Ratings are integers in [1,10]. Profile fields are constant per user by
// contract; when they differ across rows, the first-encountered row per user
// is authoritative.
type Observation struct {
	UserID      string    `json:"user_id"`
	Item        string    `json:"beer_name"`
	Rating      int       `json:"rating"`
	Profile     Profile   `json:"profile"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Result is the uniform outcome of a prediction. On failure Success is false,
// Code carries the failure class, Error a human-readable reason, and the
// numeric fields are zeroed (CandidateCount is best effort).
type Result struct {
	// Success reports whether a recommendation was produced.
	Success bool `json:"success"`

	// Item is the recommended item name, empty on failure.
	Item string `json:"recommended_beer,omitempty"`

	// PredictedRating is the winning item's aggregated rating,
	// rounded to 1 decimal.
	PredictedRating float64 `json:"predicted_rating,omitempty"`

	// Confidence is the blended confidence score in [0,1],
	// rounded to 2 decimals.
	Confidence float64 `json:"confidence"`

	// CandidateCount is the number of similar users the recommendation
	// is based on.
	CandidateCount int `json:"candidate_count"`

	// ItemRatings maps item names to their aggregated ratings among the
	// top-k candidates. Only non-zero entries are reported, rounded to
	// 1 decimal.
	ItemRatings map[string]float64 `json:"per_item_ratings,omitempty"`

	// SimilarityScores are the cosine similarities of the candidates used,
	// descending, rounded to 2 decimals.
	SimilarityScores []float64 `json:"similarity_scores,omitempty"`

	// Code classifies the failure. Empty on success.
	Code FailureCode `json:"code,omitempty"`

	// Error is a human-readable failure reason. Empty on success.
	Error string `json:"error,omitempty"`
}

// Predictor is the capability contract for producing a recommendation from a
// query profile. Implementations never return a Go error and never panic past
// this boundary; every failure path is represented in the Result.
//
// Two interchangeable implementations exist: SimilarityPredictor (local
// nearest-neighbour search) and llm.Predictor (hosted model). Callers hold a
// Predictor, not a concrete variant, so the two can be swapped via
// configuration.
type Predictor interface {
	// Name returns the predictor identifier (e.g. "similarity", "llm").
	Name() string

	// Predict produces a recommendation for the query profile.
	Predict(ctx context.Context, profile Profile) Result
}

// ObservationSource supplies the observation snapshot for one prediction.
// This is typically implemented by the database layer. Implementations must
// return only rows with a positive rating and at most one row per
// (user, item) pair, keeping the most recent. The engine treats the returned
// slice as immutable for the duration of the call.
type ObservationSource interface {
	Observations(ctx context.Context) ([]Observation, error)
}
