// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package models

import (
	"github.com/hopmatch/hopmatch/internal/recommend"
)

// Default values applied to omitted prediction query fields.
const (
	DefaultAge           = 25
	DefaultTasteScore    = 5
	DefaultFrequency     = "once_a_week"
	DefaultDrinksAlcohol = true
)

// SubmitRatingRequest is the payload for POST /api/v1/ratings. Every field is
// required; taste scores and the alcohol flag use pointers so that an explicit
// zero or false survives the required check.
type SubmitRatingRequest struct {
	UserID   string `json:"user_id" validate:"required,max=128"`
	BeerName string `json:"beer_name" validate:"required,max=128"`
	Rating   int    `json:"rating" validate:"required,min=1,max=10"`

	Age       int     `json:"age" validate:"required,min=16,max=120"`
	Gender    string  `json:"gender" validate:"required,max=64"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`

	DarkWhiteChocolate *int `json:"dark_white_chocolate" validate:"required,min=0,max=10"`
	CurryCucumber      *int `json:"curry_cucumber" validate:"required,min=0,max=10"`
	VanillaLemon       *int `json:"vanilla_lemon" validate:"required,min=0,max=10"`
	CaramelWasabi      *int `json:"caramel_wasabi" validate:"required,min=0,max=10"`
	BlueMozzarella     *int `json:"blue_mozzarella" validate:"required,min=0,max=10"`
	SparklingSweet     *int `json:"sparkling_sweet" validate:"required,min=0,max=10"`
	BarbecueKetchup    *int `json:"barbecue_ketchup" validate:"required,min=0,max=10"`
	TropicalWinter     *int `json:"tropical_winter" validate:"required,min=0,max=10"`
	EarlyNight         *int `json:"early_night" validate:"required,min=0,max=10"`

	BeerFrequency string `json:"beer_frequency" validate:"required,max=64"`
	DrinksAlcohol *bool  `json:"drinks_alcohol" validate:"required"`
}

// Profile converts the request into an engine profile. Validate must have
// passed first; pointer fields are assumed non-nil.
func (r *SubmitRatingRequest) Profile() recommend.Profile {
	return recommend.Profile{
		Age:       r.Age,
		Gender:    r.Gender,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Tastes: recommend.TasteScores{
			DarkWhiteChocolate: *r.DarkWhiteChocolate,
			CurryCucumber:      *r.CurryCucumber,
			VanillaLemon:       *r.VanillaLemon,
			CaramelWasabi:      *r.CaramelWasabi,
			BlueMozzarella:     *r.BlueMozzarella,
			SparklingSweet:     *r.SparklingSweet,
			BarbecueKetchup:    *r.BarbecueKetchup,
			TropicalWinter:     *r.TropicalWinter,
			EarlyNight:         *r.EarlyNight,
		},
		Frequency:     r.BeerFrequency,
		DrinksAlcohol: *r.DrinksAlcohol,
	}
}

// PredictRequest is the payload for POST /api/v1/predict. Every field is
// optional; omitted fields fall back to documented defaults when the profile
// is built. Unknown fields in the request body are ignored.
type PredictRequest struct {
	Age       *int     `json:"age" validate:"omitempty,min=16,max=120"`
	Gender    *string  `json:"gender" validate:"omitempty,max=64"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`

	DarkWhiteChocolate *int `json:"dark_white_chocolate" validate:"omitempty,min=0,max=10"`
	CurryCucumber      *int `json:"curry_cucumber" validate:"omitempty,min=0,max=10"`
	VanillaLemon       *int `json:"vanilla_lemon" validate:"omitempty,min=0,max=10"`
	CaramelWasabi      *int `json:"caramel_wasabi" validate:"omitempty,min=0,max=10"`
	BlueMozzarella     *int `json:"blue_mozzarella" validate:"omitempty,min=0,max=10"`
	SparklingSweet     *int `json:"sparkling_sweet" validate:"omitempty,min=0,max=10"`
	BarbecueKetchup    *int `json:"barbecue_ketchup" validate:"omitempty,min=0,max=10"`
	TropicalWinter     *int `json:"tropical_winter" validate:"omitempty,min=0,max=10"`
	EarlyNight         *int `json:"early_night" validate:"omitempty,min=0,max=10"`

	BeerFrequency *string `json:"beer_frequency" validate:"omitempty,max=64"`
	DrinksAlcohol *bool   `json:"drinks_alcohol"`
}

// Profile builds the query profile, substituting defaults for omitted fields.
func (r *PredictRequest) Profile() recommend.Profile {
	return recommend.Profile{
		Age:       intOr(r.Age, DefaultAge),
		Gender:    strOr(r.Gender, ""),
		Latitude:  floatOr(r.Latitude, 0),
		Longitude: floatOr(r.Longitude, 0),
		Tastes: recommend.TasteScores{
			DarkWhiteChocolate: intOr(r.DarkWhiteChocolate, DefaultTasteScore),
			CurryCucumber:      intOr(r.CurryCucumber, DefaultTasteScore),
			VanillaLemon:       intOr(r.VanillaLemon, DefaultTasteScore),
			CaramelWasabi:      intOr(r.CaramelWasabi, DefaultTasteScore),
			BlueMozzarella:     intOr(r.BlueMozzarella, DefaultTasteScore),
			SparklingSweet:     intOr(r.SparklingSweet, DefaultTasteScore),
			BarbecueKetchup:    intOr(r.BarbecueKetchup, DefaultTasteScore),
			TropicalWinter:     intOr(r.TropicalWinter, DefaultTasteScore),
			EarlyNight:         intOr(r.EarlyNight, DefaultTasteScore),
		},
		Frequency:     strOr(r.BeerFrequency, DefaultFrequency),
		DrinksAlcohol: boolOr(r.DrinksAlcohol, DefaultDrinksAlcohol),
	}
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func strOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}
