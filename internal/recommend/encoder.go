// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import "errors"

// errEmptyPopulation is returned by EncodePopulation when there are no
// profiles to derive columns for. The engine maps it to FailureSchemaMismatch.
var errEmptyPopulation = errors.New("cannot encode an empty population")

// FeatureSchema fixes the feature-vector column layout. The layout is
// [age, latitude, longitude, category flag, nine taste axes, gender one-hots,
// frequency one-hots]. Both label enumerations are injected from
// configuration rather than derived from the candidate population, so every
// call encodes into an identical column set. A profile label outside its
// enumeration contributes all-zero dummy columns; that is a defined
// degenerate case, not an error.
type FeatureSchema struct {
	genders     []string
	frequencies []string
}

// NewFeatureSchema builds a schema from the configured label enumerations.
func NewFeatureSchema(cfg Config) FeatureSchema {
	return FeatureSchema{
		genders:     cfg.GenderLabels,
		frequencies: cfg.FrequencyLabels,
	}
}

// numericColumns counts the fixed numeric prefix of the layout:
// age, latitude, longitude, category flag, and the nine taste axes.
const numericColumns = 4 + NumTasteAxes

// Width returns the number of feature columns.
func (s FeatureSchema) Width() int {
	return numericColumns + len(s.genders) + len(s.frequencies)
}

// ColumnNames returns the column labels in encoding order.
func (s FeatureSchema) ColumnNames() []string {
	names := make([]string, 0, s.Width())
	names = append(names, "age", "latitude", "longitude", "drinks_alcohol")
	names = append(names, TasteAxisNames...)
	for _, g := range s.genders {
		names = append(names, "gender_"+g)
	}
	for _, f := range s.frequencies {
		names = append(names, "beer_frequency_"+f)
	}
	return names
}

// Encode converts a profile into its feature vector.
func (s FeatureSchema) Encode(p Profile) []float64 {
	vec := make([]float64, 0, s.Width())

	vec = append(vec, float64(p.Age), p.Latitude, p.Longitude)
	if p.DrinksAlcohol {
		vec = append(vec, 1)
	} else {
		vec = append(vec, 0)
	}

	for _, score := range p.Tastes.values() {
		vec = append(vec, float64(score))
	}

	for _, g := range s.genders {
		if p.Gender == g {
			vec = append(vec, 1)
		} else {
			vec = append(vec, 0)
		}
	}
	for _, f := range s.frequencies {
		if p.Frequency == f {
			vec = append(vec, 1)
		} else {
			vec = append(vec, 0)
		}
	}

	return vec
}

// EncodePopulation encodes all profiles into a row-per-profile matrix sharing
// the schema's column order. Fails with errEmptyPopulation when profiles is
// empty.
func (s FeatureSchema) EncodePopulation(profiles []Profile) ([][]float64, error) {
	if len(profiles) == 0 {
		return nil, errEmptyPopulation
	}

	matrix := make([][]float64, len(profiles))
	for i, p := range profiles {
		matrix[i] = s.Encode(p)
	}
	return matrix, nil
}
