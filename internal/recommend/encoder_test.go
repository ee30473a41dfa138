// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import (
	"errors"
	"reflect"
	"testing"
)

func testProfile() Profile {
	return Profile{
		Age:       30,
		Gender:    "female",
		Latitude:  52.52,
		Longitude: 13.405,
		Tastes: TasteScores{
			DarkWhiteChocolate: 7,
			CurryCucumber:      3,
			VanillaLemon:       5,
			CaramelWasabi:      2,
			BlueMozzarella:     8,
			SparklingSweet:     6,
			BarbecueKetchup:    4,
			TropicalWinter:     7,
			EarlyNight:         1,
		},
		Frequency:     "once_a_week",
		DrinksAlcohol: true,
	}
}

func TestFeatureSchemaWidth(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	// 4 numeric + 9 taste axes + 3 genders + 4 frequencies
	if got := schema.Width(); got != 20 {
		t.Errorf("Width() = %d, want 20", got)
	}
	if got := len(schema.ColumnNames()); got != schema.Width() {
		t.Errorf("len(ColumnNames()) = %d, want %d", got, schema.Width())
	}
}

func TestFeatureSchemaEncode(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())
	vec := schema.Encode(testProfile())

	want := []float64{
		30, 52.52, 13.405, 1, // age, lat, lon, category flag
		7, 3, 5, 2, 8, 6, 4, 7, 1, // taste axes in canonical order
		0, 1, 0, // gender one-hots: male, female, prefer-not-to-say
		0, 0, 1, 0, // frequency one-hots
	}

	if !reflect.DeepEqual(vec, want) {
		t.Errorf("Encode() = %v, want %v", vec, want)
	}
}

func TestFeatureSchemaEncodeUnknownLabels(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	p := testProfile()
	p.Gender = "unlisted"
	p.Frequency = "daily"

	vec := schema.Encode(p)

	// Unknown labels contribute all-zero dummy columns, not an error.
	for i := numericColumns; i < schema.Width(); i++ {
		if vec[i] != 0 {
			t.Errorf("column %d = %v, want 0 for unknown labels", i, vec[i])
		}
	}
}

func TestEncodePopulation(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	t.Run("empty population fails", func(t *testing.T) {
		_, err := schema.EncodePopulation(nil)
		if !errors.Is(err, errEmptyPopulation) {
			t.Errorf("EncodePopulation(nil) error = %v, want errEmptyPopulation", err)
		}
	})

	t.Run("rows share the column layout", func(t *testing.T) {
		p2 := testProfile()
		p2.Gender = "male"
		matrix, err := schema.EncodePopulation([]Profile{testProfile(), p2})
		if err != nil {
			t.Fatalf("EncodePopulation() error = %v", err)
		}
		if len(matrix) != 2 {
			t.Fatalf("rows = %d, want 2", len(matrix))
		}
		for i, row := range matrix {
			if len(row) != schema.Width() {
				t.Errorf("row %d width = %d, want %d", i, len(row), schema.Width())
			}
		}
	})
}

// The feature layout must be identical across calls regardless of which
// labels the current population happens to contain.
func TestFeatureSchemaStableLayout(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	p := testProfile()
	q := testProfile()
	q.Gender = "prefer-not-to-say"
	q.Frequency = "never"

	a, err := schema.EncodePopulation([]Profile{p})
	if err != nil {
		t.Fatalf("EncodePopulation() error = %v", err)
	}
	b, err := schema.EncodePopulation([]Profile{q})
	if err != nil {
		t.Fatalf("EncodePopulation() error = %v", err)
	}

	if len(a[0]) != len(b[0]) {
		t.Errorf("dimensionality changed with population labels: %d vs %d", len(a[0]), len(b[0]))
	}
}
