// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical vectors", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite vectors", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal vectors", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero norm", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := []float64{0.3, -1.2, 4.5, 0}
	b := []float64{2.1, 0.7, -0.4, 1}

	if ab, ba := cosineSimilarity(a, b), cosineSimilarity(b, a); math.Abs(ab-ba) > 1e-12 {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestStandardize(t *testing.T) {
	t.Run("zero mean unit variance", func(t *testing.T) {
		matrix := [][]float64{{1, 10}, {3, 30}}
		query := []float64{2, 20}

		standardize(matrix, query)

		for j := 0; j < 2; j++ {
			var sum float64
			for _, row := range matrix {
				sum += row[j]
			}
			if math.Abs(sum) > 1e-9 {
				t.Errorf("column %d mean = %v, want 0", j, sum/2)
			}
		}
		// Query sits exactly on both column means.
		if query[0] != 0 || query[1] != 0 {
			t.Errorf("standardized query = %v, want [0 0]", query)
		}
	})

	t.Run("zero variance column standardizes to zero", func(t *testing.T) {
		matrix := [][]float64{{5, 1}, {5, 2}}
		query := []float64{7, 3}

		standardize(matrix, query)

		if matrix[0][0] != 0 || matrix[1][0] != 0 || query[0] != 0 {
			t.Errorf("zero-variance column not zeroed: %v %v %v", matrix[0][0], matrix[1][0], query[0])
		}
	})
}

func TestNearestProfilesOrdering(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	near := testProfile()
	near.Age = 25
	near.Latitude = 10

	far := testProfile()
	far.Age = 60
	far.Latitude = -10

	query := testProfile()
	query.Age = 26
	query.Latitude = 9

	ranked, err := NearestProfiles(schema, []Profile{far, near}, query, 2)
	if err != nil {
		t.Fatalf("NearestProfiles() error = %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].Index != 1 {
		t.Errorf("most similar index = %d, want 1 (the near profile)", ranked[0].Index)
	}
	if ranked[0].Similarity < ranked[1].Similarity {
		t.Error("ranking not descending by similarity")
	}
	for _, rc := range ranked {
		if rc.Similarity < -1-1e-9 || rc.Similarity > 1+1e-9 {
			t.Errorf("similarity %v outside [-1,1]", rc.Similarity)
		}
	}
}

// Scaling every feature of every row and the query by the same positive
// constant per column must leave rankings unchanged: standardization cancels
// the scale exactly.
func TestNearestProfilesScaleInvariant(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	population := []Profile{testProfile(), testProfile(), testProfile()}
	population[0].Age = 22
	population[1].Age = 47
	population[2].Age = 31
	population[0].Longitude = -3
	population[1].Longitude = 8
	population[2].Longitude = 1

	query := testProfile()
	query.Age = 28
	query.Longitude = 2

	base, err := NearestProfiles(schema, population, query, 3)
	if err != nil {
		t.Fatalf("NearestProfiles() error = %v", err)
	}

	// Scale age by 12 and longitude by 0.5 across the board.
	scaled := make([]Profile, len(population))
	copy(scaled, population)
	for i := range scaled {
		scaled[i].Age *= 12
		scaled[i].Longitude *= 0.5
	}
	scaledQuery := query
	scaledQuery.Age *= 12
	scaledQuery.Longitude *= 0.5

	got, err := NearestProfiles(schema, scaled, scaledQuery, 3)
	if err != nil {
		t.Fatalf("NearestProfiles() error = %v", err)
	}

	for i := range base {
		if base[i].Index != got[i].Index {
			t.Errorf("rank %d index changed under scaling: %d vs %d", i, base[i].Index, got[i].Index)
		}
		if math.Abs(base[i].Similarity-got[i].Similarity) > 1e-9 {
			t.Errorf("rank %d similarity changed under scaling: %v vs %v", i, base[i].Similarity, got[i].Similarity)
		}
	}
}

func TestNearestProfilesTopKBounds(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	tests := []struct {
		name       string
		population int
		n          int
		want       int
	}{
		{"fewer candidates than k", 2, 3, 2},
		{"exactly k", 3, 3, 3},
		{"more candidates than k", 10, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			population := make([]Profile, tt.population)
			for i := range population {
				population[i] = testProfile()
				population[i].Age = 20 + i
			}

			ranked, err := NearestProfiles(schema, population, testProfile(), tt.n)
			if err != nil {
				t.Fatalf("NearestProfiles() error = %v", err)
			}
			if len(ranked) != tt.want {
				t.Errorf("len(ranked) = %d, want %d", len(ranked), tt.want)
			}
		})
	}
}

func TestNearestProfilesStableTieBreak(t *testing.T) {
	schema := NewFeatureSchema(DefaultConfig())

	// Identical profiles standardize to all-zero rows: every similarity is 0
	// and original row order must be preserved.
	population := []Profile{testProfile(), testProfile(), testProfile(), testProfile()}

	ranked, err := NearestProfiles(schema, population, testProfile(), 3)
	if err != nil {
		t.Fatalf("NearestProfiles() error = %v", err)
	}

	for i, rc := range ranked {
		if rc.Index != i {
			t.Errorf("tie broken out of order: rank %d has index %d", i, rc.Index)
		}
		if rc.Similarity != 0 {
			t.Errorf("degenerate similarity = %v, want 0", rc.Similarity)
		}
	}
}
