// Hopmatch - Taste-Profile Beer Study and Recommendation Service
// Copyright 2026 Hopmatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hopmatch/hopmatch

package recommend

import (
	"math"
	"sort"
)

// RankedCandidate pairs a population row index with its cosine similarity to
// the query, computed over standardized feature vectors. Similarity is in
// [-1,1].
type RankedCandidate struct {
	Index      int
	Similarity float64
}

// NearestProfiles ranks the population by similarity to the query and returns
// the top n candidates, descending; ties keep original row order. Population
// statistics are recomputed from the given profiles on every call, so newly
// arrived observations are reflected immediately. Fails with
// errEmptyPopulation when the population is empty.
func NearestProfiles(schema FeatureSchema, population []Profile, query Profile, n int) ([]RankedCandidate, error) {
	matrix, err := schema.EncodePopulation(population)
	if err != nil {
		return nil, err
	}
	queryVec := schema.Encode(query)

	standardize(matrix, queryVec)

	ranked := make([]RankedCandidate, len(matrix))
	for i, row := range matrix {
		ranked[i] = RankedCandidate{Index: i, Similarity: cosineSimilarity(queryVec, row)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// standardize rescales every column of the matrix, and the query vector, to
// zero mean and unit variance using statistics computed over the matrix rows.
// A zero-variance column standardizes to 0 everywhere, including the query.
// Both arguments are modified in place.
func standardize(matrix [][]float64, query []float64) {
	if len(matrix) == 0 || len(query) == 0 {
		return
	}

	cols := len(query)
	n := float64(len(matrix))

	means := make([]float64, cols)
	for _, row := range matrix {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}

	stds := make([]float64, cols)
	for _, row := range matrix {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
	}

	for _, row := range matrix {
		for j := range row {
			if stds[j] == 0 {
				row[j] = 0
				continue
			}
			row[j] = (row[j] - means[j]) / stds[j]
		}
	}
	for j := range query {
		if stds[j] == 0 {
			query[j] = 0
			continue
		}
		query[j] = (query[j] - means[j]) / stds[j]
	}
}

// cosineSimilarity computes sim(u,v) = (u·v) / (‖u‖·‖v‖), defined as 0 when
// either norm is 0 or the lengths differ.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
