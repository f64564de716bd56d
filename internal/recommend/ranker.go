// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package recommend

import (
	"math"
	"sort"
)

// RankedRow is one scored candidate: the matrix row index and its
// cosine similarity against the profile.
type RankedRow struct {
	Row   int
	Score float64
}

// Rank scores every matrix row against the profile by cosine similarity
// and returns the top k rows ordered descending by score. Rows with
// equal scores keep their original order (stable sort). k larger than
// the row count returns all rows; k <= 0 returns an empty slice.
func Rank(profile []float64, matrix [][]float64, k int) []RankedRow {
	if k <= 0 || len(matrix) == 0 {
		return []RankedRow{}
	}

	ranked := make([]RankedRow, len(matrix))
	for i, row := range matrix {
		ranked[i] = RankedRow{Row: i, Score: cosine(profile, row)}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// cosine returns the cosine similarity of a and b, or 0 when either
// vector is zero.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
