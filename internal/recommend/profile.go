// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package recommend

import (
	"errors"

	"github.com/shoprec/shoprec/internal/models"
)

// ErrNoInteractions indicates the user has no rows in the interaction
// table. Callers decide whether that is a hard error or an empty
// recommendation list.
var ErrNoInteractions = errors.New("recommend: user has no interactions")

// BuildProfile returns the user's preference profile: the element-wise
// arithmetic mean of the feature vectors of every interaction row
// belonging to the user. featureIndex maps a combined-feature string to
// its row in matrix. Each interaction contributes once, so an item
// bought twice weighs twice.
func BuildProfile(userID int, interactions []models.Interaction, featureIndex map[string]int, matrix [][]float64) ([]float64, error) {
	if len(matrix) == 0 {
		return nil, ErrNoInteractions
	}

	dim := len(matrix[0])
	profile := make([]float64, dim)
	count := 0
	for _, in := range interactions {
		if in.UserID != userID {
			continue
		}
		row, ok := featureIndex[in.CombinedFeatures()]
		if !ok {
			continue
		}
		for j, w := range matrix[row] {
			profile[j] += w
		}
		count++
	}

	if count == 0 {
		return nil, ErrNoInteractions
	}
	for j := range profile {
		profile[j] /= float64(count)
	}
	return profile, nil
}
