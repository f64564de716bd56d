// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/shoprec/shoprec/internal/models"
)

func TestBuildProfileMean(t *testing.T) {
	interactions := []models.Interaction{
		{UserID: 1, Category: "books", Tags: "scifi"},
		{UserID: 1, Category: "books", Tags: "fantasy"},
		{UserID: 2, Category: "electronics", Tags: "usb"},
	}
	featureIndex := map[string]int{
		"books scifi":     0,
		"books fantasy":   1,
		"electronics usb": 2,
	}
	matrix := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	profile, err := BuildProfile(1, interactions, featureIndex, matrix)
	if err != nil {
		t.Fatalf("BuildProfile failed: %v", err)
	}

	want := []float64{0.5, 0.5, 0}
	for j := range want {
		if math.Abs(profile[j]-want[j]) > 1e-12 {
			t.Errorf("profile[%d] = %v, want %v", j, profile[j], want[j])
		}
	}
}

func TestBuildProfileRepeatedPurchaseWeighsMore(t *testing.T) {
	interactions := []models.Interaction{
		{UserID: 1, Category: "books", Tags: "scifi"},
		{UserID: 1, Category: "books", Tags: "scifi"},
		{UserID: 1, Category: "books", Tags: "fantasy"},
	}
	featureIndex := map[string]int{"books scifi": 0, "books fantasy": 1}
	matrix := [][]float64{{1, 0}, {0, 1}}

	profile, err := BuildProfile(1, interactions, featureIndex, matrix)
	if err != nil {
		t.Fatalf("BuildProfile failed: %v", err)
	}
	if profile[0] <= profile[1] {
		t.Errorf("twice-bought feature should dominate: profile = %v", profile)
	}
}

func TestBuildProfileNoInteractions(t *testing.T) {
	interactions := []models.Interaction{
		{UserID: 1, Category: "books", Tags: "scifi"},
	}
	featureIndex := map[string]int{"books scifi": 0}
	matrix := [][]float64{{1}}

	_, err := BuildProfile(99, interactions, featureIndex, matrix)
	if !errors.Is(err, ErrNoInteractions) {
		t.Errorf("BuildProfile for unknown user = %v, want ErrNoInteractions", err)
	}

	_, err = BuildProfile(1, nil, nil, nil)
	if !errors.Is(err, ErrNoInteractions) {
		t.Errorf("BuildProfile with empty matrix = %v, want ErrNoInteractions", err)
	}
}
