// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shoprec/shoprec/internal/feed"
	"github.com/shoprec/shoprec/internal/models"
)

// stubFeed serves a fixed interaction table, or a fixed error.
type stubFeed struct {
	interactions []models.Interaction
	err          error
	calls        int
}

func (s *stubFeed) Interactions(ctx context.Context) ([]models.Interaction, error) {
	s.calls++
	return s.interactions, s.err
}

func testInteractions() []models.Interaction {
	return []models.Interaction{
		{UserID: 1, ProductID: 101, Category: "books", ProductName: "Dune", Tags: "scifi space"},
		{UserID: 1, ProductID: 102, Category: "books", ProductName: "Foundation", Tags: "scifi empire"},
		{UserID: 2, ProductID: 201, Category: "electronics", ProductName: "Mouse", Tags: "wireless usb"},
		{UserID: 2, ProductID: 202, Category: "electronics", ProductName: "Keyboard", Tags: "mechanical usb"},
	}
}

func TestRecommendPrefersSimilarItems(t *testing.T) {
	e := NewEngine(&stubFeed{interactions: testInteractions()})

	resp, err := e.Recommend(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if resp.UserID != 1 {
		t.Errorf("response user_id = %d, want 1", resp.UserID)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}

	// A scifi-book buyer must see the scifi books ahead of the electronics.
	for i, rec := range resp.Recommendations {
		if rec.ID != 101 && rec.ID != 102 {
			t.Errorf("recommendation %d = %+v, want a book product", i, rec)
		}
	}
}

func TestRecommendCountBounds(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantLen int
	}{
		{"zero count", 0, 0},
		{"count below candidates", 3, 3},
		{"count above candidates", 50, 4}, // 4 unique feature strings
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(&stubFeed{interactions: testInteractions()})
			resp, err := e.Recommend(context.Background(), 1, tt.count)
			if err != nil {
				t.Fatalf("Recommend failed: %v", err)
			}
			if len(resp.Recommendations) != tt.wantLen {
				t.Errorf("got %d recommendations, want %d", len(resp.Recommendations), tt.wantLen)
			}
		})
	}
}

func TestRecommendColdStartUser(t *testing.T) {
	e := NewEngine(&stubFeed{interactions: testInteractions()})

	resp, err := e.Recommend(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("Recommend for cold-start user failed: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("cold-start user got %d recommendations, want 0", len(resp.Recommendations))
	}
	if resp.Recommendations == nil {
		t.Error("recommendations must be an empty list, not nil")
	}
}

func TestRecommendEmptyFeed(t *testing.T) {
	e := NewEngine(&stubFeed{})

	resp, err := e.Recommend(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("Recommend with empty feed failed: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("empty feed got %d recommendations, want 0", len(resp.Recommendations))
	}
}

func TestRecommendFeedFailurePropagates(t *testing.T) {
	feedErr := fmt.Errorf("%w: connection refused", feed.ErrUpstreamUnavailable)
	e := NewEngine(&stubFeed{err: feedErr})

	_, err := e.Recommend(context.Background(), 1, 5)
	if !errors.Is(err, feed.ErrUpstreamUnavailable) {
		t.Errorf("Recommend error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestRecommendDuplicateFeaturesCollapse(t *testing.T) {
	// Two distinct products sharing a combined-feature string form one
	// candidate, represented by the first occurrence.
	interactions := []models.Interaction{
		{UserID: 1, ProductID: 101, Category: "books", ProductName: "Dune", Tags: "scifi"},
		{UserID: 2, ProductID: 102, Category: "books", ProductName: "Foundation", Tags: "scifi"},
	}
	e := NewEngine(&stubFeed{interactions: interactions})

	resp, err := e.Recommend(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 collapsed candidate", len(resp.Recommendations))
	}
	if resp.Recommendations[0].ID != 101 || resp.Recommendations[0].Name != "Dune" {
		t.Errorf("representative item = %+v, want first occurrence (101, Dune)", resp.Recommendations[0])
	}
}
