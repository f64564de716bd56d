// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package recommend computes content-based product recommendations.
//
// The pipeline runs per request: fetch the interaction feed, vectorize
// the unique combined-feature strings with TF-IDF, build the user's
// profile as the mean of their interaction vectors, and rank all
// candidates by cosine similarity. The vocabulary is rebuilt on every
// request so a recommendation never reflects a stale candidate set;
// repeated requests are made cheap by the cache layer, not by model
// reuse.
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/shoprec/shoprec/internal/feed"
	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/metrics"
	"github.com/shoprec/shoprec/internal/models"
	"github.com/shoprec/shoprec/internal/vectorize"
)

// Engine orchestrates the recommendation pipeline. Safe for concurrent
// use; each request is independent.
type Engine struct {
	feed       feed.Client
	vectorizer *vectorize.Vectorizer
}

// NewEngine builds an Engine over the given interaction feed.
func NewEngine(feedClient feed.Client) *Engine {
	return &Engine{
		feed:       feedClient,
		vectorizer: vectorize.New(),
	}
}

// Recommend returns up to count recommendations for userID, most
// similar first. A cold-start user (no interactions) or an empty
// candidate corpus yields an empty list, not an error. Feed failures
// propagate unchanged, wrapping feed.ErrUpstreamUnavailable.
func (e *Engine) Recommend(ctx context.Context, userID, count int) (models.RecommendationResponse, error) {
	start := time.Now()
	resp := models.RecommendationResponse{
		UserID:          userID,
		Recommendations: []models.RecommendedItem{},
	}

	interactions, err := e.feed.Interactions(ctx)
	if err != nil {
		metrics.RecommendationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return resp, err
	}

	features, items, featureIndex := uniqueFeatures(interactions)

	_, matrix, err := e.vectorizer.FitTransform(features)
	if err != nil {
		if errors.Is(err, vectorize.ErrEmptyCorpus) {
			logging.Ctx(ctx).Debug().Int("user_id", userID).Msg("Empty candidate corpus, returning no recommendations")
			metrics.RecommendationDuration.WithLabelValues("empty").Observe(time.Since(start).Seconds())
			return resp, nil
		}
		metrics.RecommendationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return resp, err
	}

	profile, err := BuildProfile(userID, interactions, featureIndex, matrix)
	if err != nil {
		if errors.Is(err, ErrNoInteractions) {
			logging.Ctx(ctx).Debug().Int("user_id", userID).Msg("User has no interactions, returning no recommendations")
			metrics.RecommendationDuration.WithLabelValues("empty").Observe(time.Since(start).Seconds())
			return resp, nil
		}
		metrics.RecommendationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return resp, err
	}

	for _, r := range Rank(profile, matrix, count) {
		resp.Recommendations = append(resp.Recommendations, items[r.Row])
	}

	logging.Ctx(ctx).Debug().
		Int("user_id", userID).
		Int("candidates", len(features)).
		Int("recommendations", len(resp.Recommendations)).
		Dur("elapsed", time.Since(start)).
		Msg("Computed recommendations")
	metrics.RecommendationDuration.WithLabelValues("computed").Observe(time.Since(start).Seconds())

	return resp, nil
}

// uniqueFeatures derives the candidate set: the distinct combined-feature
// strings in first-occurrence order, each represented by the item of its
// first interaction, plus the feature-to-row index.
func uniqueFeatures(interactions []models.Interaction) ([]string, []models.RecommendedItem, map[string]int) {
	var features []string
	var items []models.RecommendedItem
	index := make(map[string]int)

	for _, in := range interactions {
		f := in.CombinedFeatures()
		if _, seen := index[f]; seen {
			continue
		}
		index[f] = len(features)
		features = append(features, f)
		items = append(items, models.RecommendedItem{ID: in.ProductID, Name: in.ProductName})
	}
	return features, items, index
}
