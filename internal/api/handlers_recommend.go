// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoprec/shoprec/internal/cache"
	"github.com/shoprec/shoprec/internal/feed"
	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/metrics"
	"github.com/shoprec/shoprec/internal/models"
)

// GetRecommendations handles GET /api/v1/recommendations/{userID}?count=N.
//
// The response body is the bare recommendation contract
// {user_id, recommendations:[{id,name}]}, exactly as cached. A user
// without interaction history gets 200 with an empty list; only an
// unusable request (non-integer user ID, malformed or negative count)
// is a client error.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		rw.BadRequest(ErrCodeInvalidUserID, "User ID must be an integer")
		return
	}

	count := h.cfg.DefaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			rw.BadRequest(ErrCodeInvalidCount, "Count must be a non-negative integer")
			return
		}
		count = parsed
	}
	if count > h.cfg.MaxCount {
		logging.Ctx(r.Context()).Debug().
			Int("requested", count).
			Int("max", h.cfg.MaxCount).
			Msg("Clamping recommendation count")
		count = h.cfg.MaxCount
	}

	key := cache.UserRecommendationsKey(userID, count, h.cfg.DefaultCount)
	resp, fromCache, err := cache.GetOrCompute(r.Context(), h.cache, key,
		func(ctx context.Context) (models.RecommendationResponse, error) {
			return h.engine.Recommend(ctx, userID, count)
		})
	if err != nil {
		if errors.Is(err, feed.ErrUpstreamUnavailable) {
			rw.ServiceUnavailable("Interaction feed unavailable")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).Msg("Recommendation computation failed")
		rw.InternalError("Failed to compute recommendations")
		return
	}

	if fromCache {
		metrics.RecommendationsServed.WithLabelValues("cache").Inc()
	} else {
		metrics.RecommendationsServed.WithLabelValues("computed").Inc()
	}

	rw.Raw(http.StatusOK, resp)
}
