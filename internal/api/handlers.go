// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package api

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shoprec/shoprec/internal/cache"
	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/recommend"
	"github.com/shoprec/shoprec/internal/store"
)

// Handler carries the API's collaborators.
type Handler struct {
	store     *store.Store
	cache     *cache.Cache
	engine    *recommend.Engine
	cfg       config.RecommendConfig
	validate  *validator.Validate
	startedAt time.Time
}

// NewHandler wires the API handlers.
func NewHandler(s *store.Store, c *cache.Cache, e *recommend.Engine, cfg config.RecommendConfig) *Handler {
	return &Handler{
		store:     s,
		cache:     c,
		engine:    e,
		cfg:       cfg,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		startedAt: time.Now(),
	}
}
