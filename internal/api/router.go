// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/middleware"
)

// NewRouter builds the HTTP route tree.
//
// Public surface: /metrics, /interactions (the feed export other
// services consume) and /api/v1/health. Everything else under /api/v1
// sits behind the API key and a per-client rate limit.
func NewRouter(h *Handler, sec config.SecurityConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/interactions", h.GetInteractions)
	r.Get("/api/v1/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if !sec.RateLimitDisabled {
			r.Use(httprate.LimitByIP(sec.RateLimitReqs, sec.RateLimitWindow))
		}
		r.Use(middleware.APIKey(sec.APIKey))

		r.Get("/recommendations/{userID}", h.GetRecommendations)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Get("/", h.ListUsers)
			r.Get("/{userID}", h.GetUser)
			r.Put("/{userID}", h.UpdateUser)
			r.Delete("/{userID}", h.DeleteUser)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", h.CreatePurchase)
			r.Get("/", h.ListPurchases)
			r.Get("/{purchaseID}", h.GetPurchase)
			r.Put("/{purchaseID}", h.UpdatePurchase)
			r.Delete("/{purchaseID}", h.DeletePurchase)
		})
	})

	return r
}
