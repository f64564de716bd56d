// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/shoprec/shoprec/internal/metrics"
)

// healthResponse is the GET /api/v1/health body.
type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Users         int     `json:"users"`
	Items         int     `json:"items"`
	Purchases     int     `json:"purchases"`
}

// Health handles GET /api/v1/health. The store is the only hard
// dependency; the cache and feed degrade gracefully and do not gate
// readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	users, err := h.store.CountUsers()
	if err != nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "Entity store unavailable")
		return
	}
	items, _ := h.store.CountItems()
	purchases, _ := h.store.CountPurchases()

	metrics.StoreEntities.WithLabelValues("user").Set(float64(users))
	metrics.StoreEntities.WithLabelValues("item").Set(float64(items))
	metrics.StoreEntities.WithLabelValues("purchase").Set(float64(purchases))

	rw.Raw(http.StatusOK, healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		Users:         users,
		Items:         items,
		Purchases:     purchases,
	})
}
