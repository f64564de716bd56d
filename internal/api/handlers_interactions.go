// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package api

import (
	"net/http"

	"github.com/shoprec/shoprec/internal/feed"
	"github.com/shoprec/shoprec/internal/logging"
)

// GetInteractions handles GET /interactions: the `;`-separated CSV
// export of every purchase joined with its user and product. This is
// the same wire format the recommendation engine consumes, so Shoprec
// can act as its own interaction feed.
func (h *Handler) GetInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.store.Interactions()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Building interaction export failed")
		NewResponseWriter(w, r).InternalError("Failed to export interactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if err := feed.WriteInteractions(w, interactions); err != nil {
		// Headers are gone; all we can do is log.
		logging.Ctx(r.Context()).Error().Err(err).Msg("Writing interaction export failed")
	}
}
