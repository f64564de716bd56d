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
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/shoprec/shoprec/internal/cache"
	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/models"
	"github.com/shoprec/shoprec/internal/store"
)

// createPurchaseRequest is the POST /purchases body. The purchase ID is
// assigned by the server.
type createPurchaseRequest struct {
	UserID    int     `json:"user_id" validate:"required,gt=0"`
	ProductID int     `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreatePurchase handles POST /api/v1/purchases.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.BadRequest(ErrCodeValidationFailed, err.Error())
		return
	}

	// Referential integrity: the buyer and product must exist.
	if _, err := h.store.GetUser(req.UserID); errors.Is(err, store.ErrNotFound) {
		rw.BadRequest(ErrCodeValidationFailed, "User does not exist")
		return
	} else if err != nil {
		rw.InternalError("Failed to check user")
		return
	}
	if _, err := h.store.GetItem(req.ProductID); errors.Is(err, store.ErrNotFound) {
		rw.BadRequest(ErrCodeValidationFailed, "Product does not exist")
		return
	} else if err != nil {
		rw.InternalError("Failed to check product")
		return
	}

	maxID, err := h.store.MaxPurchaseID()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Determining next purchase ID failed")
		rw.InternalError("Failed to store purchase")
		return
	}

	p := models.Purchase{
		PurchaseID: maxID + 1,
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.store.PutPurchase(p); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("purchase_id", p.PurchaseID).Msg("Storing purchase failed")
		rw.InternalError("Failed to store purchase")
		return
	}
	h.cache.SetJSON(r.Context(), cache.PurchaseKey(p.PurchaseID), p)

	rw.Created(p)
}

// ListPurchases handles GET /api/v1/purchases.
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	purchases, err := h.store.ListPurchases()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Listing purchases failed")
		rw.InternalError("Failed to list purchases")
		return
	}
	rw.Success(purchases)
}

// GetPurchase handles GET /api/v1/purchases/{purchaseID}, read-through cached.
func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	purchaseID, err := strconv.Atoi(chi.URLParam(r, "purchaseID"))
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Purchase ID must be an integer")
		return
	}

	p, _, err := cache.GetOrCompute(r.Context(), h.cache, cache.PurchaseKey(purchaseID),
		func(ctx context.Context) (models.Purchase, error) {
			return h.store.GetPurchase(purchaseID)
		})
	if errors.Is(err, store.ErrNotFound) {
		rw.NotFound("Purchase not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("purchase_id", purchaseID).Msg("Loading purchase failed")
		rw.InternalError("Failed to load purchase")
		return
	}
	rw.Success(p)
}

// UpdatePurchase handles PUT /api/v1/purchases/{purchaseID}. The purchase
// ID and timestamp are immutable; the body carries the mutable fields.
func (h *Handler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	purchaseID, err := strconv.Atoi(chi.URLParam(r, "purchaseID"))
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Purchase ID must be an integer")
		return
	}

	existing, err := h.store.GetPurchase(purchaseID)
	if errors.Is(err, store.ErrNotFound) {
		rw.NotFound("Purchase not found")
		return
	} else if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("purchase_id", purchaseID).Msg("Loading purchase failed")
		rw.InternalError("Failed to load purchase")
		return
	}

	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.BadRequest(ErrCodeValidationFailed, err.Error())
		return
	}

	if _, err := h.store.GetUser(req.UserID); errors.Is(err, store.ErrNotFound) {
		rw.BadRequest(ErrCodeValidationFailed, "User does not exist")
		return
	} else if err != nil {
		rw.InternalError("Failed to check user")
		return
	}
	if _, err := h.store.GetItem(req.ProductID); errors.Is(err, store.ErrNotFound) {
		rw.BadRequest(ErrCodeValidationFailed, "Product does not exist")
		return
	} else if err != nil {
		rw.InternalError("Failed to check product")
		return
	}

	p := models.Purchase{
		PurchaseID: purchaseID,
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Timestamp:  existing.Timestamp,
	}
	if err := h.store.PutPurchase(p); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("purchase_id", purchaseID).Msg("Storing purchase failed")
		rw.InternalError("Failed to store purchase")
		return
	}
	h.cache.SetJSON(r.Context(), cache.PurchaseKey(purchaseID), p)

	rw.Success(p)
}

// DeletePurchase handles DELETE /api/v1/purchases/{purchaseID}.
func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	purchaseID, err := strconv.Atoi(chi.URLParam(r, "purchaseID"))
	if err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Purchase ID must be an integer")
		return
	}

	if err := h.store.DeletePurchase(purchaseID); errors.Is(err, store.ErrNotFound) {
		rw.NotFound("Purchase not found")
		return
	} else if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("purchase_id", purchaseID).Msg("Deleting purchase failed")
		rw.InternalError("Failed to delete purchase")
		return
	}
	h.cache.Invalidate(r.Context(), cache.PurchaseKey(purchaseID))

	rw.NoContent()
}
