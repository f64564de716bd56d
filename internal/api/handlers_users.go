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
	"github.com/goccy/go-json"

	"github.com/shoprec/shoprec/internal/cache"
	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/models"
	"github.com/shoprec/shoprec/internal/store"
)

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(u); err != nil {
		rw.BadRequest(ErrCodeValidationFailed, err.Error())
		return
	}

	if err := h.store.PutUser(u); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", u.UserID).Msg("Storing user failed")
		rw.InternalError("Failed to store user")
		return
	}
	h.cache.SetJSON(r.Context(), cache.UserKey(u.UserID), u)

	rw.Created(u)
}

// ListUsers handles GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	users, err := h.store.ListUsers()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Listing users failed")
		rw.InternalError("Failed to list users")
		return
	}
	rw.Success(users)
}

// GetUser handles GET /api/v1/users/{userID}, read-through cached.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		rw.BadRequest(ErrCodeInvalidUserID, "User ID must be an integer")
		return
	}

	u, _, err := cache.GetOrCompute(r.Context(), h.cache, cache.UserKey(userID),
		func(ctx context.Context) (models.User, error) {
			return h.store.GetUser(userID)
		})
	if errors.Is(err, store.ErrNotFound) {
		rw.NotFound("User not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).Msg("Loading user failed")
		rw.InternalError("Failed to load user")
		return
	}
	rw.Success(u)
}

// UpdateUser handles PUT /api/v1/users/{userID}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		rw.BadRequest(ErrCodeInvalidUserID, "User ID must be an integer")
		return
	}
	if _, err := h.store.GetUser(userID); errors.Is(err, store.ErrNotFound) {
		rw.NotFound("User not found")
		return
	} else if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).Msg("Loading user failed")
		rw.InternalError("Failed to load user")
		return
	}

	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		rw.BadRequest(ErrCodeBadRequest, "Request body is not valid JSON")
		return
	}
	u.UserID = userID
	if err := h.validate.Struct(u); err != nil {
		rw.BadRequest(ErrCodeValidationFailed, err.Error())
		return
	}

	if err := h.store.PutUser(u); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).Msg("Updating user failed")
		rw.InternalError("Failed to update user")
		return
	}
	// Refresh the entity cache; recommendation entries age out via TTL.
	h.cache.SetJSON(r.Context(), cache.UserKey(userID), u)

	rw.Success(u)
}

// DeleteUser handles DELETE /api/v1/users/{userID}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		rw.BadRequest(ErrCodeInvalidUserID, "User ID must be an integer")
		return
	}

	if err := h.store.DeleteUser(userID); errors.Is(err, store.ErrNotFound) {
		rw.NotFound("User not found")
		return
	} else if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).Msg("Deleting user failed")
		rw.InternalError("Failed to delete user")
		return
	}
	h.cache.Invalidate(r.Context(), cache.UserKey(userID))

	rw.NoContent()
}
