// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package middleware provides HTTP middleware shared by all routes.
package middleware

import (
	"net/http"

	"github.com/shoprec/shoprec/internal/logging"
)

// RequestIDHeader is the header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a correlation ID to every request: an incoming
// X-Request-ID is reused, otherwise a new one is generated. The ID is
// stored on the request context for logging and echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
