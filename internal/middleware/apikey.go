// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/shoprec/shoprec/internal/logging"
)

// APIKeyHeader is the header clients present the API key in.
const APIKeyHeader = "X-API-KEY"

// APIKey rejects requests whose X-API-KEY header does not match key.
// An empty configured key disables the check entirely (development
// mode). Comparison is constant-time.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Str("remote", r.RemoteAddr).
					Msg("Rejected request with invalid API key")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
