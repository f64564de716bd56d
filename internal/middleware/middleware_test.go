// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shoprec/shoprec/internal/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDGenerated(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == "" {
		t.Error("no request ID on context")
	}
	if header := rec.Header().Get(RequestIDHeader); header != got {
		t.Errorf("response header %q = %q, want %q", RequestIDHeader, header, got)
	}
}

func TestRequestIDPreserved(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		presented  string
		wantStatus int
	}{
		{"disabled when unset", "", "", http.StatusOK},
		{"disabled ignores header", "", "anything", http.StatusOK},
		{"matching key", "secret", "secret", http.StatusOK},
		{"missing key", "secret", "", http.StatusUnauthorized},
		{"wrong key", "secret", "guess", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := APIKey(tt.configured)(okHandler())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			if tt.presented != "" {
				req.Header.Set(APIKeyHeader, tt.presented)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
