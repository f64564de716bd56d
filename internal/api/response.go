// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package api implements the HTTP API.
//
// CRUD endpoints use a standardized envelope (success/data/error/meta).
// The recommendation endpoint returns its payload bare, because that
// body is the recommendation contract and is stored verbatim in the
// cache.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/shoprec/shoprec/internal/logging"
)

// APIResponse is the standardized response wrapper for CRUD endpoints.
type APIResponse struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (null on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success)
	Error *APIError `json:"error,omitempty"`

	// Meta contains optional metadata about the response
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// RequestID is the request ID for tracing
	RequestID string `json:"request_id,omitempty"`
}

// APIMeta contains optional response metadata.
type APIMeta struct {
	// RequestID is the unique request identifier for tracing
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp"`

	// DurationMs is the request processing time in milliseconds
	DurationMs int64 `json:"duration_ms,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeInvalidUserID       = "INVALID_USER_ID"
	ErrCodeInvalidCount        = "INVALID_COUNT"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// ResponseWriter provides methods for writing standardized API responses.
type ResponseWriter struct {
	w         http.ResponseWriter
	r         *http.Request
	startTime time.Time
}

// NewResponseWriter creates a new response writer.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, startTime: time.Now()}
}

// Success writes a 200 response with data in the envelope.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.writeEnvelope(http.StatusOK, data)
}

// Created writes a 201 Created response with data in the envelope.
func (rw *ResponseWriter) Created(data interface{}) {
	rw.writeEnvelope(http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func (rw *ResponseWriter) NoContent() {
	rw.w.WriteHeader(http.StatusNoContent)
}

// Raw writes payload as the whole response body, without the envelope.
func (rw *ResponseWriter) Raw(statusCode int, payload interface{}) {
	rw.writeJSON(statusCode, payload)
}

// Error writes an error response with the given status code.
func (rw *ResponseWriter) Error(statusCode int, code, message string) {
	requestID := logging.RequestIDFromContext(rw.r.Context())

	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
		Meta: &APIMeta{
			Timestamp:  time.Now(),
			DurationMs: time.Since(rw.startTime).Milliseconds(),
			RequestID:  requestID,
		},
	}
	rw.writeJSON(statusCode, response)
}

// BadRequest writes a 400 Bad Request error.
func (rw *ResponseWriter) BadRequest(code, message string) {
	rw.Error(http.StatusBadRequest, code, message)
}

// NotFound writes a 404 Not Found error.
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError writes a 500 Internal Server Error.
func (rw *ResponseWriter) InternalError(message string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable writes a 503 Service Unavailable error.
func (rw *ResponseWriter) ServiceUnavailable(message string) {
	rw.Error(http.StatusServiceUnavailable, ErrCodeExternalServiceFail, message)
}

func (rw *ResponseWriter) writeEnvelope(statusCode int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp:  time.Now(),
			DurationMs: time.Since(rw.startTime).Milliseconds(),
			RequestID:  logging.RequestIDFromContext(rw.r.Context()),
		},
	}
	rw.writeJSON(statusCode, response)
}

func (rw *ResponseWriter) writeJSON(statusCode int, payload interface{}) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(statusCode)
	if err := json.NewEncoder(rw.w).Encode(payload); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode response body")
	}
}
