// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package feed fetches the purchase interaction feed from the upstream
// user-data service. The feed is a `;`-separated CSV export of historical
// purchases joined with user and product attributes.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/metrics"
	"github.com/shoprec/shoprec/internal/models"
)

var (
	// ErrUpstreamUnavailable indicates the interaction feed could not be
	// reached or answered with a non-success status. Callers should treat
	// it as transient.
	ErrUpstreamUnavailable = errors.New("feed: upstream interaction feed unavailable")

	// ErrInvalidRecord indicates the feed payload was malformed: bad
	// header, wrong field count, or a non-numeric ID field.
	ErrInvalidRecord = errors.New("feed: invalid interaction record")
)

// Client provides the interaction feed. Implementations must be safe
// for concurrent use.
type Client interface {
	Interactions(ctx context.Context) ([]models.Interaction, error)
}

// HTTPClient fetches interactions over HTTP with a circuit breaker and
// a client-side rate limit protecting the upstream service.
type HTTPClient struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]models.Interaction]
	name    string
}

// NewHTTPClient builds a feed client for cfg.URL. The circuit breaker
// opens after a 60% failure rate over at least 10 requests, and probes
// recovery after 30 seconds.
func NewHTTPClient(cfg config.FeedConfig) *HTTPClient {
	const cbName = "interaction-feed"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.Interaction](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Feed circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &HTTPClient{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		cb:      cb,
		name:    cbName,
	}
}

// Interactions fetches and parses the full feed. Transport failures and
// non-2xx responses are reported as ErrUpstreamUnavailable; malformed
// payloads as ErrInvalidRecord.
func (c *HTTPClient) Interactions(ctx context.Context) ([]models.Interaction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrUpstreamUnavailable, err)
	}

	start := time.Now()
	interactions, err := c.cb.Execute(func() ([]models.Interaction, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("Feed request rejected by circuit breaker")
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	metrics.FeedRowsFetched.Add(float64(len(interactions)))

	logging.Debug().
		Int("rows", len(interactions)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched interaction feed")

	return interactions, nil
}

func (c *HTTPClient) fetch(ctx context.Context) ([]models.Interaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	return ParseInteractions(resp.Body)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
