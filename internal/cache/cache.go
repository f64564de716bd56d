// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package cache implements a cache-aside layer over a key-value store.
//
// Store failures degrade to direct computation: a cache outage must
// never make recommendations unavailable. Concurrent misses on the same
// key may compute more than once; the last writer wins and every
// computed value is valid, so no cross-process lock is taken.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/metrics"
)

// ErrCacheMiss indicates the key is absent or expired.
var ErrCacheMiss = errors.New("cache: miss")

// Store is the key-value backend. Get returns ErrCacheMiss for absent
// keys; any other error means the store is unavailable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// UserRecommendationsKey derives the cache key for a recommendation
// response. Requests for the default count share the short key so the
// common case stays a single cache entry per user.
func UserRecommendationsKey(userID, count, defaultCount int) string {
	if count == defaultCount {
		return fmt.Sprintf("user_recommendations:%d", userID)
	}
	return fmt.Sprintf("user_recommendations:%d:%d", userID, count)
}

// UserKey derives the cache key for a user entity.
func UserKey(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// PurchaseKey derives the cache key for a purchase entity.
func PurchaseKey(purchaseID int) string {
	return fmt.Sprintf("purchase:%d", purchaseID)
}

// Cache applies a fixed TTL policy over a Store. Safe for concurrent use.
type Cache struct {
	store Store
	ttl   time.Duration
}

// New builds a Cache writing entries with the given TTL.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// TTL returns the entry time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Invalidate removes keys, logging and swallowing store errors. Stale
// entries then age out via TTL.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if err := c.store.Del(ctx, keys...); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}

// GetOrCompute returns the cached value for key, or computes, stores
// and returns it on a miss. The second return reports whether the value
// came from the cache.
//
// Failure semantics: a store read error (other than a miss) or a write
// error degrades to plain computation and is only logged; an error from
// compute propagates unchanged and nothing is cached.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err != nil {
			// Corrupt entry: recompute and overwrite below.
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
			metrics.CacheOperations.WithLabelValues("error").Inc()
		} else {
			metrics.CacheOperations.WithLabelValues("hit").Inc()
			return cached, true, nil
		}
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheOperations.WithLabelValues("miss").Inc()
	default:
		// Store unavailable: compute without caching.
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache read failed, bypassing cache")
		metrics.CacheOperations.WithLabelValues("error").Inc()
		value, err := compute(ctx)
		if err != nil {
			return zero, false, err
		}
		return value, false, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return zero, false, err
	}

	if raw, err := json.Marshal(value); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache encode failed, skipping write")
	} else if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}

	return value, false, nil
}

// SetJSON stores value under key with the cache TTL, best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
