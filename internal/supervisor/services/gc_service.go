// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package services

import (
	"context"
	"time"

	"github.com/shoprec/shoprec/internal/logging"
)

// GarbageCollector runs one maintenance pass over a store.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService periodically runs Badger value-log garbage collection.
// GC failures are logged, not fatal; the next tick tries again.
type StoreGCService struct {
	gc       GarbageCollector
	interval time.Duration
}

// NewStoreGCService builds the maintenance loop.
func NewStoreGCService(gc GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StoreGCService{gc: gc, interval: interval}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.gc.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Store garbage collection failed")
			} else {
				logging.Debug().Msg("Store garbage collection pass complete")
			}
		}
	}
}

func (s *StoreGCService) String() string {
	return "store-gc"
}
