// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type mockServer struct {
	listenErr error
	stop      chan struct{}
	shutdowns atomic.Int32
}

func (m *mockServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stop
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(ctx context.Context) error {
	m.shutdowns.Add(1)
	close(m.stop)
	return nil
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	srv := &mockServer{stop: make(chan struct{})}
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if got := srv.shutdowns.Load(); got != 1 {
		t.Errorf("Shutdown called %d times, want 1", got)
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	srv := &mockServer{listenErr: errors.New("address in use"), stop: make(chan struct{})}
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve returned %v, want wrapped listen error", err)
	}
}

type mockGC struct {
	runs atomic.Int32
}

func (m *mockGC) RunGC() error {
	m.runs.Add(1)
	return nil
}

func TestStoreGCServiceTicks(t *testing.T) {
	gc := &mockGC{}
	svc := NewStoreGCService(gc, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, want context.DeadlineExceeded", err)
	}
	if gc.runs.Load() == 0 {
		t.Error("garbage collection never ran")
	}
}
