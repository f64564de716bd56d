// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Command server runs the Shoprec HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shoprec/shoprec/internal/api"
	"github.com/shoprec/shoprec/internal/cache"
	"github.com/shoprec/shoprec/internal/config"
	"github.com/shoprec/shoprec/internal/feed"
	"github.com/shoprec/shoprec/internal/importer"
	"github.com/shoprec/shoprec/internal/logging"
	"github.com/shoprec/shoprec/internal/recommend"
	"github.com/shoprec/shoprec/internal/store"
	"github.com/shoprec/shoprec/internal/supervisor"
	"github.com/shoprec/shoprec/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("redis", cfg.Redis.Addr).
		Bool("in_memory_store", cfg.Store.InMemory).
		Msg("Starting shoprec")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Service failed")
	}
	logging.Info().Msg("Shutdown complete")
}

func run(ctx context.Context, cfg *config.Config) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logging.Warn().Err(err).Msg("Closing store failed")
		}
	}()

	if cfg.Import.Enabled {
		stats, err := importer.New(s).ImportFile(ctx, cfg.Import.DatasetPath)
		if err != nil {
			return err
		}
		logging.Info().
			Int("users", stats.UsersImported).
			Int("items", stats.ItemsImported).
			Int("purchases", stats.PurchasesAdded).
			Msg("Seed dataset imported")
	}

	redisStore := cache.NewRedisStore(cfg.Redis)
	defer func() {
		if err := redisStore.Close(); err != nil {
			logging.Warn().Err(err).Msg("Closing redis client failed")
		}
	}()
	if err := redisStore.Ping(ctx); err != nil {
		// The cache layer degrades to direct computation, so a missing
		// Redis is a warning, not a startup failure.
		logging.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, serving without cache")
	}
	c := cache.New(redisStore, cfg.Cache.TTL)

	var feedClient feed.Client
	if cfg.Feed.URL != "" {
		feedClient = feed.NewHTTPClient(cfg.Feed)
		logging.Info().Str("url", cfg.Feed.URL).Msg("Using upstream interaction feed")
	} else {
		feedClient = feed.NewLocalClient(s)
		logging.Info().Msg("No feed URL configured, serving interactions from the local store")
	}

	engine := recommend.NewEngine(feedClient)
	handler := api.NewHandler(s, c, engine, cfg.Recommend)
	router := api.NewRouter(handler, cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))
	if !cfg.Store.InMemory {
		tree.AddDataService(services.NewStoreGCService(s, cfg.Store.GCInterval))
	}

	err = tree.Serve(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	return err
}
