// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

// Package config centralizes Shoprec configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Feed      FeedConfig      `koanf:"feed"`
	Redis     RedisConfig     `koanf:"redis"`
	Cache     CacheConfig     `koanf:"cache"`
	Store     StoreConfig     `koanf:"store"`
	Recommend RecommendConfig `koanf:"recommend"`
	Import    ImportConfig    `koanf:"import"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// FeedConfig holds the interaction feed (user-data service) settings.
// When URL is empty the service serves its own /interactions export and
// consumes it in-process via the store.
type FeedConfig struct {
	URL           string        `koanf:"url"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	RateBurst     int           `koanf:"rate_burst"`
}

// RedisConfig holds Redis connection settings for the recommendation cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// CacheConfig holds cache policy settings.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// StoreConfig holds Badger entity store settings.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultCount int `koanf:"default_count"`
	MaxCount     int `koanf:"max_count"`
}

// ImportConfig holds dataset seed import settings.
type ImportConfig struct {
	Enabled     bool   `koanf:"enabled"`
	DatasetPath string `koanf:"dataset_path"`
}

// SecurityConfig holds API authentication and rate limiting settings.
// An empty APIKey disables authentication (development mode).
type SecurityConfig struct {
	APIKey            string        `koanf:"api_key"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.URL != "" {
		if err := validateHTTPURL(c.Feed.URL, "USER_DATA_SERVICE_URL"); err != nil {
			return err
		}
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT must be positive, got %s", c.Feed.Timeout)
	}
	if c.Feed.RatePerSecond < 0 {
		return fmt.Errorf("FEED_RATE_PER_SECOND must not be negative, got %g", c.Feed.RatePerSecond)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultCount < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_COUNT must be at least 1, got %d", c.Recommend.DefaultCount)
	}
	if c.Recommend.MaxCount < c.Recommend.DefaultCount {
		return fmt.Errorf("RECOMMEND_MAX_COUNT must be at least RECOMMEND_DEFAULT_COUNT (%d), got %d",
			c.Recommend.DefaultCount, c.Recommend.MaxCount)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	if c.Store.GCInterval <= 0 {
		return fmt.Errorf("BADGER_GC_INTERVAL must be positive, got %s", c.Store.GCInterval)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace/debug/info/warn/error/fatal/panic, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that the value parses as an http(s) URL with a host.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
