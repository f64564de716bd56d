// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shoprec/config.yaml",
	"/etc/shoprec/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Feed: FeedConfig{
			URL:           "",
			Timeout:       10 * time.Second,
			RatePerSecond: 10,
			RateBurst:     5,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Store: StoreConfig{
			Path:       "/data/shoprec",
			InMemory:   false,
			GCInterval: 5 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultCount: 5,
			MaxCount:     100,
		},
		Import: ImportConfig{
			Enabled:     false,
			DatasetPath: "ecommerce_dataset.csv",
		},
		Security: SecurityConfig{
			APIKey:            "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file (if it exists)
//  3. Environment Variables: override any setting
//
// Precedence: ENV > File > Defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// Names map through envTransformFunc: REDIS_ADDR -> redis.addr,
	// USER_DATA_SERVICE_URL -> feed.url, etc.
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, which keeps
// unrelated environment variables from polluting the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		// Interaction feed mappings
		"user_data_service_url": "feed.url",
		"feed_timeout":          "feed.timeout",
		"feed_rate_per_second":  "feed.rate_per_second",
		"feed_rate_burst":       "feed.rate_burst",

		// Redis mappings
		"redis_addr":     "redis.addr",
		"redis_password": "redis.password",
		"redis_db":       "redis.db",

		// Cache mappings
		"cache_ttl": "cache.ttl",

		// Badger store mappings
		"badger_path":        "store.path",
		"badger_in_memory":   "store.in_memory",
		"badger_gc_interval": "store.gc_interval",

		// Recommendation mappings
		"recommend_default_count": "recommend.default_count",
		"recommend_max_count":     "recommend.max_count",

		// Dataset import mappings
		"import_dataset":    "import.enabled",
		"dataset_file_path": "import.dataset_path",

		// Security mappings
		"api_key":             "security.api_key",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
