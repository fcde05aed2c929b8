// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

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

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			MoviesFile:  "data/movies.csv",
			RatingsFile: "data/ratings.csv",
			HistoryFile: "data/user_history.csv",
		},
		TMDB: TMDBConfig{
			APIKey:              "",
			BaseURL:             "https://api.themoviedb.org/3",
			ImageBaseURL:        "https://image.tmdb.org/t/p/w500",
			Language:            "en-US",
			Timeout:             10 * time.Second,
			MinInterval:         100 * time.Millisecond,
			CacheTTL:            time.Hour,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
			BreakerTimeout:      2 * time.Minute,
		},
		Model: ModelConfig{
			Factors:        100,
			Epochs:         20,
			LearningRate:   0.005,
			Regularization: 0.02,
			InitStdDev:     0.1,
			Seed:           42,
			RatingMin:      1,
			RatingMax:      5,
		},
		Similarity: SimilarityConfig{
			NumWorkers: 0,
		},
		UI: UIConfig{
			DefaultResults: 6,
			MaxResults:     20,
			HistoryLimit:   6,
		},
		Server: ServerConfig{
			Port:    8050,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> tmdb.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
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

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice settings.
// Values that are already slices (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Data files
	"movies_file":  "data.movies_file",
	"ratings_file": "data.ratings_file",
	"history_file": "data.history_file",

	// TMDB
	"tmdb_api_key":               "tmdb.api_key",
	"tmdb_base_url":              "tmdb.base_url",
	"tmdb_image_base_url":        "tmdb.image_base_url",
	"tmdb_language":              "tmdb.language",
	"tmdb_timeout":               "tmdb.timeout",
	"tmdb_min_interval":          "tmdb.min_interval",
	"cache_expiry":               "tmdb.cache_ttl",
	"tmdb_breaker_min_requests":  "tmdb.breaker_min_requests",
	"tmdb_breaker_failure_ratio": "tmdb.breaker_failure_ratio",
	"tmdb_breaker_timeout":       "tmdb.breaker_timeout",

	// Rating model
	"svd_factors":        "model.factors",
	"svd_epochs":         "model.epochs",
	"svd_learning_rate":  "model.learning_rate",
	"svd_regularization": "model.regularization",
	"svd_init_std_dev":   "model.init_std_dev",
	"svd_seed":           "model.seed",

	// Similarity
	"similarity_workers": "similarity.num_workers",

	// Result counts
	"default_results": "ui.default_results",
	"max_results":     "ui.max_results",
	"history_limit":   "ui.history_limit",

	// Server
	"http_port":      "server.port",
	"http_host":      "server.host",
	"server_timeout": "server.timeout",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
