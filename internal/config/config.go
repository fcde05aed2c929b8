// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Data       DataConfig       `koanf:"data"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Model      ModelConfig      `koanf:"model"`
	Similarity SimilarityConfig `koanf:"similarity"`
	UI         UIConfig         `koanf:"ui"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DataConfig locates the flat tabular inputs and the live history file.
type DataConfig struct {
	// MoviesFile is the items table (movieId,title,genres).
	MoviesFile string `koanf:"movies_file"`

	// RatingsFile is the ratings table (userId,movieId,rating,timestamp).
	RatingsFile string `koanf:"ratings_file"`

	// HistoryFile stores live "mark as watched" records. Created on first append.
	HistoryFile string `koanf:"history_file"`
}

// TMDBConfig configures the external metadata service.
type TMDBConfig struct {
	APIKey       string `koanf:"api_key"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	Language     string `koanf:"language"`

	// Timeout bounds a single HTTP request. Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// MinInterval is the minimum spacing between outbound requests. Only cache
	// misses wait on it. Default: 100ms
	MinInterval time.Duration `koanf:"min_interval"`

	// CacheTTL is how long a successful or empty lookup is reused. Default: 1h
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// Circuit breaker tuning for the TMDB client.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
}

// ModelConfig holds the latent-factor rating model hyperparameters.
type ModelConfig struct {
	Factors        int     `koanf:"factors"`
	Epochs         int     `koanf:"epochs"`
	LearningRate   float64 `koanf:"learning_rate"`
	Regularization float64 `koanf:"regularization"`
	InitStdDev     float64 `koanf:"init_std_dev"`
	Seed           int64   `koanf:"seed"`
	RatingMin      float64 `koanf:"rating_min"`
	RatingMax      float64 `koanf:"rating_max"`
}

// SimilarityConfig tunes the content similarity build.
type SimilarityConfig struct {
	// NumWorkers for the pairwise matrix build. 0 = runtime.NumCPU()
	NumWorkers int `koanf:"num_workers"`
}

// UIConfig holds result-count defaults for the orchestration layer.
type UIConfig struct {
	DefaultResults int `koanf:"default_results"`
	MaxResults     int `koanf:"max_results"`
	HistoryLimit   int `koanf:"history_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds the inbound HTTP protections. There is no
// authentication.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
