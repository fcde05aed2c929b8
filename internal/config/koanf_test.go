// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.TMDB.CacheTTL != time.Hour {
		t.Errorf("TMDB.CacheTTL = %v, want 1h", cfg.TMDB.CacheTTL)
	}
	if cfg.TMDB.MinInterval != 100*time.Millisecond {
		t.Errorf("TMDB.MinInterval = %v, want 100ms", cfg.TMDB.MinInterval)
	}
	if cfg.Model.Factors != 100 || cfg.Model.Epochs != 20 {
		t.Errorf("Model = %d factors / %d epochs, want 100 / 20", cfg.Model.Factors, cfg.Model.Epochs)
	}
	if cfg.Model.LearningRate != 0.005 || cfg.Model.Regularization != 0.02 {
		t.Errorf("Model lr/reg = %v/%v, want 0.005/0.02", cfg.Model.LearningRate, cfg.Model.Regularization)
	}
	if cfg.UI.DefaultResults != 6 || cfg.UI.MaxResults != 20 {
		t.Errorf("UI = %d/%d, want 6/20", cfg.UI.DefaultResults, cfg.UI.MaxResults)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("TMDB_API_KEY", "secret")
	t.Setenv("SVD_FACTORS", "8")
	t.Setenv("CACHE_EXPIRY", "30m")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.TMDB.APIKey != "secret" {
		t.Errorf("TMDB.APIKey = %q, want secret", cfg.TMDB.APIKey)
	}
	if cfg.Model.Factors != 8 {
		t.Errorf("Model.Factors = %d, want 8", cfg.Model.Factors)
	}
	if cfg.TMDB.CacheTTL != 30*time.Minute {
		t.Errorf("TMDB.CacheTTL = %v, want 30m", cfg.TMDB.CacheTTL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Model.Epochs != 20 {
		t.Errorf("Model.Epochs = %d, want default 20", cfg.Model.Epochs)
	}
}

func TestLoadWithKoanf_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	content := "data:\n  movies_file: /srv/movies.csv\nmodel:\n  epochs: 5\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SVD_EPOCHS", "7")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Data.MoviesFile != "/srv/movies.csv" {
		t.Errorf("Data.MoviesFile = %q, want /srv/movies.csv", cfg.Data.MoviesFile)
	}
	if cfg.Model.Epochs != 7 {
		t.Errorf("Model.Epochs = %d, want env override 7", cfg.Model.Epochs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"cache_expiry", "tmdb.cache_ttl"},
		{"HTTP_PORT", "server.port"},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"missing movies", func(c *Config) { c.Data.MoviesFile = "" }, "MOVIES_FILE"},
		{"zero factors", func(c *Config) { c.Model.Factors = 0 }, "SVD_FACTORS"},
		{"inverted scale", func(c *Config) { c.Model.RatingMin = 5 }, "rating_min"},
		{"zero ttl", func(c *Config) { c.TMDB.CacheTTL = 0 }, "CACHE_EXPIRY"},
		{"default above max", func(c *Config) { c.UI.DefaultResults = 50 }, "DEFAULT_RESULTS"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
