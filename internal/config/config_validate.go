// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateUI(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.MoviesFile) == "" {
		return fmt.Errorf("MOVIES_FILE is required")
	}
	if strings.TrimSpace(c.Data.RatingsFile) == "" {
		return fmt.Errorf("RATINGS_FILE is required")
	}
	if strings.TrimSpace(c.Data.HistoryFile) == "" {
		return fmt.Errorf("HISTORY_FILE is required")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("TMDB_BASE_URL is required")
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.MinInterval < 0 {
		return fmt.Errorf("TMDB_MIN_INTERVAL must not be negative")
	}
	if c.TMDB.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_EXPIRY must be positive")
	}
	if c.TMDB.BreakerFailureRatio <= 0 || c.TMDB.BreakerFailureRatio > 1 {
		return fmt.Errorf("TMDB_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateModel() error {
	m := c.Model
	if m.Factors < 1 {
		return fmt.Errorf("SVD_FACTORS must be at least 1")
	}
	if m.Epochs < 1 {
		return fmt.Errorf("SVD_EPOCHS must be at least 1")
	}
	if m.LearningRate <= 0 {
		return fmt.Errorf("SVD_LEARNING_RATE must be positive")
	}
	if m.Regularization < 0 {
		return fmt.Errorf("SVD_REGULARIZATION must not be negative")
	}
	if m.RatingMin >= m.RatingMax {
		return fmt.Errorf("model rating_min (%v) must be below rating_max (%v)", m.RatingMin, m.RatingMax)
	}
	return nil
}

func (c *Config) validateUI() error {
	if c.UI.MaxResults < 1 {
		return fmt.Errorf("MAX_RESULTS must be at least 1")
	}
	if c.UI.DefaultResults < 1 || c.UI.DefaultResults > c.UI.MaxResults {
		return fmt.Errorf("DEFAULT_RESULTS must be between 1 and MAX_RESULTS (%d)", c.UI.MaxResults)
	}
	if c.UI.HistoryLimit < 1 {
		return fmt.Errorf("HISTORY_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}
