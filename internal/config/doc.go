// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration with Koanf v2.
//
// Sources are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
//     /etc/marquee/config.yaml
//  3. Environment variables listed in envTransformFunc
//
// Unknown environment variables are ignored. Durations accept Go duration
// strings ("1h", "100ms"). Slice settings such as CORS_ORIGINS accept
// comma-separated values.
//
// Example config.yaml:
//
//	data:
//	  movies_file: data/movies.csv
//	  ratings_file: data/ratings.csv
//	tmdb:
//	  api_key: your-key
//	  cache_ttl: 1h
//	model:
//	  factors: 100
//	  epochs: 20
package config
