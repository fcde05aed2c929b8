// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee serves personalized movie recommendations from a latent-factor rating
model, genre-based "more like this" lists, and a per-user watch history that
merges the ratings dataset with movies marked as watched in the app. Results
are enriched with poster art and overviews from TMDB.

# Startup

Startup is split into a load phase and a serve phase:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Source tables: movies.csv and ratings.csv; any error is fatal
 4. Rating model: trained once, synchronously
 5. Similarity matrix: built once over genre TF-IDF vectors
 6. Watch history: derived records from ratings plus the live history file
 7. Supervisor tree: HTTP server and the metadata cache monitor

The server does not accept requests until every model is ready.

# Configuration

Common environment variables:

	MOVIES_FILE=data/movies.csv
	RATINGS_FILE=data/ratings.csv
	HISTORY_FILE=data/user_history.csv
	TMDB_API_KEY=...
	HTTP_PORT=8050
	LOG_LEVEL=info

Without TMDB_API_KEY the server still runs; every result carries the
"no metadata" placeholder.

# Signal Handling

SIGINT and SIGTERM cancel the root context. In-flight requests get ten
seconds to drain before the listener is closed.
*/
package main
