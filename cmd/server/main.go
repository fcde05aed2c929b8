// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/history"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metadata"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/orchestrator"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout      = 10 * time.Second
	cacheMonitorInterval = time.Minute
)

//nolint:gocyclo // Main initialization function with sequential setup steps
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
		Str("version", version).
		Str("movies_file", cfg.Data.MoviesFile).
		Str("ratings_file", cfg.Data.RatingsFile).
		Str("history_file", cfg.Data.HistoryFile).
		Msg("Starting Marquee")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === LOAD PHASE ===

	catalog, err := dataset.LoadMovies(cfg.Data.MoviesFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load movies")
	}
	ratings, err := dataset.LoadRatings(cfg.Data.RatingsFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load ratings")
	}
	ratingUsers := dataset.UserIDs(ratings)

	metrics.SetCatalogSize("movies", catalog.Len())
	metrics.SetCatalogSize("ratings", len(ratings))
	metrics.SetCatalogSize("users", len(ratingUsers))
	logging.Info().
		Int("movies", catalog.Len()).
		Int("ratings", len(ratings)).
		Int("users", len(ratingUsers)).
		Msg("Source tables loaded")

	metaCache := newMetadataCache(cfg)

	predictor := recommend.NewPredictor(algorithms.SVDConfig{
		NumFactors:     cfg.Model.Factors,
		NumEpochs:      cfg.Model.Epochs,
		LearningRate:   cfg.Model.LearningRate,
		Regularization: cfg.Model.Regularization,
		InitStdDev:     cfg.Model.InitStdDev,
		Seed:           cfg.Model.Seed,
		RatingMin:      cfg.Model.RatingMin,
		RatingMax:      cfg.Model.RatingMax,
	}, metaCache, logging.Logger())
	if err := predictor.Load(ctx, catalog, ratings); err != nil {
		logging.Fatal().Err(err).Msg("Failed to train rating model")
	}

	similar := recommend.NewSimilarityEngine(algorithms.TFIDFConfig{
		NumWorkers: cfg.Similarity.NumWorkers,
	}, metaCache, logging.Logger())
	if err := similar.Load(ctx, catalog); err != nil {
		logging.Fatal().Err(err).Msg("Failed to build similarity matrix")
	}

	store := history.NewStore(cfg.Data.HistoryFile, logging.Logger())
	if err := store.Load(ctx, ratings); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load watch history")
	}

	orch := orchestrator.New(orchestrator.Config{
		DefaultResults: cfg.UI.DefaultResults,
		MaxResults:     cfg.UI.MaxResults,
		HistoryLimit:   cfg.UI.HistoryLimit,
	}, orchestrator.Deps{
		Catalog:     catalog,
		RatingUsers: ratingUsers,
		Predictor:   predictor,
		Similar:     similar,
		History:     store,
		Lookup:      metaCache,
	}, logging.Logger())

	// === SERVE PHASE ===

	handler := api.NewHandler(orch, metaCache, version, predictor, similar)
	router := api.NewRouter(handler, newChiMiddleware(cfg), cfg.Server.Timeout)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, shutdownTimeout, logging.Logger()))
	tree.AddBackgroundService(services.NewCacheMonitorService(metaCache, cacheMonitorInterval, logging.Logger()))

	logging.Info().Str("addr", addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Int("live_records", store.LiveCount()).Msg("Marquee stopped")
}

func newMetadataCache(cfg *config.Config) *metadata.Cache {
	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("TMDB_API_KEY is not set; metadata lookups will return placeholders")
	}

	client := metadata.NewTMDBClient(metadata.TMDBConfig{
		BaseURL:  cfg.TMDB.BaseURL,
		APIKey:   cfg.TMDB.APIKey,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.TMDB.Timeout,
	})
	searcher := metadata.NewBreakerSearcher(client, metadata.BreakerConfig{
		Name:         "tmdb-api",
		MinRequests:  cfg.TMDB.BreakerMinRequests,
		FailureRatio: cfg.TMDB.BreakerFailureRatio,
		Timeout:      cfg.TMDB.BreakerTimeout,
	})
	return metadata.NewCache(searcher, metadata.CacheConfig{
		TTL:          cfg.TMDB.CacheTTL,
		MinInterval:  cfg.TMDB.MinInterval,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
	}, logging.Logger())
}

func newChiMiddleware(cfg *config.Config) *api.ChiMiddleware {
	mwCfg := api.DefaultChiMiddlewareConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	}
	if cfg.Security.RateLimitReqs > 0 {
		mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	}
	if cfg.Security.RateLimitWindow > 0 {
		mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	}
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return api.NewChiMiddleware(mwCfg)
}
