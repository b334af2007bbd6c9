// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point for the Cinematch server.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Recommendation service and the first engine snapshot, built from the
//     movies and credits CSV tables
//  4. Supervisor tree with the reload service and the HTTP server
//
// The first snapshot must build successfully or the process exits. Later
// rebuilds (RELOAD_INTERVAL, RELOAD_ON_CHANGE or POST /api/v1/admin/reload)
// that fail leave the current snapshot serving.
//
// Example:
//
//	MOVIES_CSV=data/tmdb_5000_movies.csv \
//	CREDITS_CSV=data/tmdb_5000_credits.csv \
//	HTTP_PORT=5000 LOG_FORMAT=console ./cinematch
//
// SIGINT and SIGTERM stop the supervisor tree, which drains in-flight HTTP
// requests for up to HTTP_SHUTDOWN_TIMEOUT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.Logger())

	logging.Info().
		Str("movies", cfg.Data.MoviesPath).
		Str("credits", cfg.Data.CreditsPath).
		Int("max_features", cfg.Recommend.MaxFeatures).
		Msg("Starting Cinematch")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := initRecommend(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build initial recommendation snapshot")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	reloader := services.NewReloadService(svc, services.ReloadServiceConfig{
		Interval: cfg.Recommend.ReloadInterval,
	}, logging.WithComponent("reload"))
	tree.AddEngineService(reloader)
	if cfg.Recommend.WatchFiles {
		watchDataFiles(cfg, reloader)
	}

	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(api.NewHandler(svc, cfg.Server.Timeout), mw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("unit", u.Name).Msg("Service failed to stop within timeout")
	}
	logging.Info().Msg("Cinematch stopped")
}
