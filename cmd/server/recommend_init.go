// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/recommend/catalog"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// initRecommend creates the service and publishes the first snapshot.
func initRecommend(ctx context.Context, cfg *config.Config) (*recommend.Service, error) {
	logger := logging.WithComponent("recommend")

	src := &catalog.FileSource{
		MoviesPath:  cfg.Data.MoviesPath,
		CreditsPath: cfg.Data.CreditsPath,
		Logger:      logger,
	}
	svc, err := recommend.NewService(src, cfg.Recommend.Engine(), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation service: %w", err)
	}
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// watchDataFiles triggers a reload whenever either CSV changes. Watch
// failures are logged and leave the timer and admin endpoint as the only
// reload paths.
func watchDataFiles(cfg *config.Config, reloader *services.ReloadService) {
	for _, path := range []string{cfg.Data.MoviesPath, cfg.Data.CreditsPath} {
		if err := config.WatchFile(path, reloader.Trigger); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Cannot watch data file")
			continue
		}
		logging.Info().Str("path", path).Msg("Watching data file for changes")
	}
}
