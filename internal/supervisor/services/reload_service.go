// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reloader rebuilds and publishes a new engine snapshot.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadServiceConfig controls when reloads happen.
type ReloadServiceConfig struct {
	// Interval between scheduled reloads. Zero disables the timer; Trigger
	// still works.
	Interval time.Duration

	// Timeout bounds a single rebuild. Zero means no bound beyond the
	// service context.
	Timeout time.Duration
}

// ReloadService rebuilds the engine snapshot on a timer and on demand.
// Triggers that arrive while a rebuild is running are coalesced into one
// follow-up rebuild. A failed rebuild is logged and does not stop the
// service; the previous snapshot keeps serving.
type ReloadService struct {
	reloader Reloader
	config   ReloadServiceConfig
	logger   zerolog.Logger
	trigger  chan struct{}
	name     string
}

// NewReloadService creates a ReloadService.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewReloadService(reloader Reloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("unit", "reload-service").Logger(),
		trigger:  make(chan struct{}, 1),
		name:     "reload-service",
	}
}

// Trigger requests a rebuild without blocking.
func (s *ReloadService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("reload service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s.reload(ctx, "scheduled")
		case <-s.trigger:
			s.reload(ctx, "triggered")
		}
	}
}

func (s *ReloadService) reload(ctx context.Context, reason string) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.reloader.Reload(ctx); err != nil {
		s.logger.Warn().Err(err).Str("reason", reason).Msg("snapshot reload failed")
		return
	}
	s.logger.Debug().Str("reason", reason).Dur("duration", time.Since(start)).Msg("snapshot reload complete")
}

func (s *ReloadService) String() string {
	return s.name
}
