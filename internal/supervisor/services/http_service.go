// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services adapts Cinematch components to suture.Service.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the subset of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTPServer until its context is canceled, then
// shuts it down gracefully within shutdownTimeout.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	name            string
}

const defaultShutdownTimeout = 10 * time.Second

// NewHTTPServerService wraps server. A non-positive shutdownTimeout uses 10s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("unit", "http-server").Logger(),
		name:            "http-server",
	}
}

// Serve implements suture.Service. A listener failure is returned so the
// supervisor restarts the server; cancellation drains in-flight requests.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	started := time.Now()
	done := make(chan error, 1)
	go func() { done <- h.server.ListenAndServe() }()
	h.logger.Info().Msg("http server started")

	select {
	case err := <-done:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		h.logger.Error().Err(err).Dur("uptime", time.Since(started)).Msg("http server stopped unexpectedly")
		return fmt.Errorf("%s: %w", h.name, err)
	case <-ctx.Done():
	}

	// ctx is already done, so the drain gets its own deadline.
	drainCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(drainCtx); err != nil {
		h.logger.Warn().Err(err).Dur("timeout", h.shutdownTimeout).Msg("http server drain incomplete")
		return fmt.Errorf("%s shutdown: %w", h.name, err)
	}
	<-done
	h.logger.Info().Dur("uptime", time.Since(started)).Msg("http server drained")
	return ctx.Err()
}

func (h *HTTPServerService) String() string {
	return h.name
}
