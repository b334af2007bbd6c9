// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/catalog"
)

// Query modes.
const (
	ModeMovie = "movie"
	ModeMood  = "mood"
)

// Request is a mode-dispatched query.
type Request struct {
	Mode  string
	Value string
	TopN  int
}

// Response carries the results and the snapshot that produced them.
type Response struct {
	Mode     string
	Query    string
	Results  []Recommendation
	Snapshot uint64
}

// Status summarises the service for health and admin endpoints.
type Status struct {
	Ready      bool      `json:"ready"`
	Version    uint64    `json:"version"`
	BuiltAt    time.Time `json:"built_at,omitempty"`
	Movies     int       `json:"movies"`
	Vocabulary int       `json:"vocabulary"`
	Reloads    int64     `json:"reloads"`
	Failures   int64     `json:"failures"`
	LastError  string    `json:"last_error,omitempty"`
}

// resultKey identifies a title query within one snapshot.
type resultKey struct {
	version uint64
	title   string
	k       int
}

// Service holds the current Engine snapshot and replaces it on Reload.
type Service struct {
	source catalog.Source
	config *Config
	logger zerolog.Logger

	// results is nil when ResultCacheSize is zero.
	results *cache.LRU[resultKey, []Recommendation]

	current  atomic.Pointer[Engine]
	versions atomic.Uint64
	reloads  atomic.Int64
	failures atomic.Int64

	// reloadMu serialises rebuilds; queries never take it.
	reloadMu sync.Mutex
	lastErr  atomic.Pointer[string]
}

// NewService creates a Service. No snapshot exists until Reload succeeds.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(src catalog.Source, cfg *Config, logger zerolog.Logger) (*Service, error) {
	if src == nil {
		return nil, errors.New("catalog source is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := &Service{
		source: src,
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend-service").Logger(),
	}
	if cfg.ResultCacheSize > 0 {
		s.results = cache.NewLRU[resultKey, []Recommendation](cfg.ResultCacheSize, 0)
	}
	return s, nil
}

// Reload builds a fresh snapshot and atomically publishes it. On failure
// the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	engine, err := Build(ctx, s.source, s.config, s.logger)
	metrics.RecordBuild(err)
	if err != nil {
		s.failures.Add(1)
		msg := err.Error()
		s.lastErr.Store(&msg)
		s.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("snapshot rebuild failed, keeping previous snapshot")
		return err
	}

	engine.version = s.versions.Add(1)
	s.current.Store(engine)
	s.reloads.Add(1)
	if s.results != nil {
		// Entries of older snapshots can no longer hit.
		s.results.Purge()
	}
	s.lastErr.Store(nil)

	metrics.UpdateSnapshot(engine.version, engine.stats.Movies, engine.stats.Vocabulary)
	s.logger.Info().
		Uint64("version", engine.version).
		Int("movies", engine.stats.Movies).
		Dur("duration", time.Since(start)).
		Msg("snapshot published")
	return nil
}

// Engine returns the current snapshot.
func (s *Service) Engine() (*Engine, error) {
	e := s.current.Load()
	if e == nil {
		return nil, ErrNotReady
	}
	return e, nil
}

// Ready reports whether a snapshot is available.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Status returns a point-in-time summary.
func (s *Service) Status() Status {
	st := Status{
		Reloads:  s.reloads.Load(),
		Failures: s.failures.Load(),
	}
	if msg := s.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	if e := s.current.Load(); e != nil {
		st.Ready = true
		st.Version = e.version
		st.BuiltAt = e.builtAt
		st.Movies = e.stats.Movies
		st.Vocabulary = e.stats.Vocabulary
	}
	return st
}

// Recommend dispatches req to the current snapshot. The whole query runs
// against one snapshot even if a reload publishes a new one meanwhile.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))

	e, err := s.Engine()
	if err != nil {
		metrics.RecordRecommendation(mode, "not_ready", 0)
		return nil, err
	}
	ctx = logging.ContextWithSnapshot(ctx, e.version)

	var results []Recommendation
	switch mode {
	case ModeMovie:
		results, err = s.byTitle(ctx, e, req.Value, req.TopN)
	case ModeMood:
		results, err = e.RecommendByMood(ctx, req.Value, req.TopN)
	default:
		metrics.RecordRecommendation("invalid", "invalid_mode", 0)
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	outcome := outcomeOf(err)
	metrics.RecordRecommendation(mode, outcome, len(results))
	if err != nil {
		event := logging.Ctx(ctx).Debug()
		if outcome == "internal_error" {
			event = logging.Ctx(ctx).Error()
		}
		event.Err(err).Str("mode", mode).Str("value", req.Value).Msg("recommendation failed")
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("mode", mode).
		Str("value", req.Value).
		Int("results", len(results)).
		Msg("recommendation served")

	return &Response{Mode: mode, Query: req.Value, Results: results, Snapshot: e.version}, nil
}

// byTitle serves title queries through the result cache when enabled.
// Callers get their own copy of the slice.
func (s *Service) byTitle(ctx context.Context, e *Engine, title string, k int) ([]Recommendation, error) {
	if s.results == nil {
		return e.RecommendByTitle(ctx, title, k)
	}
	key := resultKey{version: e.version, title: title, k: e.config.clampK(k)}
	if cached, ok := s.results.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return append([]Recommendation(nil), cached...), nil
	}
	metrics.RecordCacheLookup(false)

	results, err := e.RecommendByTitle(ctx, title, k)
	if err != nil {
		return nil, err
	}
	s.results.Add(key, append([]Recommendation(nil), results...))
	return results, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMovieNotFound):
		return "not_found"
	case errors.Is(err, ErrUnmappedMood):
		return "unmapped"
	default:
		return "internal_error"
	}
}
