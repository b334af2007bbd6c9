// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend/catalog"
	"github.com/tomtom215/cinematch/internal/recommend/vectorspace"
)

// Recommendation is one result row. Score is the cosine similarity for
// title queries and zero for mood queries.
type Recommendation struct {
	Movie *catalog.Movie
	Score float64
}

// BuildStats describes how a snapshot was produced.
type BuildStats struct {
	Movies             int
	Vocabulary         int
	Load               catalog.LoadStats
	LoadDuration       time.Duration
	VectorizeDuration  time.Duration
	SimilarityDuration time.Duration
	TotalDuration      time.Duration
}

// Engine is an immutable recommendation snapshot. All query methods are
// safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	version uint64
	builtAt time.Time
	stats   BuildStats

	movies     []catalog.Movie
	titleIndex map[string]int
	titles     []string
	titleTrie  *cache.Trie
	moods      MoodMap
	space      *vectorspace.Space
	matrix     *vectorspace.Matrix

	// rng is only set when config.Seed is non-zero.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Build loads the catalog from src and builds an Engine over it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(ctx context.Context, src catalog.Source, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	start := time.Now()
	movies, loadStats, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	loadDur := time.Since(start)
	metrics.RecordBuildStage("load", loadDur)
	metrics.UpdateDroppedRows(loadStats.MoviesWithoutCredits, loadStats.CreditsWithoutMovie, loadStats.BadIDs)

	e, err := NewEngine(ctx, movies, cfg, logger)
	if err != nil {
		return nil, err
	}
	e.stats.Load = loadStats
	e.stats.LoadDuration = loadDur
	e.stats.TotalDuration = time.Since(start)
	metrics.RecordBuildStage("total", e.stats.TotalDuration)
	return e, nil
}

// NewEngine builds an Engine over an already loaded catalog. movies is
// retained and must not be modified afterwards.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(ctx context.Context, movies []catalog.Movie, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		builtAt: time.Now(),
		movies:  movies,
		moods:   cfg.Moods.Normalized(),
	}
	if cfg.Seed != 0 {
		e.rng = rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // sampling, not security
	}

	e.titleIndex = make(map[string]int, len(movies))
	e.titles = make([]string, 0, len(movies))
	e.titleTrie = cache.NewTrie()
	for i := range movies {
		t := movies[i].Title
		if _, dup := e.titleIndex[t]; dup {
			continue
		}
		e.titleIndex[t] = i
		e.titles = append(e.titles, t)
		e.titleTrie.Insert(t, i)
	}

	docs := make([]string, len(movies))
	for i := range movies {
		docs[i] = movies[i].Tags
	}

	start := time.Now()
	space, err := vectorspace.Fit(docs, vectorspace.Options{MaxFeatures: cfg.MaxFeatures})
	if err != nil {
		return nil, fmt.Errorf("fit vector space: %w", err)
	}
	e.stats.VectorizeDuration = time.Since(start)
	metrics.RecordBuildStage("vectorize", e.stats.VectorizeDuration)

	start = time.Now()
	matrix, err := vectorspace.Compute(ctx, space, cfg.Workers)
	if err != nil {
		return nil, err
	}
	e.stats.SimilarityDuration = time.Since(start)
	metrics.RecordBuildStage("similarity", e.stats.SimilarityDuration)

	e.space = space
	e.matrix = matrix
	e.stats.Movies = len(movies)
	e.stats.Vocabulary = space.VocabularySize()
	e.stats.TotalDuration = e.stats.VectorizeDuration + e.stats.SimilarityDuration

	e.logger.Info().
		Int("movies", e.stats.Movies).
		Int("vocabulary", e.stats.Vocabulary).
		Dur("vectorize", e.stats.VectorizeDuration).
		Dur("similarity", e.stats.SimilarityDuration).
		Msg("engine built")

	return e, nil
}

// RecommendByTitle returns the k movies most similar to the first movie
// titled exactly title. The movie itself is never included.
func (e *Engine) RecommendByTitle(_ context.Context, title string, k int) ([]Recommendation, error) {
	idx, ok := e.titleIndex[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMovieNotFound, title)
	}

	neighbors, err := e.matrix.TopK(idx, e.config.clampK(k))
	if err != nil {
		e.logger.Error().Err(err).Int("row", idx).Str("title", title).Msg("similarity index inconsistent with catalog")
		return nil, fmt.Errorf("top-k for %q: %w", title, err)
	}

	out := make([]Recommendation, len(neighbors))
	for i, nb := range neighbors {
		out[i] = Recommendation{Movie: &e.movies[nb.Index], Score: nb.Score}
	}
	return out, nil
}

// RecommendByMood returns up to k random movies matching mood. An empty
// result is not an error.
func (e *Engine) RecommendByMood(ctx context.Context, mood string, k int) ([]Recommendation, error) {
	if e.rng != nil {
		e.rngMu.Lock()
		defer e.rngMu.Unlock()
		return e.RecommendByMoodWith(ctx, mood, k, e.rng)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // sampling, not security
	return e.RecommendByMoodWith(ctx, mood, k, rng)
}

// RecommendByMoodWith is RecommendByMood with an explicit random source.
// rng must not be shared with concurrent callers.
func (e *Engine) RecommendByMoodWith(_ context.Context, mood string, k int, rng *rand.Rand) ([]Recommendation, error) {
	rows, err := FilterByMood(e.movies, e.moods, mood, e.config.clampK(k), rng)
	if err != nil {
		return nil, err
	}
	out := make([]Recommendation, len(rows))
	for i, r := range rows {
		out[i] = Recommendation{Movie: &e.movies[r]}
	}
	return out, nil
}

// Titles returns the distinct titles in catalog order.
func (e *Engine) Titles() []string {
	out := make([]string, len(e.titles))
	copy(out, e.titles)
	return out
}

// SearchTitles returns up to limit distinct titles matching prefix at the
// start of the title or of any word in it, case-insensitively.
func (e *Engine) SearchTitles(prefix string, limit int) []string {
	matches := e.titleTrie.Prefix(prefix, limit)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

// Moods returns the supported mood labels, sorted.
func (e *Engine) Moods() []string {
	return e.moods.Names()
}

// Len returns the number of movies.
func (e *Engine) Len() int { return len(e.movies) }

// Movie returns the movie at row i.
func (e *Engine) Movie(i int) (*catalog.Movie, error) {
	if i < 0 || i >= len(e.movies) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return &e.movies[i], nil
}

// Similarity returns the cosine similarity between rows i and j.
func (e *Engine) Similarity(i, j int) (float64, error) {
	return e.matrix.At(i, j)
}

// Stats returns build statistics.
func (e *Engine) Stats() BuildStats { return e.stats }

// Version returns the snapshot version assigned by Service, or 0.
func (e *Engine) Version() uint64 { return e.version }

// BuiltAt returns when the snapshot was built.
func (e *Engine) BuiltAt() time.Time { return e.builtAt }
