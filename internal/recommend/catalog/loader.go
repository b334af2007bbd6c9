// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Required and optional column names of the two input tables.
const (
	colID          = "id"
	colTitle       = "title"
	colOverview    = "overview"
	colGenres      = "genres"
	colKeywords    = "keywords"
	colReleaseDate = "release_date"
	colVoteAverage = "vote_average"
	colVoteCount   = "vote_count"

	colMovieID = "movie_id"
	colCast    = "cast"
	colCrew    = "crew"
)

var (
	moviesRequired  = []string{colID, colTitle, colOverview, colGenres, colKeywords}
	moviesOptional  = []string{colReleaseDate, colVoteAverage, colVoteCount}
	creditsRequired = []string{colMovieID, colCast, colCrew}
)

// ErrMissingColumn is returned when a table lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ctxCheckEvery is how many rows are read between cancellation checks.
const ctxCheckEvery = 500

// LoadStats describes what the join kept and dropped.
type LoadStats struct {
	MovieRows            int
	CreditRows           int
	Joined               int
	MoviesWithoutCredits int
	CreditsWithoutMovie  int
	DuplicateCredits     int
	BadIDs               int
	ParseFailures        map[string]int
}

// Source produces the joined catalog. Implementations must return a fresh
// slice on every call.
type Source interface {
	Load(ctx context.Context) ([]Movie, LoadStats, error)
}

// FileSource reads the movies and credits CSV files from disk.
type FileSource struct {
	MoviesPath  string
	CreditsPath string
	Logger      zerolog.Logger
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]Movie, LoadStats, error) {
	movies, err := os.Open(s.MoviesPath)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open movies table: %w", err)
	}
	defer movies.Close()

	credits, err := os.Open(s.CreditsPath)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open credits table: %w", err)
	}
	defer credits.Close()

	return Read(ctx, movies, credits, s.Logger)
}

// creditRow holds the raw serialized fields until the movie side is read.
type creditRow struct {
	cast string
	crew string
	used bool
}

// Read joins the two tables. Output order is movies-table order; rows
// without a counterpart are dropped and counted in LoadStats.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Read(ctx context.Context, movies, credits io.Reader, logger zerolog.Logger) ([]Movie, LoadStats, error) {
	var stats LoadStats

	creditsByID, err := readCredits(ctx, credits, &stats)
	if err != nil {
		return nil, stats, err
	}

	ex := NewExtractor(logger)
	out, err := readMovies(ctx, movies, creditsByID, ex, &stats)
	if err != nil {
		return nil, stats, err
	}

	for _, c := range creditsByID {
		if !c.used {
			stats.CreditsWithoutMovie++
		}
	}
	stats.Joined = len(out)
	stats.ParseFailures = ex.Failures()

	logger.Info().
		Int("movie_rows", stats.MovieRows).
		Int("credit_rows", stats.CreditRows).
		Int("joined", stats.Joined).
		Int("movies_without_credits", stats.MoviesWithoutCredits).
		Int("credits_without_movie", stats.CreditsWithoutMovie).
		Int("bad_ids", stats.BadIDs).
		Msg("catalog loaded")

	return out, stats, nil
}

func readCredits(ctx context.Context, r io.Reader, stats *LoadStats) (map[int]*creditRow, error) {
	t, err := newTable(r, "credits", creditsRequired, nil)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*creditRow)
	for {
		rec, err := t.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		stats.CreditRows++

		id, ok := parseID(t.get(rec, colMovieID))
		if !ok {
			stats.BadIDs++
			continue
		}
		if _, dup := byID[id]; dup {
			stats.DuplicateCredits++
			continue
		}
		byID[id] = &creditRow{cast: t.get(rec, colCast), crew: t.get(rec, colCrew)}
	}
	return byID, nil
}

func readMovies(ctx context.Context, r io.Reader, credits map[int]*creditRow, ex *Extractor, stats *LoadStats) ([]Movie, error) {
	t, err := newTable(r, "movies", moviesRequired, moviesOptional)
	if err != nil {
		return nil, err
	}

	var out []Movie
	for {
		rec, err := t.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		stats.MovieRows++

		id, ok := parseID(t.get(rec, colID))
		if !ok {
			stats.BadIDs++
			continue
		}
		c, ok := credits[id]
		if !ok {
			stats.MoviesWithoutCredits++
			continue
		}
		c.used = true

		m := Movie{
			ID:          id,
			Title:       t.get(rec, colTitle),
			Overview:    t.get(rec, colOverview),
			Genres:      ex.Names(id, ColumnGenres, t.get(rec, colGenres)),
			Keywords:    ex.Names(id, ColumnKeywords, t.get(rec, colKeywords)),
			Cast:        ex.TopCast(id, c.cast),
			Director:    ex.Director(id, c.crew),
			ReleaseDate: t.get(rec, colReleaseDate),
			VoteAverage: parseFloat(t.get(rec, colVoteAverage)),
			VoteCount:   parseInt(t.get(rec, colVoteCount)),
		}
		m.Tags = ComposeTags(m.Overview, m.Genres, m.Keywords, m.Cast, m.Director)
		out = append(out, m)
	}
	return out, nil
}

// table is a header-indexed CSV reader.
type table struct {
	name string
	r    *csv.Reader
	cols map[string]int
	line int
}

func newTable(r io.Reader, name string, required, optional []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%s table: %w %q", name, ErrMissingColumn, c)
		}
	}
	// Optional columns resolve to "" when absent.
	for _, c := range optional {
		if _, ok := cols[c]; !ok {
			cols[c] = -1
		}
	}
	return &table{name: name, r: cr, cols: cols}, nil
}

func (t *table) next(ctx context.Context) ([]string, error) {
	t.line++
	if t.line%ctxCheckEvery == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	rec, err := t.r.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read %s table: %w", t.name, err)
	}
	return rec, nil
}

// get returns the named field, or "" when the column is absent or the row
// is short.
func (t *table) get(rec []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Some exports write counts as floats ("1234.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
