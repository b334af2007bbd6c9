// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/recommend/catalog"
)

func movie(id int, title, overview string, genres, keywords []string) catalog.Movie {
	m := catalog.Movie{ID: id, Title: title, Overview: overview, Genres: genres, Keywords: keywords}
	m.Tags = catalog.ComposeTags(m.Overview, m.Genres, m.Keywords, m.Cast, m.Director)
	return m
}

// testCatalog has a clear nearest neighbour for every action movie, one
// movie with an empty signature, a Horror-only title and a duplicate title.
func testCatalog() []catalog.Movie {
	return []catalog.Movie{
		movie(1, "Star Raid", "marines fight aliens", []string{"Action", "Adventure"}, []string{"alien", "spaceship"}),
		movie(2, "Star Raid II", "marines fight aliens again", []string{"Action", "Adventure"}, []string{"alien", "spaceship"}),
		movie(3, "Paris Letters", "a love story", []string{"Romance", "Drama"}, []string{"paris", "letter"}),
		movie(4, "Night Crawl", "something lurks", []string{"Horror"}, []string{"haunted", "basement"}),
		movie(5, "Holiday Dog", "a dog saves christmas", []string{"Comedy", "Family"}, []string{"dog", "holiday"}),
		movie(6, "Untitled", "", nil, nil),
		movie(7, "Star Raid", "remake nobody asked for", []string{"Action"}, []string{"remake"}),
		movie(8, "Bank Job", "heist goes wrong", []string{"Action", "Thriller"}, []string{"heist", "bank"}),
		movie(9, "Laugh Track", "sitcom writers", []string{"Comedy"}, []string{"television"}),
	}
}

func newTestEngine(t *testing.T, movies []catalog.Movie, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 2
	if mutate != nil {
		mutate(cfg)
	}
	e, err := NewEngine(context.Background(), movies, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// fakeSource serves a fixed catalog and can be switched to fail.
type fakeSource struct {
	mu     sync.Mutex
	movies []catalog.Movie
	err    error
	loads  int
}

func (f *fakeSource) Load(context.Context) ([]catalog.Movie, catalog.LoadStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, catalog.LoadStats{}, f.err
	}
	out := make([]catalog.Movie, len(f.movies))
	copy(out, f.movies)
	return out, catalog.LoadStats{MovieRows: len(out), CreditRows: len(out), Joined: len(out)}, nil
}

func (f *fakeSource) set(movies []catalog.Movie, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies, f.err = movies, err
}
