// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog turns the raw movies and credits tables into Movie
// records with a composed tag signature.
//
// Loading is a strict inner join on movies.id == credits.movie_id that keeps
// the movies-table order. Serialized list columns (genres, keywords, cast,
// crew) are decoded as JSON against a fixed schema; a malformed field
// degrades to its empty value and is counted, it never fails the load.
package catalog

// Movie is one joined, fully populated catalog entry. Every field has a
// defined zero value, so callers never need presence checks.
type Movie struct {
	ID          int
	Title       string
	Overview    string
	Genres      []string
	Keywords    []string
	Cast        []string // top-billed, at most MaxCast
	Director    string
	ReleaseDate string
	VoteAverage float64
	VoteCount   int

	// Tags is the composed signature fed to the vectorizer.
	Tags string
}

// HasAnyGenre reports whether the movie carries at least one of genres.
// Matching is exact, as genre names come from a controlled vocabulary.
func (m *Movie) HasAnyGenre(genres []string) bool {
	for _, g := range m.Genres {
		for _, want := range genres {
			if g == want {
				return true
			}
		}
	}
	return false
}
