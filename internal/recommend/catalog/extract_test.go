// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractDirector(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single director", `[{"job":"Director","name":"X"}]`, "X"},
		{"first director wins", `[{"job":"Producer","name":"P"},{"job":"Director","name":"A"},{"job":"Director","name":"B"}]`, "A"},
		{"no director", `[{"job":"Writer","name":"W"}]`, ""},
		{"not valid", "not valid", ""},
		{"single quotes", `[{'job': 'Director', 'name': 'X'}]`, ""},
		{"empty", "", ""},
		{"empty list", "[]", ""},
		{"missing job", `[{"name":"X"}]`, ""},
		{"null", "null", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDirector(tt.raw); got != tt.want {
				t.Errorf("ExtractDirector(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractTopCast(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "five entries keeps first three in order",
			raw:  `[{"name":"A","order":0},{"name":"B","order":1},{"name":"C","order":2},{"name":"D","order":3},{"name":"E","order":4}]`,
			want: []string{"A", "B", "C"},
		},
		{"two entries", `[{"name":"A"},{"name":"B"}]`, []string{"A", "B"}},
		{"malformed", `[{"name":"A"`, []string{}},
		{"wrong name type", `[{"name":7}]`, []string{}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopCast(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTopCast() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"genres", `[{"id": 28, "name": "Action"}, {"id": 12, "name": "Adventure"}]`, []string{"Action", "Adventure"}},
		{"object instead of list", `{"name":"Action"}`, []string{}},
		{"null entry", `[null]`, []string{}},
		{"trailing garbage", `[{"name":"A"}] x`, []string{}},
		{"missing name", `[{"id":1}]`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractNames(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractNames(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseNamesReturnsTypedError(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantIndex int
		wantErr   error
	}{
		{"syntax", "not valid", -1, nil},
		{"null", "null", -1, errNotList},
		{"null entry", `[{"name":"a"},null]`, 1, errNullEntry},
		{"missing name", `[{"name":"a"},{"id":2}]`, 1, errMissingName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNames(ColumnKeywords, tt.raw)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Column != ColumnKeywords {
				t.Errorf("Column = %q, want %q", perr.Column, ColumnKeywords)
			}
			if perr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", perr.Index, tt.wantIndex)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseCrewMissingJob(t *testing.T) {
	_, err := ParseCrew(`[{"name":"X","job":"Director"},{"name":"Y"}]`)
	if !errors.Is(err, errMissingJob) {
		t.Errorf("ParseCrew error = %v, want %v", err, errMissingJob)
	}
}

func TestExtractorCountsFailures(t *testing.T) {
	ex := NewExtractor(zerolog.New(io.Discard))

	_ = ex.Names(1, ColumnGenres, "garbage")
	_ = ex.Names(1, ColumnKeywords, `[{"name":"ok"}]`)
	_ = ex.TopCast(2, "{")
	_ = ex.Director(3, "[1]")
	_ = ex.Director(4, "")

	want := map[string]int{ColumnGenres: 1, ColumnCast: 1, ColumnCrew: 1}
	if got := ex.Failures(); !reflect.DeepEqual(got, want) {
		t.Errorf("Failures() = %v, want %v", got, want)
	}
}

func TestComposeTags(t *testing.T) {
	tests := []struct {
		name     string
		overview string
		genres   []string
		keywords []string
		cast     []string
		director string
		want     string
	}{
		{
			name:     "all parts",
			overview: "A marine on an alien planet.",
			genres:   []string{"Action", "Adventure"},
			keywords: []string{"space war"},
			cast:     []string{"Sam Worthington", "Zoe Saldana"},
			director: "James Cameron",
			want:     "A marine on an alien planet. Action Adventure space war Sam Worthington Zoe Saldana James Cameron",
		},
		{
			name: "all empty",
			want: "    ",
		},
		{
			name:     "missing director",
			overview: "x",
			genres:   []string{"Drama"},
			want:     "x Drama   ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeTags(tt.overview, tt.genres, tt.keywords, tt.cast, tt.director)
			if got != tt.want {
				t.Errorf("ComposeTags() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasAnyGenre(t *testing.T) {
	m := Movie{Genres: []string{"Horror", "Thriller"}}
	if !m.HasAnyGenre([]string{"Action", "Thriller"}) {
		t.Error("HasAnyGenre should match Thriller")
	}
	if m.HasAnyGenre([]string{"Comedy", "Romance", "Adventure"}) {
		t.Error("HasAnyGenre should not match happy genres")
	}
	if m.HasAnyGenre(nil) {
		t.Error("HasAnyGenre(nil) should be false")
	}
}
