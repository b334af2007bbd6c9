// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const moviesCSV = `budget,genres,id,keywords,overview,title,release_date,vote_average,vote_count
237000000,"[{""id"": 28, ""name"": ""Action""}, {""id"": 878, ""name"": ""Science Fiction""}]",19995,"[{""id"": 1463, ""name"": ""culture clash""}]","In the 22nd century, a paraplegic Marine is dispatched to the moon Pandora.",Avatar,2009-12-10,7.2,11800
0,"[{""id"": 35, ""name"": ""Comedy""}]",1,[],,No Credits,,,
10,broken,2,"[{""id"": 9, ""name"": ""heist""}]","A crew pulls one last job.",Heist,2001-01-01,6.5,120.0
5,[],abc,[],,Bad Id,,,
`

const creditsCSV = `movie_id,title,cast,crew
19995,Avatar,"[{""cast_id"": 242, ""character"": ""Jake Sully"", ""name"": ""Sam Worthington"", ""order"": 0}, {""name"": ""Zoe Saldana""}, {""name"": ""Sigourney Weaver""}, {""name"": ""Stephen Lang""}]","[{""job"": ""Editor"", ""name"": ""Stephen E. Rivkin""}, {""job"": ""Director"", ""name"": ""James Cameron""}]"
2,Heist,not a list,"[{""job"": ""Director"", ""name"": ""D""}]"
2,Heist,[],[]
777,Orphan,[],[]
`

func TestReadJoinsTables(t *testing.T) {
	movies, stats, err := Read(context.Background(), strings.NewReader(moviesCSV), strings.NewReader(creditsCSV), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(movies) != 2 {
		t.Fatalf("len(movies) = %d, want 2", len(movies))
	}

	avatar := movies[0]
	if avatar.ID != 19995 || avatar.Title != "Avatar" {
		t.Errorf("movies[0] = %d %q, want 19995 Avatar", avatar.ID, avatar.Title)
	}
	if want := []string{"Action", "Science Fiction"}; !reflect.DeepEqual(avatar.Genres, want) {
		t.Errorf("Genres = %v, want %v", avatar.Genres, want)
	}
	if want := []string{"Sam Worthington", "Zoe Saldana", "Sigourney Weaver"}; !reflect.DeepEqual(avatar.Cast, want) {
		t.Errorf("Cast = %v, want %v", avatar.Cast, want)
	}
	if avatar.Director != "James Cameron" {
		t.Errorf("Director = %q, want James Cameron", avatar.Director)
	}
	if avatar.VoteAverage != 7.2 || avatar.VoteCount != 11800 || avatar.ReleaseDate != "2009-12-10" {
		t.Errorf("vote/release = %v %v %q", avatar.VoteAverage, avatar.VoteCount, avatar.ReleaseDate)
	}
	if !strings.HasSuffix(avatar.Tags, "Sam Worthington Zoe Saldana Sigourney Weaver James Cameron") {
		t.Errorf("Tags = %q", avatar.Tags)
	}

	heist := movies[1]
	if len(heist.Genres) != 0 || len(heist.Cast) != 0 {
		t.Errorf("malformed fields should be empty, got genres=%v cast=%v", heist.Genres, heist.Cast)
	}
	if heist.Director != "D" {
		t.Errorf("Director = %q, want D (first credits row wins)", heist.Director)
	}
	if heist.VoteCount != 120 {
		t.Errorf("VoteCount = %d, want 120", heist.VoteCount)
	}

	want := LoadStats{
		MovieRows:            4,
		CreditRows:           4,
		Joined:               2,
		MoviesWithoutCredits: 1,
		CreditsWithoutMovie:  1,
		DuplicateCredits:     1,
		BadIDs:               1,
		ParseFailures:        map[string]int{ColumnGenres: 1, ColumnCast: 1},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestReadMissingColumn(t *testing.T) {
	tests := []struct {
		name    string
		movies  string
		credits string
	}{
		{"movies without keywords", "id,title,overview,genres\n1,a,,[]\n", creditsCSV},
		{"credits without crew", moviesCSV, "movie_id,cast\n1,[]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Read(context.Background(), strings.NewReader(tt.movies), strings.NewReader(tt.credits), zerolog.New(io.Discard))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("Read() error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestReadEmptyInput(t *testing.T) {
	_, _, err := Read(context.Background(), strings.NewReader(""), strings.NewReader(creditsCSV), zerolog.New(io.Discard))
	if err == nil {
		t.Error("Read() with empty movies table should fail")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	moviesPath := filepath.Join(dir, "movies.csv")
	creditsPath := filepath.Join(dir, "credits.csv")
	if err := os.WriteFile(moviesPath, []byte(moviesCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(creditsPath, []byte(creditsCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	src := &FileSource{MoviesPath: moviesPath, CreditsPath: creditsPath, Logger: zerolog.New(io.Discard)}
	movies, _, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("len(movies) = %d, want 2", len(movies))
	}

	src.CreditsPath = filepath.Join(dir, "missing.csv")
	if _, _, err := src.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
