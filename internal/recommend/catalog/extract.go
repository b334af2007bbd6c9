// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// MaxCast is the number of top-billed cast members kept per movie.
const MaxCast = 3

// DirectorJob is the crew job that identifies the director.
const DirectorJob = "Director"

// Column names of the serialized list fields, used as ParseError.Column
// and as the metrics label.
const (
	ColumnGenres   = "genres"
	ColumnKeywords = "keywords"
	ColumnCast     = "cast"
	ColumnCrew     = "crew"
)

var (
	errNotList     = errors.New("value is not a list")
	errNullEntry   = errors.New("list entry is null")
	errMissingName = errors.New(`entry has no "name"`)
	errMissingJob  = errors.New(`crew entry has no "job"`)
)

// ParseError reports a serialized list field that does not match the
// expected shape: a JSON list of objects carrying a string "name" (and a
// string "job" for crew).
type ParseError struct {
	Column string
	Index  int // offending entry, -1 when the whole value is malformed
	Err    error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("parse %s[%d]: %v", e.Column, e.Index, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// listEntry is the schema of a genres/keywords/cast element. Unknown keys
// (id, cast_id, character, ...) are ignored.
type listEntry struct {
	Name *string `json:"name"`
	Job  *string `json:"job"`
}

// CrewMember is one validated crew entry.
type CrewMember struct {
	Name string
	Job  string
}

func decodeEntries(column, raw string) ([]*listEntry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var entries *[]*listEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &ParseError{Column: column, Index: -1, Err: err}
	}
	if entries == nil {
		return nil, &ParseError{Column: column, Index: -1, Err: errNotList}
	}
	for i, e := range *entries {
		if e == nil {
			return nil, &ParseError{Column: column, Index: i, Err: errNullEntry}
		}
		if e.Name == nil {
			return nil, &ParseError{Column: column, Index: i, Err: errMissingName}
		}
	}
	return *entries, nil
}

// ParseNames decodes a list-of-objects field and returns the names in
// order. An empty field is an empty list; any shape mismatch is a
// *ParseError.
func ParseNames(column, raw string) ([]string, error) {
	entries, err := decodeEntries(column, raw)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = *e.Name
	}
	return names, nil
}

// ParseCrew decodes the crew field. Every entry must carry name and job.
func ParseCrew(raw string) ([]CrewMember, error) {
	entries, err := decodeEntries(ColumnCrew, raw)
	if err != nil {
		return nil, err
	}
	crew := make([]CrewMember, len(entries))
	for i, e := range entries {
		if e.Job == nil {
			return nil, &ParseError{Column: ColumnCrew, Index: i, Err: errMissingJob}
		}
		crew[i] = CrewMember{Name: *e.Name, Job: *e.Job}
	}
	return crew, nil
}

// ExtractNames returns every name in the field, or an empty list when the
// field is malformed.
func ExtractNames(raw string) []string {
	names, err := ParseNames(ColumnGenres, raw)
	if err != nil || names == nil {
		return []string{}
	}
	return names
}

// ExtractTopCast returns the first MaxCast names in billing order, or an
// empty list when the field is malformed.
func ExtractTopCast(raw string) []string {
	names, err := ParseNames(ColumnCast, raw)
	if err != nil {
		return []string{}
	}
	return topCast(names)
}

// ExtractDirector returns the name of the first crew entry whose job is
// Director, or "" when there is none or the field is malformed.
func ExtractDirector(raw string) string {
	crew, err := ParseCrew(raw)
	if err != nil {
		return ""
	}
	return director(crew)
}

func topCast(names []string) []string {
	if len(names) > MaxCast {
		names = names[:MaxCast]
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func director(crew []CrewMember) string {
	for _, c := range crew {
		if c.Job == DirectorJob {
			return c.Name
		}
	}
	return ""
}

// Extractor applies the fail-soft extraction rules while keeping count of
// the fields it had to replace with defaults.
type Extractor struct {
	logger zerolog.Logger

	mu       sync.Mutex
	failures map[string]int
}

// NewExtractor creates an Extractor that logs parse failures at debug level.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger, failures: make(map[string]int)}
}

// Names extracts a genres or keywords column.
func (e *Extractor) Names(movieID int, column, raw string) []string {
	names, err := ParseNames(column, raw)
	if err != nil {
		e.record(movieID, err)
		return []string{}
	}
	if names == nil {
		return []string{}
	}
	return names
}

// TopCast extracts the billed cast.
func (e *Extractor) TopCast(movieID int, raw string) []string {
	names, err := ParseNames(ColumnCast, raw)
	if err != nil {
		e.record(movieID, err)
		return []string{}
	}
	return topCast(names)
}

// Director extracts the director from the crew column.
func (e *Extractor) Director(movieID int, raw string) string {
	crew, err := ParseCrew(raw)
	if err != nil {
		e.record(movieID, err)
		return ""
	}
	return director(crew)
}

// Failures returns a copy of the per-column failure counts.
func (e *Extractor) Failures() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]int, len(e.failures))
	for k, v := range e.failures {
		out[k] = v
	}
	return out
}

func (e *Extractor) record(movieID int, err error) {
	column := "unknown"
	var perr *ParseError
	if errors.As(err, &perr) {
		column = perr.Column
	}

	e.mu.Lock()
	e.failures[column]++
	e.mu.Unlock()

	metrics.RecordParseFailure(column)
	e.logger.Debug().Err(err).Int("movie_id", movieID).Str("column", column).Msg("malformed metadata replaced with empty value")
}
