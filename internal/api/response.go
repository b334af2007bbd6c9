// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Error codes carried in error responses.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnmappedMood       = "UNMAPPED_MOOD"
	ErrCodeInvalidMode        = "INVALID_MODE"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      string      `json:"code"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// MovieResult is one recommended movie as returned to clients.
type MovieResult struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   int      `json:"vote_count"`
	Score       float64  `json:"score,omitempty"`
}

// RecommendResponse wraps a result list.
type RecommendResponse struct {
	Mode     string        `json:"mode"`
	Query    string        `json:"query"`
	Snapshot uint64        `json:"snapshot"`
	Results  []MovieResult `json:"results"`
}

// CatalogResponse lists what clients can ask for.
type CatalogResponse struct {
	MovieTitles []string `json:"movie_titles"`
	Moods       []string `json:"moods"`
}

// SearchResponse lists titles matching an autocomplete query.
type SearchResponse struct {
	Query  string   `json:"query"`
	Titles []string `json:"titles"`
}

func toRecommendResponse(resp *recommend.Response) RecommendResponse {
	out := RecommendResponse{
		Mode:     resp.Mode,
		Query:    resp.Query,
		Snapshot: resp.Snapshot,
		Results:  make([]MovieResult, 0, len(resp.Results)),
	}
	for _, rec := range resp.Results {
		m := rec.Movie
		genres := m.Genres
		if genres == nil {
			genres = []string{}
		}
		out.Results = append(out.Results, MovieResult{
			ID:          m.ID,
			Title:       m.Title,
			Overview:    m.Overview,
			Genres:      genres,
			ReleaseDate: m.ReleaseDate,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
			Score:       rec.Score,
		})
	}
	return out
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondErrorDetails(w, r, status, code, message, nil)
}

func respondErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details interface{}) {
	respondJSON(w, r, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}
