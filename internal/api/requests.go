// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// maxBodyBytes caps POST bodies; a query is a few short strings.
const maxBodyBytes = 64 << 10

// RecommendRequest is the POST /recommend body. MovieName and Mood are the
// legacy per-mode fields; Value takes precedence when set. top_n is bounded
// here and clamped further by the engine's MaxK.
type RecommendRequest struct {
	Mode      string `json:"mode" validate:"required,oneof=movie mood"`
	Value     string `json:"value" validate:"notblank"`
	TopN      int    `json:"top_n" validate:"min=0,max=1000"`
	MovieName string `json:"movie_name,omitempty" validate:"-"`
	Mood      string `json:"mood,omitempty" validate:"-"`
}

// normalize lowercases the mode and folds the legacy fields into Value.
func (req *RecommendRequest) normalize() {
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if strings.TrimSpace(req.Value) != "" {
		return
	}
	switch req.Mode {
	case recommend.ModeMovie:
		req.Value = req.MovieName
	case recommend.ModeMood:
		req.Value = req.Mood
	}
}

func (req *RecommendRequest) toService() recommend.Request {
	return recommend.Request{Mode: req.Mode, Value: req.Value, TopN: req.TopN}
}

var errBadTopN = errors.New("top_n must be an integer")

// decodeRecommendRequest reads either a JSON body or an HTML form.
func decodeRecommendRequest(r *http.Request) (*RecommendRequest, error) {
	req := &RecommendRequest{}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		req.Mode = r.PostForm.Get("mode")
		req.Value = r.PostForm.Get("value")
		req.MovieName = r.PostForm.Get("movie_title")
		req.Mood = r.PostForm.Get("mood")
		n, err := parseTopN(r.PostForm.Get("top_n"))
		if err != nil {
			return nil, err
		}
		req.TopN = n
	default:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, req); err != nil {
				return nil, fmt.Errorf("invalid JSON body: %w", err)
			}
		}
	}

	req.normalize()
	return req, nil
}

// parseTopN accepts an empty string as "use the default".
func parseTopN(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadTopN
	}
	return n, nil
}
