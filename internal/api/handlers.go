// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Recommender is the part of recommend.Service the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Engine() (*recommend.Engine, error)
	Reload(ctx context.Context) error
	Status() recommend.Status
}

// Handler serves the HTTP endpoints.
type Handler struct {
	service        Recommender
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a Handler. A zero timeout disables the per-request
// deadline.
func NewHandler(service Recommender, requestTimeout time.Duration) *Handler {
	return &Handler{
		service:        service,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
	}
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

// Recommend handles POST /recommend with a JSON or form body.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeRecommendRequest(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if req.Mode != recommend.ModeMovie && req.Mode != recommend.ModeMood {
		respondServiceError(w, r, recommend.ErrInvalidMode)
		return
	}
	h.serve(w, r, req)
}

// RecommendByMovie handles GET /api/v1/recommend/movie?title=...&top_n=...
func (h *Handler) RecommendByMovie(w http.ResponseWriter, r *http.Request) {
	h.serveQuery(w, r, recommend.ModeMovie, "title")
}

// RecommendByMood handles GET /api/v1/recommend/mood?mood=...&top_n=...
func (h *Handler) RecommendByMood(w http.ResponseWriter, r *http.Request) {
	h.serveQuery(w, r, recommend.ModeMood, "mood")
}

func (h *Handler) serveQuery(w http.ResponseWriter, r *http.Request, mode, param string) {
	q := r.URL.Query()
	topN, err := parseTopN(q.Get("top_n"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	h.serve(w, r, &RecommendRequest{Mode: mode, Value: q.Get(param), TopN: topN})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, req *RecommendRequest) {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeValidation, apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	resp, err := h.service.Recommend(ctx, req.toService())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toRecommendResponse(resp))
}

// Catalog handles GET /api/v1/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	engine, err := h.service.Engine()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, CatalogResponse{
		MovieTitles: engine.Titles(),
		Moods:       engine.Moods(),
	})
}

// Title search limits.
const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SearchTitles handles GET /api/v1/catalog/search?q=dark&limit=10 for
// title autocomplete.
func (h *Handler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "q is required")
		return
	}
	limit, err := parseTopN(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "limit must be a non-negative integer")
		return
	}
	if limit == 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	engine, err := h.service.Engine()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, SearchResponse{
		Query:  q,
		Titles: engine.SearchTitles(q, limit),
	})
}

// Reload handles POST /api/v1/admin/reload. A failed rebuild answers 500
// but the previous snapshot keeps serving.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "reload canceled")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("manual reload failed")
		respondErrorDetails(w, r, http.StatusInternalServerError, ErrCodeInternalError, "reload failed", h.service.Status())
		return
	}
	respondJSON(w, r, http.StatusOK, h.service.Status())
}

// HealthLive handles GET /api/v1/health/live. It always answers 200 while
// the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "alive",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthReady handles GET /api/v1/health/ready: 200 once a snapshot is
// published, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.service.Status()
	status := http.StatusOK
	if !st.Ready {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, r, status, st)
}
