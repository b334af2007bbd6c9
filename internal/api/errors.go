// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// statusFor maps a service error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrMovieNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, recommend.ErrUnmappedMood):
		return http.StatusBadRequest, ErrCodeUnmappedMood
	case errors.Is(err, recommend.ErrInvalidMode):
		return http.StatusBadRequest, ErrCodeInvalidMode
	case errors.Is(err, recommend.ErrNotReady):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// respondServiceError writes err using statusFor. Internal errors are
// logged and replaced by a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	switch {
	case errors.Is(err, recommend.ErrInvalidMode):
		msg = "Please select a recommendation mode."
	case status == http.StatusInternalServerError:
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation request failed")
		msg = "internal error"
	}
	respondError(w, r, status, code, msg)
}
