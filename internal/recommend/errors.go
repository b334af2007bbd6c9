// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"

	"github.com/tomtom215/cinematch/internal/recommend/vectorspace"
)

var (
	// ErrMovieNotFound is returned when no catalog title matches exactly.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrUnmappedMood is returned when a mood has no MoodMap entry.
	ErrUnmappedMood = errors.New("unrecognized mood")

	// ErrInvalidMode is returned for a query mode other than movie or mood.
	ErrInvalidMode = errors.New("invalid recommendation mode")

	// ErrNotReady is returned by Service before the first snapshot is built.
	ErrNotReady = errors.New("recommendation engine not ready")

	// ErrIndexOutOfRange signals an internal inconsistency between the
	// catalog and the similarity matrix.
	ErrIndexOutOfRange = vectorspace.ErrIndexOutOfRange
)
