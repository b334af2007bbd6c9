// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	snapshotKey  contextKey = "snapshot"
)

// GenerateRequestID returns a new UUID string.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a context carrying the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithSnapshot records which engine snapshot served a request so
// log lines emitted during the query can be correlated with rebuilds.
func ContextWithSnapshot(ctx context.Context, version uint64) context.Context {
	return context.WithValue(ctx, snapshotKey, version)
}

// SnapshotFromContext returns the snapshot version, or 0 when absent.
func SnapshotFromContext(ctx context.Context) uint64 {
	if v, ok := ctx.Value(snapshotKey).(uint64); ok {
		return v
	}
	return 0
}

// Ctx returns the global logger enriched with request_id and snapshot
// fields found in ctx.
//
//	logging.Ctx(ctx).Info().Msg("recommendation served")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// CtxWith returns a logger context pre-populated from ctx.
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := Logger().With()
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if v := SnapshotFromContext(ctx); v != 0 {
		logCtx = logCtx.Uint64("snapshot", v)
	}
	return logCtx
}
