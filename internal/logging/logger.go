// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging holds the process-wide zerolog logger.
//
// main calls Init once with the loaded configuration. Until then a JSON
// logger at info level writes to stderr, so early startup errors are still
// structured:
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Int("movies", n).Msg("catalog loaded")
//
// Request handlers log through Ctx so every line carries the request ID and
// the snapshot version that served it:
//
//	logging.Ctx(ctx).Warn().Str("title", title).Msg("movie not found")
//
// An event is only written once Msg or Send is called on it.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every event as the service field.
const ServiceName = "cinematch"

// Config selects level, format and destination.
type Config struct {
	// Level is one of trace, debug, info, warn, error, fatal, disabled.
	// Unknown values fall back to info.
	Level string

	// Format is json (default) or console.
	Format string

	Caller    bool
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig is what the process logs with before Init.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Timestamp: true, Output: os.Stderr}
}

var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // the logger must be usable before config is loaded
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.MessageFieldName = "message"
	Init(DefaultConfig())
}

// Init builds a logger from cfg and makes it the global one. It may be
// called again, for example by tests capturing output.
func Init(cfg Config) {
	l := New(cfg)
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	global.Store(&l)
}

// New builds a logger from cfg without touching the global one or the
// global level.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Str("service", ServiceName)
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// parseLevel accepts zerolog level names plus "warning"; anything else
// (including empty) means info.
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	if s == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger returns the current global logger.
func Logger() zerolog.Logger {
	return *global.Load()
}

// WithComponent returns the global logger with a component field, the
// usual way a package obtains its logger:
//
//	logger := logging.WithComponent("catalog")
func WithComponent(component string) zerolog.Logger {
	return global.Load().With().Str("component", component).Logger()
}

func Debug() *zerolog.Event { return global.Load().Debug() }
func Info() *zerolog.Event  { return global.Load().Info() }
func Warn() *zerolog.Event  { return global.Load().Warn() }
func Error() *zerolog.Event { return global.Load().Error() }

// Fatal exits the process with status 1 once the event is sent.
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// NewTestLogger returns a JSON logger writing to w, for asserting on log
// output in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
