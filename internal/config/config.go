// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DataConfig locates the two CSV tables.
type DataConfig struct {
	MoviesPath  string `koanf:"movies_path" validate:"notblank"`
	CreditsPath string `koanf:"credits_path" validate:"notblank"`
}

// RecommendConfig tunes the engine. Moods left empty fall back to the
// built-in mood map.
type RecommendConfig struct {
	MaxFeatures    int                 `koanf:"max_features" validate:"min=1,max=1000000"`
	DefaultK       int                 `koanf:"default_k" validate:"min=1,ltefield=MaxK"`
	MaxK           int                 `koanf:"max_k" validate:"min=1,max=1000"`
	Seed           int64               `koanf:"seed"`
	Workers        int                 `koanf:"workers" validate:"min=0,max=1024"`
	Moods          map[string][]string `koanf:"moods" validate:"omitempty,dive,keys,notblank,endkeys,min=1,dive,notblank"`
	CacheSize      int                 `koanf:"cache_size" validate:"min=0"`
	ReloadInterval time.Duration       `koanf:"reload_interval" validate:"min=0"`
	WatchFiles     bool                `koanf:"watch_files"`
}

// Engine converts the section into the engine's own config type.
func (r RecommendConfig) Engine() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.MaxFeatures = r.MaxFeatures
	cfg.DefaultK = r.DefaultK
	cfg.MaxK = r.MaxK
	cfg.Seed = r.Seed
	cfg.Workers = r.Workers
	cfg.ResultCacheSize = r.CacheSize
	if len(r.Moods) > 0 {
		cfg.Moods = recommend.MoodMap(r.Moods).Normalized()
	}
	return cfg
}

// SecurityConfig covers CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Logger converts the section into a logging.Config.
func (l LoggingConfig) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	if l.Format != "" {
		cfg.Format = l.Format
	}
	cfg.Caller = l.Caller
	return cfg
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks field constraints and the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateCORS()
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateCORS rejects a wildcard mixed with explicit origins, which
// go-chi/cors would otherwise silently treat as allow-all.
func (c *Config) validateCORS() error {
	if len(c.Security.CORSOrigins) > 1 && c.HasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS: '*' cannot be combined with explicit origins")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
