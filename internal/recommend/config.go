// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cinematch/internal/recommend/vectorspace"
)

// Config contains all configuration for building and querying an Engine.
type Config struct {
	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int `json:"max_features"`

	// DefaultK is used when a query asks for k <= 0.
	DefaultK int `json:"default_k"`

	// MaxK caps any requested k.
	MaxK int `json:"max_k"`

	// Workers is the similarity build parallelism. Zero means GOMAXPROCS.
	Workers int `json:"workers"`

	// Seed makes mood sampling reproducible. Zero draws a fresh seed per query.
	Seed int64 `json:"seed"`

	// Moods maps a lowercase mood to the genres it selects.
	Moods MoodMap `json:"moods"`

	// ResultCacheSize bounds the title-query result cache. Zero disables it.
	ResultCacheSize int `json:"result_cache_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxFeatures: vectorspace.DefaultMaxFeatures,
		DefaultK:    5,
		MaxK:        50,
		Workers:     0,
		Seed:        0,
		Moods:       DefaultMoodMap(),

		ResultCacheSize: 1024,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxFeatures <= 0 {
		return fmt.Errorf("max_features must be positive, got %d", c.MaxFeatures)
	}
	if c.DefaultK <= 0 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k must be >= default_k, got %d < %d", c.MaxK, c.DefaultK)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.ResultCacheSize < 0 {
		return fmt.Errorf("result_cache_size must be non-negative, got %d", c.ResultCacheSize)
	}
	if len(c.Moods) == 0 {
		return fmt.Errorf("moods must not be empty")
	}
	for mood, genres := range c.Moods {
		if strings.TrimSpace(mood) == "" {
			return fmt.Errorf("moods contains an empty mood name")
		}
		if len(genres) == 0 {
			return fmt.Errorf("mood %q maps to no genres", mood)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Moods = c.Moods.Clone()
	return &clone
}

// clampK applies the default and the cap.
func (c *Config) clampK(k int) int {
	if k <= 0 {
		k = c.DefaultK
	}
	if k > c.MaxK {
		k = c.MaxK
	}
	return k
}
