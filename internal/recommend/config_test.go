// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.MaxFeatures != 5000 {
		t.Errorf("MaxFeatures = %d, want 5000", cfg.MaxFeatures)
	}
	if cfg.DefaultK != 5 {
		t.Errorf("DefaultK = %d, want 5", cfg.DefaultK)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max features", func(c *Config) { c.MaxFeatures = 0 }},
		{"zero default k", func(c *Config) { c.DefaultK = 0 }},
		{"max k below default", func(c *Config) { c.MaxK = 1 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"no moods", func(c *Config) { c.Moods = nil }},
		{"blank mood", func(c *Config) { c.Moods = MoodMap{" ": {"Drama"}} }},
		{"mood without genres", func(c *Config) { c.Moods = MoodMap{"meh": nil} }},
		{"negative cache size", func(c *Config) { c.ResultCacheSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Moods["happy"][0] = "Horror"
	clone.MaxK = 1

	if cfg.Moods["happy"][0] != "Comedy" {
		t.Error("Clone() shares mood slices")
	}
	if cfg.MaxK != 50 {
		t.Error("Clone() shares scalar fields")
	}
}
