// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config loads Cinematch configuration with koanf.

Sources are layered, later ones overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, or config.yaml / /etc/cinematch/config.yaml
 3. Environment variables

# Environment Variables

Data:
  - MOVIES_CSV: movies table (default: data/tmdb_5000_movies.csv)
  - CREDITS_CSV: credits table (default: data/tmdb_5000_credits.csv)

HTTP server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:5000)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Recommendation engine:
  - RECOMMEND_MAX_FEATURES: vocabulary cap (default: 5000)
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K
  - RECOMMEND_SEED: non-zero makes mood sampling reproducible
  - RECOMMEND_WORKERS: similarity build parallelism (0 = GOMAXPROCS)
  - RECOMMEND_CACHE_SIZE: title query result cache entries (0 disables)
  - RELOAD_INTERVAL: periodic snapshot rebuild (0 disables)
  - RELOAD_ON_CHANGE: rebuild when either CSV changes on disk

Security:
  - CORS_ORIGINS: comma separated
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

The mood map can only be overridden from the YAML file (recommend.moods).
*/
package config
