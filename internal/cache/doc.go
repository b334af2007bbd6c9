// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides the in-memory structures used on the query path:
// a generic LRU with optional TTL for recommendation results, and a prefix
// trie for title autocomplete.
package cache
