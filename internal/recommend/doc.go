// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend answers "more like this title" and "something for my
// mood" queries over an immutable engine snapshot.
//
// # Architecture
//
// An Engine is built once from a catalog.Source:
//
//	movies (catalog) -> TF-IDF space (vectorspace) -> N×N cosine matrix
//
// and is never mutated afterwards, so any number of goroutines may query it
// without locking. Service owns the current Engine behind an atomic pointer;
// Reload builds a complete new Engine and swaps it in, leaving in-flight
// queries on the snapshot they started with.
//
// # Queries
//
//   - RecommendByTitle: exact title match (first match in catalog order),
//     then the k nearest rows of the similarity matrix.
//   - RecommendByMood: case-insensitive mood lookup in the MoodMap, then a
//     random sample of k movies sharing at least one mapped genre.
//
// k defaults to Config.DefaultK and is capped at Config.MaxK.
//
// Engine.SearchTitles serves autocomplete from a title trie built with the
// snapshot. Service keeps title-query results in an LRU keyed by snapshot
// version; mood results are random and never cached.
//
// # Determinism
//
// With Config.Seed set, mood sampling draws from one seeded generator per
// snapshot, so a fixed sequence of queries yields a fixed sequence of
// results. With Seed zero every mood query gets a freshly seeded generator.
package recommend
