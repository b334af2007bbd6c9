// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/tomtom215/cinematch/internal/recommend/catalog"
)

// MoodMap maps a lowercase mood label to the genres it selects.
type MoodMap map[string][]string

// DefaultMoodMap returns the built-in moods.
func DefaultMoodMap() MoodMap {
	return MoodMap{
		"happy":   {"Comedy", "Romance", "Adventure"},
		"sad":     {"Drama", "Romance"},
		"excited": {"Action", "Thriller"},
		"relaxed": {"Animation", "Family", "Fantasy"},
	}
}

// Normalized returns a copy with trimmed, lowercased keys. Later entries
// win when two keys collapse to the same label.
func (m MoodMap) Normalized() MoodMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(MoodMap, len(m))
	for _, k := range keys {
		genres := make([]string, len(m[k]))
		copy(genres, m[k])
		out[normalizeMood(k)] = genres
	}
	return out
}

// Clone returns a deep copy.
func (m MoodMap) Clone() MoodMap {
	if m == nil {
		return nil
	}
	out := make(MoodMap, len(m))
	for k, v := range m {
		genres := make([]string, len(v))
		copy(genres, v)
		out[k] = genres
	}
	return out
}

// Lookup finds the genres for mood, ignoring case and surrounding space.
func (m MoodMap) Lookup(mood string) ([]string, bool) {
	genres, ok := m[normalizeMood(mood)]
	return genres, ok
}

// Names returns the mood labels in sorted order.
func (m MoodMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func normalizeMood(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

// FilterByMood returns the row indices of up to k movies whose genres
// intersect the genres mapped to mood. The candidate set is deterministic;
// which candidates are returned, and in what order, depends on rng.
// Sampling is without replacement.
func FilterByMood(movies []catalog.Movie, moods MoodMap, mood string, k int, rng *rand.Rand) ([]int, error) {
	genres, ok := moods.Lookup(mood)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnmappedMood, mood)
	}

	var matches []int
	for i := range movies {
		if movies[i].HasAnyGenre(genres) {
			matches = append(matches, i)
		}
	}
	return sample(matches, k, rng), nil
}

// sample draws min(k, len(pool)) elements with a partial Fisher-Yates
// shuffle. pool is reordered in place.
func sample(pool []int, k int, rng *rand.Rand) []int {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return []int{}
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := make([]int, k)
	copy(out, pool[:k])
	return out
}
