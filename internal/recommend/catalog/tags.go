// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import "strings"

// ComposeTags builds the tag signature: overview, genres, keywords, cast and
// director, each list space-joined, the five parts joined by single spaces.
// Empty parts still contribute their separator.
func ComposeTags(overview string, genres, keywords, cast []string, director string) string {
	var b strings.Builder
	b.Grow(len(overview) + len(director) + 64)
	b.WriteString(overview)
	for _, part := range [][]string{genres, keywords, cast} {
		b.WriteByte(' ')
		b.WriteString(strings.Join(part, " "))
	}
	b.WriteByte(' ')
	b.WriteString(director)
	return b.String()
}
