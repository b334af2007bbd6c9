// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorspace

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest token kept. Single characters carry no
// signal for similarity and are dropped.
const minTokenRunes = 2

// Tokenize lowercases text and splits it into runs of word characters
// (Unicode letters, digits, marks and underscore) of at least two runes.
// Stop words are not removed here.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	start, runes := -1, 0
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start, runes = i, 0
			}
			runes++
			continue
		}
		if start >= 0 && runes >= minTokenRunes {
			tokens = append(tokens, text[start:i])
		}
		start = -1
	}
	if start >= 0 && runes >= minTokenRunes {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
