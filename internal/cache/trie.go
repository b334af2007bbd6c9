// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

type trieNode struct {
	children map[rune]*trieNode
	// ids of entries whose key ends here
	ids []int
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// TrieMatch is one autocomplete hit.
type TrieMatch struct {
	Value string
	ID    int
}

// Trie is a case-insensitive prefix index over titles. Every title is
// reachable from its first letter and from the start of each later word,
// so "kni" finds "The Dark Knight". Safe for concurrent use.
type Trie struct {
	mu     sync.RWMutex
	root   *trieNode
	values map[int]string
}

// NewTrie creates an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode(), values: make(map[int]string)}
}

// Insert indexes value under id. Re-inserting an id replaces nothing; the
// first value wins.
func (t *Trie) Insert(value string, id int) {
	if strings.TrimSpace(value) == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.values[id]; exists {
		return
	}
	t.values[id] = value

	for _, suffix := range wordSuffixes(strings.ToLower(value)) {
		node := t.root
		for _, ch := range suffix {
			next := node.children[ch]
			if next == nil {
				next = newTrieNode()
				node.children[ch] = next
			}
			node = next
		}
		node.ids = append(node.ids, id)
	}
}

// wordSuffixes returns s and every suffix of s that starts a word.
func wordSuffixes(s string) []string {
	out := []string{s}
	prevLetter := true
	for i, r := range s {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r)
		if isWord && !prevLetter && i > 0 {
			out = append(out, s[i:])
		}
		prevLetter = isWord
	}
	return out
}

// Prefix returns up to limit entries matching prefix, ordered by whether
// the title itself starts with prefix, then by title, then by id. An empty
// prefix matches nothing.
func (t *Trie) Prefix(prefix string, limit int) []TrieMatch {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root
	for _, ch := range prefix {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	seen := make(map[int]struct{})
	var matches []TrieMatch
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		for _, id := range n.ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			matches = append(matches, TrieMatch{Value: t.values[id], ID: id})
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(node)

	sort.Slice(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i].Value), prefix)
		pj := strings.HasPrefix(strings.ToLower(matches[j].Value), prefix)
		if pi != pj {
			return pi
		}
		if matches[i].Value != matches[j].Value {
			return matches[i].Value < matches[j].Value
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Size returns the number of indexed entries.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}
