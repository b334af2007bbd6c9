// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package vectorspace fits a TF-IDF model over tag signatures and builds the
// pairwise cosine similarity matrix used for nearest-neighbour queries.
//
// Weighting follows the common smoothed formulation:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//	w(d,t) = count(d,t) * idf(t)
//
// and every row is L2-normalised, so the cosine of two rows is their dot
// product. The vocabulary keeps the MaxFeatures terms with the highest
// corpus-wide count. A Space is immutable once fitted.
package vectorspace

import (
	"errors"
	"math"
	"sort"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 5000

// ErrInvalidMaxFeatures is returned for a non-positive vocabulary cap.
var ErrInvalidMaxFeatures = errors.New("max features must be positive")

// Options control vocabulary selection.
type Options struct {
	// MaxFeatures is the vocabulary cap. Zero means DefaultMaxFeatures.
	MaxFeatures int

	// KeepStopWords disables English stop-word removal.
	KeepStopWords bool
}

// Row is a sparse, L2-normalised document vector. Indices are ascending
// column indices into the vocabulary.
type Row struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the row has no surviving terms.
func (r Row) IsZero() bool {
	return len(r.Indices) == 0
}

// Space is a fitted vocabulary plus one weighted vector per document, in
// document order.
type Space struct {
	vocab []string
	index map[string]int
	idf   []float64
	rows  []Row
}

// termStat accumulates corpus counts for vocabulary selection.
type termStat struct {
	term  string
	count int
	df    int
}

// Fit builds a Space over docs. It is a batch operation: adding documents
// requires fitting again over the full corpus.
func Fit(docs []string, opts Options) (*Space, error) {
	maxFeatures := opts.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = DefaultMaxFeatures
	}
	if maxFeatures < 0 {
		return nil, ErrInvalidMaxFeatures
	}

	// Per-document term counts, stop words removed.
	docCounts := make([]map[string]int, len(docs))
	stats := make(map[string]*termStat)
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, tok := range Tokenize(doc) {
			if !opts.KeepStopWords && englishStopWords.contains(tok) {
				continue
			}
			counts[tok]++
		}
		docCounts[i] = counts
		for term, c := range counts {
			st, ok := stats[term]
			if !ok {
				st = &termStat{term: term}
				stats[term] = st
			}
			st.count += c
			st.df++
		}
	}

	vocab := selectVocabulary(stats, maxFeatures)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(stats[term].df))) + 1
	}

	rows := make([]Row, len(docs))
	for i, counts := range docCounts {
		rows[i] = weightRow(counts, index, idf)
	}

	return &Space{vocab: vocab, index: index, idf: idf, rows: rows}, nil
}

// selectVocabulary keeps the top terms by corpus count, breaking ties by
// document frequency then lexical order, and returns them sorted lexically
// so column indices do not depend on ranking.
func selectVocabulary(stats map[string]*termStat, maxFeatures int) []string {
	ranked := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		ranked = append(ranked, st)
	}
	sort.Slice(ranked, func(a, b int) bool {
		x, y := ranked[a], ranked[b]
		if x.count != y.count {
			return x.count > y.count
		}
		if x.df != y.df {
			return x.df > y.df
		}
		return x.term < y.term
	})
	if len(ranked) > maxFeatures {
		ranked = ranked[:maxFeatures]
	}

	vocab := make([]string, len(ranked))
	for i, st := range ranked {
		vocab[i] = st.term
	}
	sort.Strings(vocab)
	return vocab
}

func weightRow(counts map[string]int, index map[string]int, idf []float64) Row {
	type entry struct {
		col   int
		count int
	}
	entries := make([]entry, 0, len(counts))
	for term, c := range counts {
		if col, ok := index[term]; ok {
			entries = append(entries, entry{col: col, count: c})
		}
	}
	if len(entries) == 0 {
		return Row{}
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].col < entries[b].col })

	r := Row{
		Indices: make([]int, len(entries)),
		Values:  make([]float64, len(entries)),
	}
	var sumSq float64
	for k, e := range entries {
		w := float64(e.count) * idf[e.col]
		r.Indices[k] = e.col
		r.Values[k] = w
		sumSq += w * w
	}
	norm := math.Sqrt(sumSq)
	for k := range r.Values {
		r.Values[k] /= norm
	}
	return r
}

// Len returns the number of documents.
func (s *Space) Len() int { return len(s.rows) }

// VocabularySize returns the number of columns.
func (s *Space) VocabularySize() int { return len(s.vocab) }

// Vocabulary returns a copy of the terms in column order.
func (s *Space) Vocabulary() []string {
	out := make([]string, len(s.vocab))
	copy(out, s.vocab)
	return out
}

// Column returns the column index of term.
func (s *Space) Column(term string) (int, bool) {
	i, ok := s.index[term]
	return i, ok
}

// IDF returns the inverse document frequency of term.
func (s *Space) IDF(term string) (float64, bool) {
	i, ok := s.index[term]
	if !ok {
		return 0, false
	}
	return s.idf[i], true
}

// Row returns document i's sparse vector. The slices are shared and must
// not be modified. It panics if i is out of range, like a slice index.
func (s *Space) Row(i int) Row {
	return s.rows[i]
}

// Dense expands document i into a full-width vector.
func (s *Space) Dense(i int) []float64 {
	out := make([]float64, len(s.vocab))
	r := s.rows[i]
	for k, col := range r.Indices {
		out[col] = r.Values[k]
	}
	return out
}
