// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package vectorspace

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrIndexOutOfRange is returned when a row index is outside the matrix.
var ErrIndexOutOfRange = errors.New("row index out of range")

// Neighbor is one TopK result.
type Neighbor struct {
	Index int
	Score float64
}

// Matrix is a dense, symmetric N×N cosine similarity matrix. Cells are
// stored as float32, which halves memory for catalogs of several thousand
// titles while keeping more precision than ranking needs.
type Matrix struct {
	n    int
	data []float32
}

// Compute builds the full similarity matrix of space using up to workers
// goroutines (zero means GOMAXPROCS). Only the upper triangle is computed
// and then mirrored, so the result is exactly symmetric. The diagonal is
// 1 for non-zero rows and 0 for all-zero rows; any pair involving a zero
// row scores 0.
func Compute(ctx context.Context, space *Space, workers int) (*Matrix, error) {
	n := space.Len()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n && n > 0 {
		workers = n
	}

	m := &Matrix{n: n, data: make([]float32, n*n)}
	if n == 0 {
		return m, nil
	}

	vocabSize := space.VocabularySize()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		// Interleaved rows balance the shrinking triangle across workers.
		g.Go(func() error {
			dense := make([]float64, vocabSize)
			for i := w; i < n; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				m.fillRow(space, i, dense)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute similarity: %w", err)
	}
	return m, nil
}

// fillRow writes cells (i, j) and (j, i) for every j >= i. Each pair is
// owned by exactly one row, so workers never write the same cell.
func (m *Matrix) fillRow(space *Space, i int, dense []float64) {
	ri := space.Row(i)
	if ri.IsZero() {
		return
	}
	for k, col := range ri.Indices {
		dense[col] = ri.Values[k]
	}

	m.data[i*m.n+i] = 1
	for j := i + 1; j < m.n; j++ {
		rj := space.Row(j)
		var dot float64
		for k, col := range rj.Indices {
			dot += dense[col] * rj.Values[k]
		}
		if dot > 1 {
			dot = 1
		}
		v := float32(dot)
		m.data[i*m.n+j] = v
		m.data[j*m.n+i] = v
	}

	for _, col := range ri.Indices {
		dense[col] = 0
	}
}

// Size returns N.
func (m *Matrix) Size() int { return m.n }

// At returns the similarity of rows i and j.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("%w: (%d, %d) in %d×%d", ErrIndexOutOfRange, i, j, m.n, m.n)
	}
	return float64(m.data[i*m.n+j]), nil
}

// TopK returns the k rows most similar to row i, excluding i itself,
// ordered by descending score with ties broken by ascending row index.
// k <= 0 yields an empty result; k beyond N-1 yields every other row.
func (m *Matrix) TopK(i, k int) ([]Neighbor, error) {
	if i < 0 || i >= m.n {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, m.n)
	}
	if k > m.n-1 {
		k = m.n - 1
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	// Bounded insertion into a sorted slice; k is small in practice.
	// Scanning j in ascending order and inserting only on a strictly
	// better score keeps lower indices ahead on ties.
	top := make([]Neighbor, 0, k)
	row := m.data[i*m.n : (i+1)*m.n]
	for j, v := range row {
		if j == i {
			continue
		}
		score := float64(v)
		if len(top) == k && score <= top[k-1].Score {
			continue
		}
		pos := len(top)
		for pos > 0 && top[pos-1].Score < score {
			pos--
		}
		if len(top) < k {
			top = append(top, Neighbor{})
		}
		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = Neighbor{Index: j, Score: score}
	}
	return top, nil
}
