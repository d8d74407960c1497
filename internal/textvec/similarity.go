// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package textvec

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SimilarityMatrix is a dense symmetric matrix of cosine similarities.
// It is never modified after CosineMatrix returns.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// CosineMatrix computes the cosine similarity between every pair of vectors.
// Rows are computed concurrently by up to workers goroutines (0 means
// GOMAXPROCS). A zero vector has similarity 0 with everything, itself
// included.
func CosineMatrix(ctx context.Context, vectors []Vector, workers int) (*SimilarityMatrix, error) {
	n := len(vectors)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	dim := 0
	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = v.Norm()
		if k := len(v.Indices); k > 0 && v.Indices[k-1]+1 > dim {
			dim = v.Indices[k-1] + 1
		}
	}

	m := &SimilarityMatrix{n: n, data: make([]float64, n*n)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("similarity row %d: %w", i, err)
			}
			m.fillRow(i, vectors, norms, dim)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// fillRow writes cells (i, j) and (j, i) for every j >= i. No two rows touch
// the same cell.
func (m *SimilarityMatrix) fillRow(i int, vectors []Vector, norms []float64, dim int) {
	if norms[i] == 0 {
		return
	}

	dense := make([]float64, dim)
	vi := vectors[i]
	for k, idx := range vi.Indices {
		dense[idx] = vi.Values[k]
	}

	for j := i; j < m.n; j++ {
		if norms[j] == 0 {
			continue
		}
		var dot float64
		vj := vectors[j]
		for k, idx := range vj.Indices {
			dot += dense[idx] * vj.Values[k]
		}
		sim := dot / (norms[i] * norms[j])
		if sim > 1 {
			sim = 1
		}
		m.data[i*m.n+j] = sim
		m.data[j*m.n+i] = sim
	}
}

// Size returns the number of rows (and columns).
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// At returns the similarity between documents i and j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns row i. The slice aliases the matrix and must not be modified.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}

// Bytes reports the memory held by the matrix cells.
func (m *SimilarityMatrix) Bytes() int {
	return len(m.data) * 8
}
