// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package similarity ranks feature matrix rows by cosine similarity.
//
// The engine scans every row for each query (brute force, no approximate
// index), which keeps results exact and reproducible for collections in the
// tens of thousands of items. Batch queries fan out across a worker pool;
// parallelism never changes scores or ordering.
package similarity

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// Match is one scored row from a similarity query.
type Match struct {
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// Engine answers cosine similarity queries over a fitted feature matrix.
// Row norms are precomputed once at construction. Safe for concurrent use;
// the engine never mutates the matrix.
type Engine struct {
	matrix  *features.Matrix
	norms   []float64
	workers int
}

// NewEngine creates an engine over the given matrix. workers bounds the
// parallelism of batch queries; values below 1 fall back to GOMAXPROCS.
func NewEngine(matrix *features.Matrix, workers int) *Engine {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	norms := make([]float64, matrix.Rows())
	for i := 0; i < matrix.Rows(); i++ {
		var sumSq float64
		for _, v := range matrix.Row(i) {
			sumSq += v * v
		}
		norms[i] = math.Sqrt(sumSq)
	}

	return &Engine{matrix: matrix, norms: norms, workers: workers}
}

// Rows returns the number of rows the engine scores against.
func (e *Engine) Rows() int { return e.matrix.Rows() }

// PairwiseScore returns the cosine similarity between two rows. A row whose
// vector has zero norm scores 0 against everything.
func (e *Engine) PairwiseScore(a, b int) (float64, error) {
	if err := e.checkRow(a); err != nil {
		return 0, err
	}
	if err := e.checkRow(b); err != nil {
		return 0, err
	}
	return e.cosine(a, b), nil
}

// FindSimilar returns the topK rows most similar to queryRow, ordered by
// score descending with ties broken by ascending row index. When excludeSelf
// is set the query row itself is removed from the results after ranking.
// topK values below 1 or beyond the collection size are clamped.
func (e *Engine) FindSimilar(queryRow, topK int, excludeSelf bool) ([]Match, error) {
	if err := e.checkRow(queryRow); err != nil {
		return nil, err
	}

	n := e.matrix.Rows()
	matches := make([]Match, n)
	for i := 0; i < n; i++ {
		matches[i] = Match{Row: i, Score: e.cosine(queryRow, i)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Row < matches[j].Row
	})

	if excludeSelf {
		for i := range matches {
			if matches[i].Row == queryRow {
				matches = append(matches[:i], matches[i+1:]...)
				break
			}
		}
	}

	if topK < 1 {
		topK = 1
	}
	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

// BatchFindSimilar runs FindSimilar for every query row, excluding each row
// from its own results. Queries are scored in parallel; the output order
// matches the input order exactly.
func (e *Engine) BatchFindSimilar(rows []int, topK int) ([][]Match, error) {
	for _, row := range rows {
		if err := e.checkRow(row); err != nil {
			return nil, err
		}
	}

	out := make([][]Match, len(rows))
	workers := e.workers
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers < 1 {
		return out, nil
	}

	var wg sync.WaitGroup
	chunk := (len(rows) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(rows) {
			hi = len(rows)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				// Bounds were validated up front, so the error is unreachable.
				out[i], _ = e.FindSimilar(rows[i], topK, true)
			}
		}(lo, hi)
	}
	wg.Wait()

	return out, nil
}

func (e *Engine) checkRow(row int) error {
	if row < 0 || row >= e.matrix.Rows() {
		return &recommend.RangeError{Index: row, Size: e.matrix.Rows()}
	}
	return nil
}

func (e *Engine) cosine(a, b int) float64 {
	if e.norms[a] == 0 || e.norms[b] == 0 {
		return 0
	}
	ra, rb := e.matrix.Row(a), e.matrix.Row(b)
	var dot float64
	for i := range ra {
		dot += ra[i] * rb[i]
	}
	return dot / (e.norms[a] * e.norms[b])
}
