// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

// Matrix is a dense row-major feature matrix. Rows correspond to items in
// index order; columns to the fitted feature blocks.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix allocates a zero matrix with the given dimensions.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// Row returns the i-th row as a slice backed by the matrix storage.
// Callers must not mutate it after fitting completes.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// At returns the value at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Layout records the width of each feature block. Concatenation order is
// fixed: text, then genres, then rating.
type Layout struct {
	// TextCols is the width of the TF-IDF block.
	TextCols int `json:"text_cols"`

	// GenreCols is the width of the genre one-hot block.
	GenreCols int `json:"genre_cols"`

	// RatingCols is the width of the rating block (0 or 1).
	RatingCols int `json:"rating_cols"`
}

// TotalCols returns the combined matrix width.
func (l Layout) TotalCols() int {
	return l.TextCols + l.GenreCols + l.RatingCols
}

// TextRange returns the half-open column range of the text block.
func (l Layout) TextRange() (lo, hi int) {
	return 0, l.TextCols
}

// GenreRange returns the half-open column range of the genre block.
func (l Layout) GenreRange() (lo, hi int) {
	return l.TextCols, l.TextCols + l.GenreCols
}

// RatingRange returns the half-open column range of the rating block.
func (l Layout) RatingRange() (lo, hi int) {
	return l.TextCols + l.GenreCols, l.TotalCols()
}
