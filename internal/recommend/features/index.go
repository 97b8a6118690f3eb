// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import "github.com/tomtom215/reelmatch/internal/recommend"

// Index is the bidirectional mapping between item ids and matrix rows.
// Rows are assigned in input order starting at zero; when the same id
// appears twice the first occurrence wins for the id-to-row direction,
// while every row still maps back to its id. For a duplicate-free
// collection the mapping is bijective.
type Index struct {
	ids   []int
	rowOf map[int]int
}

// NewIndex builds an index from a slice of item ids in row order.
func NewIndex(ids []int) *Index {
	ix := &Index{
		ids:   make([]int, len(ids)),
		rowOf: make(map[int]int, len(ids)),
	}
	copy(ix.ids, ids)
	for row, id := range ids {
		if _, seen := ix.rowOf[id]; !seen {
			ix.rowOf[id] = row
		}
	}
	return ix
}

// indexItems extracts the id order from an item collection.
func indexItems(items []recommend.Item) *Index {
	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return NewIndex(ids)
}

// Len returns the number of rows covered by the index.
func (ix *Index) Len() int { return len(ix.ids) }

// RowOf returns the matrix row for an item id, or a NotFoundError when the
// id is not in the mapping.
func (ix *Index) RowOf(id int) (int, error) {
	row, ok := ix.rowOf[id]
	if !ok {
		return 0, recommend.NotFoundItem(id)
	}
	return row, nil
}

// IDOf returns the item id for a matrix row, or a NotFoundError when the
// row is outside the mapping.
func (ix *Index) IDOf(row int) (int, error) {
	if row < 0 || row >= len(ix.ids) {
		return 0, recommend.NotFoundRow(row)
	}
	return ix.ids[row], nil
}

// IDs returns a copy of the ids in row order.
func (ix *Index) IDs() []int {
	out := make([]int, len(ix.ids))
	copy(out, ix.ids)
	return out
}
