// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package features converts item collections into dense feature matrices.
//
// A fit pass produces an immutable Model holding the fitted state: the
// TF-IDF vocabulary with IDF weights, the genre vocabulary, the bidirectional
// id/row index, the block layout, and the matrix itself. The fitted state is
// returned as a value rather than kept as mutable builder state, so there is
// never ambiguity about which generation of the fit a matrix belongs to.
//
// # Column Layout
//
// Columns are the concatenation of independently fitted blocks in fixed
// order: text (TF-IDF, L2-normalized rows), genres (multi-label one-hot,
// sorted genre vocabulary), rating (single column, rating/10). The layout is
// part of the contract: downstream weighted-similarity variants slice the
// matrix by feature-type range.
//
// Applying a fitted model to a different item collection without refitting
// is undefined; fit and use share the same collection.
package features
