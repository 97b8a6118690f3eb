// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"sort"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// GenreSet is the fitted state of the multi-label genre encoder: the sorted
// distinct genre vocabulary observed at fit time. Immutable once fitted.
type GenreSet struct {
	classes []string
	colOf   map[string]int
}

// NewGenreSet builds a genre set from a class list in column order.
// Used both by FitGenres and when restoring a persisted snapshot.
func NewGenreSet(classes []string) *GenreSet {
	g := &GenreSet{
		classes: classes,
		colOf:   make(map[string]int, len(classes)),
	}
	for i, c := range classes {
		g.colOf[c] = i
	}
	return g
}

// FitGenres collects the distinct genres across all items. Column order is
// the sorted genre vocabulary.
func FitGenres(items []recommend.Item) *GenreSet {
	distinct := make(map[string]struct{})
	for i := range items {
		for _, g := range items[i].Genres {
			distinct[g] = struct{}{}
		}
	}

	classes := make([]string, 0, len(distinct))
	for g := range distinct {
		classes = append(classes, g)
	}
	sort.Strings(classes)

	return NewGenreSet(classes)
}

// Len returns the number of genre columns.
func (g *GenreSet) Len() int { return len(g.classes) }

// Classes returns a copy of the genre vocabulary in column order.
func (g *GenreSet) Classes() []string {
	out := make([]string, len(g.classes))
	copy(out, g.classes)
	return out
}

// Transform writes the one-hot encoding of genres into dst, which must have
// length Len(). Genres not in the fitted vocabulary are dropped silently;
// they cannot occur when fit and use share the same collection.
func (g *GenreSet) Transform(genres []string, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for _, genre := range genres {
		if col, ok := g.colOf[genre]; ok {
			dst[col] = 1
		}
	}
}
