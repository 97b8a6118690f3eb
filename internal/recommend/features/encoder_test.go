// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestFitGenresSortedDistinct(t *testing.T) {
	items := []recommend.Item{
		{ID: 1, Genres: []string{"Sci-Fi", "Drama"}},
		{ID: 2, Genres: []string{"Drama", "Action"}},
		{ID: 3, Genres: []string{"Action"}},
	}

	g := FitGenres(items)
	want := []string{"Action", "Drama", "Sci-Fi"}
	if got := g.Classes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
}

func TestGenreSetTransform(t *testing.T) {
	g := NewGenreSet([]string{"Action", "Drama", "Sci-Fi"})

	tests := []struct {
		name   string
		genres []string
		want   []float64
	}{
		{"multi label", []string{"Sci-Fi", "Action"}, []float64{1, 0, 1}},
		{"single label", []string{"Drama"}, []float64{0, 1, 0}},
		{"no genres", nil, []float64{0, 0, 0}},
		{"unknown dropped silently", []string{"Western", "Drama"}, []float64{0, 1, 0}},
		{"duplicate stays one-hot", []string{"Drama", "Drama"}, []float64{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]float64, g.Len())
			// Pre-fill so clearing is exercised too.
			for i := range dst {
				dst[i] = 9
			}
			g.Transform(tt.genres, dst)
			if !reflect.DeepEqual(dst, tt.want) {
				t.Errorf("Transform(%v) = %v, want %v", tt.genres, dst, tt.want)
			}
		})
	}
}

func TestGenreSetEmpty(t *testing.T) {
	g := NewGenreSet(nil)
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
	g.Transform([]string{"Drama"}, nil)
}
