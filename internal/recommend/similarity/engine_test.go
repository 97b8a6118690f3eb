// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// testMatrix builds a matrix from explicit rows.
func testMatrix(t *testing.T, rows [][]float64) *features.Matrix {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("testMatrix needs at least one row")
	}
	m := features.NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		copy(m.Row(i), r)
	}
	return m
}

func TestPairwiseScore(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{2, 0, 0},
	})
	e := NewEngine(m, 1)

	tests := []struct {
		name string
		a, b int
		want float64
	}{
		{"identical direction", 0, 3, 1.0},
		{"orthogonal", 0, 1, 0.0},
		{"45 degrees", 0, 2, 1.0 / math.Sqrt2},
		{"self", 2, 2, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.PairwiseScore(tt.a, tt.b)
			if err != nil {
				t.Fatalf("PairwiseScore(%d, %d) error = %v", tt.a, tt.b, err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PairwiseScore(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPairwiseScoreSymmetric(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 2, 3},
		{4, 0, 1},
	})
	e := NewEngine(m, 1)

	ab, _ := e.PairwiseScore(0, 1)
	ba, _ := e.PairwiseScore(1, 0)
	if ab != ba {
		t.Errorf("PairwiseScore not symmetric: %v vs %v", ab, ba)
	}
}

func TestZeroNormRowScoresZero(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 1, 0},
		{0, 0, 0},
	})
	e := NewEngine(m, 1)

	got, err := e.PairwiseScore(0, 1)
	if err != nil {
		t.Fatalf("PairwiseScore() error = %v", err)
	}
	if got != 0 {
		t.Errorf("PairwiseScore against zero vector = %v, want 0", got)
	}

	// A zero-vector query ranks everything at 0, ties broken by row index.
	matches, err := e.FindSimilar(1, 2, false)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	want := []Match{{Row: 0, Score: 0}, {Row: 1, Score: 0}}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("FindSimilar(zero row) = %v, want %v", matches, want)
	}
}

func TestFindSimilarOrdering(t *testing.T) {
	// Query row 0; row 3 is closest, then row 2, then row 1.
	m := testMatrix(t, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{1, 0.1, 0},
	})
	e := NewEngine(m, 1)

	matches, err := e.FindSimilar(0, 3, true)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}

	gotRows := []int{matches[0].Row, matches[1].Row, matches[2].Row}
	wantRows := []int{3, 2, 1}
	if !reflect.DeepEqual(gotRows, wantRows) {
		t.Errorf("FindSimilar rows = %v, want %v", gotRows, wantRows)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, matches)
		}
	}
}

func TestFindSimilarTiesByRowIndex(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 0},
		{2, 0},
		{3, 0},
	})
	e := NewEngine(m, 1)

	matches, err := e.FindSimilar(0, 2, true)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	want := []Match{{Row: 1, Score: 1}, {Row: 2, Score: 1}}
	if !reflect.DeepEqual(matches, want) {
		t.Errorf("FindSimilar ties = %v, want %v", matches, want)
	}
}

func TestFindSimilarSelfExclusion(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 0},
		{0, 1},
	})
	e := NewEngine(m, 1)

	withSelf, _ := e.FindSimilar(0, 2, false)
	if withSelf[0].Row != 0 || withSelf[0].Score != 1.0 {
		t.Errorf("expected self match first, got %v", withSelf)
	}

	withoutSelf, _ := e.FindSimilar(0, 2, true)
	for _, match := range withoutSelf {
		if match.Row == 0 {
			t.Errorf("self row present despite exclusion: %v", withoutSelf)
		}
	}
}

func TestFindSimilarTopKClamping(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	})
	e := NewEngine(m, 1)

	matches, err := e.FindSimilar(0, 100, true)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("len = %d with topK beyond collection, want 2", len(matches))
	}

	matches, err = e.FindSimilar(0, 0, true)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("len = %d with topK 0, want 1", len(matches))
	}
}

func TestRowBoundsErrors(t *testing.T) {
	m := testMatrix(t, [][]float64{{1, 0}})
	e := NewEngine(m, 1)

	var rangeErr *recommend.RangeError
	if _, err := e.FindSimilar(-1, 1, false); !errors.As(err, &rangeErr) {
		t.Errorf("FindSimilar(-1) error = %v, want *RangeError", err)
	}
	if _, err := e.FindSimilar(1, 1, false); !errors.As(err, &rangeErr) {
		t.Errorf("FindSimilar(1) error = %v, want *RangeError", err)
	}
	if _, err := e.PairwiseScore(0, 5); !errors.As(err, &rangeErr) {
		t.Errorf("PairwiseScore(0, 5) error = %v, want *RangeError", err)
	}
	if _, err := e.BatchFindSimilar([]int{0, 7}, 1); !errors.As(err, &rangeErr) {
		t.Errorf("BatchFindSimilar error = %v, want *RangeError", err)
	}
}

func TestBatchFindSimilarMatchesSequential(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{1, 0.1, 0},
		{0, 0.5, 1},
	})

	rows := []int{0, 1, 2, 3, 4}
	sequential := NewEngine(m, 1)
	parallel := NewEngine(m, 4)

	wantAll := make([][]Match, len(rows))
	for i, row := range rows {
		want, err := sequential.FindSimilar(row, 3, true)
		if err != nil {
			t.Fatalf("FindSimilar(%d) error = %v", row, err)
		}
		wantAll[i] = want
	}

	got, err := parallel.BatchFindSimilar(rows, 3)
	if err != nil {
		t.Fatalf("BatchFindSimilar() error = %v", err)
	}
	if !reflect.DeepEqual(got, wantAll) {
		t.Errorf("parallel batch differs from sequential:\ngot  %v\nwant %v", got, wantAll)
	}
}

func TestBatchFindSimilarEmpty(t *testing.T) {
	m := testMatrix(t, [][]float64{{1, 0}})
	e := NewEngine(m, 4)

	got, err := e.BatchFindSimilar(nil, 3)
	if err != nil {
		t.Fatalf("BatchFindSimilar(nil) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
