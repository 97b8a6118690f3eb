// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"math"
	"reflect"
	"testing"
)

func TestVectorizerFitVocabularySorted(t *testing.T) {
	vz := NewVectorizer(1, 1, 5000, 1)
	vocab := vz.Fit([]string{
		"space exploration",
		"space wonder",
	})

	want := []string{"exploration", "space", "wonder"}
	if got := vocab.Terms(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Terms() = %v, want %v", got, want)
	}
}

func TestVectorizerSmoothedIDF(t *testing.T) {
	vz := NewVectorizer(1, 1, 5000, 1)
	vocab := vz.Fit([]string{
		"space exploration",
		"space wonder",
	})

	// n=2; "space" appears in both docs, the others in one.
	col, ok := vocab.Column("space")
	if !ok {
		t.Fatal(`vocabulary missing "space"`)
	}
	wantCommon := math.Log(3.0/3.0) + 1
	if got := vocab.IDF()[col]; math.Abs(got-wantCommon) > 1e-12 {
		t.Errorf("IDF(space) = %v, want %v", got, wantCommon)
	}

	col, ok = vocab.Column("wonder")
	if !ok {
		t.Fatal(`vocabulary missing "wonder"`)
	}
	wantRare := math.Log(3.0/2.0) + 1
	if got := vocab.IDF()[col]; math.Abs(got-wantRare) > 1e-12 {
		t.Errorf("IDF(wonder) = %v, want %v", got, wantRare)
	}
}

func TestVectorizerMinDocFreq(t *testing.T) {
	vz := NewVectorizer(1, 1, 5000, 2)
	vocab := vz.Fit([]string{
		"space exploration",
		"space wonder",
		"space journey",
	})

	want := []string{"space"}
	if got := vocab.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() with minDF=2 = %v, want %v", got, want)
	}
}

func TestVectorizerMaxTermsKeepsMostFrequent(t *testing.T) {
	vz := NewVectorizer(1, 1, 2, 1)
	vocab := vz.Fit([]string{
		"space exploration",
		"space exploration",
		"space wonder",
	})

	// "space" (df 3) and "exploration" (df 2) survive the cap; "wonder"
	// (df 1) is dropped. Column order is alphabetical over the survivors.
	want := []string{"exploration", "space"}
	if got := vocab.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() with cap=2 = %v, want %v", got, want)
	}
}

func TestVectorizerMaxTermsTieBreakAlphabetical(t *testing.T) {
	vz := NewVectorizer(1, 1, 2, 1)
	vocab := vz.Fit([]string{"zebra apple mango"})

	// All df 1, so the cap keeps the alphabetically first terms.
	want := []string{"apple", "mango"}
	if got := vocab.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() tie-break = %v, want %v", got, want)
	}
}

func TestVectorizerTransformL2Normalized(t *testing.T) {
	vz := NewVectorizer(1, 1, 5000, 1)
	docs := []string{
		"space exploration wonder",
		"space space journey",
	}
	vocab := vz.Fit(docs)

	for i, doc := range docs {
		row := make([]float64, vocab.Len())
		vz.Transform(vocab, doc, row)

		var sumSq float64
		for _, v := range row {
			sumSq += v * v
		}
		if math.Abs(sumSq-1.0) > 1e-9 {
			t.Errorf("doc %d: squared norm = %v, want 1.0", i, sumSq)
		}
	}
}

func TestVectorizerTransformZeroRowForUnseenDoc(t *testing.T) {
	vz := NewVectorizer(1, 1, 5000, 1)
	vocab := vz.Fit([]string{"space exploration"})

	row := make([]float64, vocab.Len())
	vz.Transform(vocab, "volcano tsunami", row)
	for i, v := range row {
		if v != 0 {
			t.Fatalf("row[%d] = %v, want all-zero row for out-of-vocabulary doc", i, v)
		}
	}

	vz.Transform(vocab, "", row)
	for i, v := range row {
		if v != 0 {
			t.Fatalf("row[%d] = %v, want all-zero row for empty doc", i, v)
		}
	}
}

func TestVectorizerTransformReusesDst(t *testing.T) {
	vz := NewVectorizer(1, 1, 5000, 1)
	vocab := vz.Fit([]string{"space exploration", "ocean depth"})

	row := make([]float64, vocab.Len())
	vz.Transform(vocab, "space exploration", row)
	vz.Transform(vocab, "ocean depth", row)

	// Columns from the first transform must have been cleared.
	col, _ := vocab.Column("space")
	if row[col] != 0 {
		t.Errorf("row[%d] = %v after second transform, want 0", col, row[col])
	}
}

func TestVectorizerFitEmptyCorpus(t *testing.T) {
	vz := NewVectorizer(1, 2, 5000, 1)
	vocab := vz.Fit(nil)
	if vocab.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for empty corpus", vocab.Len())
	}
}

func TestVectorizerDeterministic(t *testing.T) {
	docs := []string{
		"epic space battle among distant stars",
		"quiet drama about family and loss",
		"space marines fight alien hordes",
	}
	vz := NewVectorizer(1, 2, 5000, 1)

	first := vz.Fit(docs)
	for i := 0; i < 5; i++ {
		again := vz.Fit(docs)
		if !reflect.DeepEqual(again.Terms(), first.Terms()) {
			t.Fatalf("fit %d produced different vocabulary", i)
		}
		if !reflect.DeepEqual(again.IDF(), first.IDF()) {
			t.Fatalf("fit %d produced different IDF weights", i)
		}
	}
}
