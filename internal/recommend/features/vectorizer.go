// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"math"
	"sort"
)

// Vocabulary is the fitted state of the text vectorizer: the selected terms
// in column order and their smoothed inverse document frequency weights.
// Immutable once fitted.
type Vocabulary struct {
	terms []string
	idf   []float64
	colOf map[string]int
}

// NewVocabulary builds a vocabulary from parallel term and IDF slices.
// Used both by Fit and when restoring a persisted snapshot.
func NewVocabulary(terms []string, idf []float64) *Vocabulary {
	v := &Vocabulary{
		terms: terms,
		idf:   idf,
		colOf: make(map[string]int, len(terms)),
	}
	for i, t := range terms {
		v.colOf[t] = i
	}
	return v
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Terms returns a copy of the terms in column order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns a copy of the IDF weights in column order.
func (v *Vocabulary) IDF() []float64 {
	out := make([]float64, len(v.idf))
	copy(out, v.idf)
	return out
}

// Column returns the column index of a term.
func (v *Vocabulary) Column(term string) (int, bool) {
	col, ok := v.colOf[term]
	return col, ok
}

// Vectorizer fits TF-IDF vocabularies over document corpora and transforms
// documents into weighted rows.
type Vectorizer struct {
	analyzer   Analyzer
	maxTerms   int
	minDocFreq int
}

// NewVectorizer creates a vectorizer with the given analyzer settings,
// vocabulary cap, and minimum document frequency.
func NewVectorizer(ngramMin, ngramMax, maxTerms, minDocFreq int) *Vectorizer {
	if maxTerms <= 0 {
		maxTerms = 5000
	}
	if minDocFreq < 1 {
		minDocFreq = 1
	}
	return &Vectorizer{
		analyzer:   NewAnalyzer(ngramMin, ngramMax),
		maxTerms:   maxTerms,
		minDocFreq: minDocFreq,
	}
}

// Fit builds the vocabulary over all documents jointly. Terms below the
// minimum document frequency are dropped; when the remainder exceeds the
// cap, the terms with the highest document frequency are kept (ties broken
// alphabetically for determinism). Column order is the sorted selection.
// An empty corpus or one that yields no terms produces an empty vocabulary,
// which the caller decides how to treat.
func (vz *Vectorizer) Fit(docs []string) *Vocabulary {
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range vz.analyzer.Tokens(doc) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	selected := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= vz.minDocFreq {
			selected = append(selected, term)
		}
	}

	if len(selected) > vz.maxTerms {
		sort.Slice(selected, func(i, j int) bool {
			di, dj := docFreq[selected[i]], docFreq[selected[j]]
			if di != dj {
				return di > dj
			}
			return selected[i] < selected[j]
		})
		selected = selected[:vz.maxTerms]
	}
	sort.Strings(selected)

	n := float64(len(docs))
	idf := make([]float64, len(selected))
	for i, term := range selected {
		// Smoothed IDF: acts as if one extra document contained every term,
		// so no weight is ever zero or unbounded.
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return NewVocabulary(selected, idf)
}

// Transform writes the L2-normalized TF-IDF row for doc into dst, which must
// have length vocab.Len(). Documents with no in-vocabulary terms produce an
// all-zero row rather than an error.
func (vz *Vectorizer) Transform(vocab *Vocabulary, doc string, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	if vocab.Len() == 0 {
		return
	}

	for _, tok := range vz.analyzer.Tokens(doc) {
		if col, ok := vocab.Column(tok); ok {
			dst[col] += vocab.idf[col]
		}
	}

	var sumSq float64
	for _, v := range dst {
		sumSq += v * v
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range dst {
		dst[i] /= norm
	}
}
