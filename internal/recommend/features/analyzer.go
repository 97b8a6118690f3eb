// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Analyzer turns raw text into n-gram tokens for the text vectorizer.
//
// The pipeline is: lowercase, strip accents, split into word tokens of at
// least two characters, drop English stop words, then emit n-grams for every
// n in [ngramMin, ngramMax]. Multi-word n-grams are joined with a single
// space.
type Analyzer struct {
	ngramMin int
	ngramMax int
}

// NewAnalyzer creates an analyzer for the given n-gram range.
func NewAnalyzer(ngramMin, ngramMax int) Analyzer {
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return Analyzer{ngramMin: ngramMin, ngramMax: ngramMax}
}

// stripAccents removes combining marks after canonical decomposition, so
// "café" analyzes the same as "cafe".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokens analyzes text into the n-gram tokens used as vocabulary terms.
// Empty input yields nil.
func (a Analyzer) Tokens(text string) []string {
	words := a.words(text)
	if len(words) == 0 {
		return nil
	}

	if a.ngramMin == 1 && a.ngramMax == 1 {
		return words
	}

	var tokens []string
	for n := a.ngramMin; n <= a.ngramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			if n == 1 {
				tokens = append(tokens, words[i])
				continue
			}
			tokens = append(tokens, strings.Join(words[i:i+n], " "))
		}
	}
	return tokens
}

// words splits text into lowercase, accent-stripped word tokens with stop
// words and single-character tokens removed.
func (a Analyzer) words(text string) []string {
	if text == "" {
		return nil
	}

	lowered := strings.ToLower(text)
	if stripped, _, err := transform.String(stripAccents, lowered); err == nil {
		lowered = stripped
	}

	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		w := b.String()
		b.Reset()
		// Single-character tokens carry no signal; stop words are noise.
		if len([]rune(w)) < 2 || isStopWord(w) {
			return
		}
		words = append(words, w)
	}

	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return words
}
