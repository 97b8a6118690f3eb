// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "strings"

// Item is the canonical record for one recommendable movie.
//
// Items are constructed once during ingestion and never mutated afterwards;
// the in-memory collection owns them for the process lifetime. The id is
// externally supplied, unique, and positive.
type Item struct {
	// ID is the unique item identifier.
	ID int `json:"id"`

	// Title is the display title. Not unique.
	Title string `json:"title"`

	// Genres is the item's genre set. Order is irrelevant for matching and
	// ingestion collapses duplicates. Never empty after ingestion (the
	// loader falls back to an "Unknown" sentinel).
	Genres []string `json:"genres"`

	// Overview is the free-text plot description. May be empty.
	Overview string `json:"overview"`

	// Language is the normalized lowercase language code.
	Language string `json:"language"`

	// Rating is the critic rating on a 0-10 scale. Out-of-range source
	// values are reset to 0 during ingestion rather than rejected.
	Rating float64 `json:"rating"`

	// Details holds optional display-only metadata.
	Details *ItemDetails `json:"details,omitempty"`
}

// ItemDetails is the typed extension point for auxiliary item fields.
// Its only consumer is display; none of the core stages read it.
type ItemDetails struct {
	// ReleaseYear is the release year, zero when unknown.
	ReleaseYear int `json:"release_year,omitempty"`

	// Runtime is the runtime in minutes, zero when unknown.
	Runtime int `json:"runtime,omitempty"`

	// VoteCount is the number of rating votes, zero when unknown.
	VoteCount int `json:"vote_count,omitempty"`

	// Popularity is a source-specific popularity metric, zero when unknown.
	Popularity float64 `json:"popularity,omitempty"`
}

// ClampRating applies the fail-open rating policy: values outside [0, 10]
// become 0 rather than an error.
func ClampRating(r float64) float64 {
	if r < 0 || r > 10 {
		return 0
	}
	return r
}

// Candidate is a transient (id, score) pair flowing from the similarity
// stage into the preference stage. The score is a raw cosine similarity
// until the preference stage normalizes it.
type Candidate struct {
	// ID is the item identifier.
	ID int `json:"id"`

	// Score is the candidate's current ranking score.
	Score float64 `json:"score"`
}

// ScoredResult is one final ranked recommendation, enriched with the item's
// display attributes.
type ScoredResult struct {
	// ID is the item identifier.
	ID int `json:"id"`

	// Title is the item title.
	Title string `json:"title"`

	// Genres is the item's genre list.
	Genres []string `json:"genres"`

	// Language is the item's language code.
	Language string `json:"language"`

	// Rating is the item's 0-10 rating.
	Rating float64 `json:"rating"`

	// Overview is the item's plot description.
	Overview string `json:"overview"`

	// Score is the final ranking score. In the top-level ranking call it is
	// normalized so the best result is exactly 1.0; callers that skip
	// normalization get the raw adjusted score.
	Score float64 `json:"score"`

	// Details carries the optional display metadata, if any.
	Details *ItemDetails `json:"details,omitempty"`
}

// UserPreferences is an immutable value object describing soft user
// preferences. Empty sets and a zero threshold mean "no preference": every
// boost and penalty degenerates to a no-op.
type UserPreferences struct {
	// Genres is the set of preferred genres.
	Genres []string `json:"genres,omitempty"`

	// Languages is the set of preferred language codes.
	Languages []string `json:"languages,omitempty"`

	// GenreWeight scales the genre-overlap boost.
	GenreWeight float64 `json:"genre_weight,omitempty"`

	// LanguageWeight is the flat boost for a language match.
	LanguageWeight float64 `json:"language_weight,omitempty"`

	// MinRating is the soft minimum-rating threshold. Items below it are
	// discounted, never removed.
	MinRating float64 `json:"min_rating,omitempty"`
}

// IsZero reports whether the preferences are entirely empty, in which case
// re-ranking leaves the candidate order unchanged.
func (p UserPreferences) IsZero() bool {
	return len(p.Genres) == 0 && len(p.Languages) == 0 && p.MinRating == 0
}

// GenreSet returns the preferred genres as a set for overlap computation.
func (p UserPreferences) GenreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Genres))
	for _, g := range p.Genres {
		set[g] = struct{}{}
	}
	return set
}

// MatchesLanguage reports whether lang is one of the preferred languages.
// Language codes are compared case-insensitively since ingestion lowercases
// item languages but preference input arrives unnormalized.
func (p UserPreferences) MatchesLanguage(lang string) bool {
	for _, l := range p.Languages {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}
