// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package prefs re-ranks similarity candidates against user preferences.
//
// Preferences act as soft boosts and penalties on top of the base similarity
// score, never as hard filters: an item matching no preference keeps its base
// score, and an item below the rating threshold is dampened, not removed.
package prefs

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// ratingPenaltyFloor bounds the dampening applied to items below the rating
// threshold: even an item far beneath it keeps half its adjusted score, so a
// strong content match under a strict threshold still outranks a weak one.
// Tunable; lowering it makes the rating preference closer to a hard filter.
const ratingPenaltyFloor = 0.5

// Engine applies preference boosts to similarity candidates. Safe for
// concurrent use.
type Engine struct {
	itemsByID map[int]recommend.Item
	logger    zerolog.Logger
}

// NewEngine creates a preference engine over an item collection. Later
// duplicates of an id are ignored, matching the row index convention.
func NewEngine(items []recommend.Item, logger zerolog.Logger) *Engine {
	byID := make(map[int]recommend.Item, len(items))
	for i := range items {
		if _, dup := byID[items[i].ID]; dup {
			continue
		}
		byID[items[i].ID] = items[i]
	}
	return &Engine{
		itemsByID: byID,
		logger:    logger.With().Str("component", "prefs").Logger(),
	}
}

// Apply adjusts candidate scores by the user's preferences and returns them
// re-sorted by adjusted score descending. The sort is stable, so candidates
// with equal adjusted scores keep their incoming order. Candidates whose id
// is no longer in the collection are dropped and logged, never an error.
// When normalize is set and the best adjusted score is positive, all scores
// are divided by it so the top candidate scores exactly 1.
//
// With zero-valued preferences the input survives unchanged apart from stale
// candidate removal.
func (e *Engine) Apply(candidates []recommend.Candidate, p recommend.UserPreferences, normalize bool) []recommend.Candidate {
	preferred := p.GenreSet()

	out := make([]recommend.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		item, ok := e.itemsByID[cand.ID]
		if !ok {
			e.logger.Warn().Int("item_id", cand.ID).Msg("dropping stale candidate")
			metrics.StaleCandidatesDropped.Inc()
			continue
		}
		out = append(out, recommend.Candidate{
			ID:    cand.ID,
			Score: e.adjust(cand.Score, item, p, preferred),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if normalize && len(out) > 0 && out[0].Score > 0 {
		max := out[0].Score
		for i := range out {
			out[i].Score /= max
		}
	}

	return out
}

// FilterAndRank applies preferences, truncates to topK, and enriches each
// surviving candidate with its item fields. topK values below 1 yield an
// empty result.
func (e *Engine) FilterAndRank(candidates []recommend.Candidate, p recommend.UserPreferences, topK int) []recommend.ScoredResult {
	ranked := e.Apply(candidates, p, true)
	if topK < 0 {
		topK = 0
	}
	if topK > len(ranked) {
		topK = len(ranked)
	}
	ranked = ranked[:topK]

	results := make([]recommend.ScoredResult, 0, len(ranked))
	for _, cand := range ranked {
		item := e.itemsByID[cand.ID]
		results = append(results, recommend.ScoredResult{
			ID:       item.ID,
			Title:    item.Title,
			Genres:   item.Genres,
			Language: item.Language,
			Rating:   item.Rating,
			Overview: item.Overview,
			Score:    cand.Score,
			Details:  item.Details,
		})
	}
	return results
}

func (e *Engine) adjust(base float64, item recommend.Item, p recommend.UserPreferences, preferred map[string]struct{}) float64 {
	score := base

	if len(preferred) > 0 {
		// Count distinct matches so a repeated genre cannot inflate the
		// overlap past |genres ∩ preferred|.
		matched := make(map[string]struct{}, len(preferred))
		for _, g := range item.Genres {
			if _, ok := preferred[g]; ok {
				matched[g] = struct{}{}
			}
		}
		score += float64(len(matched)) / float64(len(preferred)) * p.GenreWeight
	}

	if len(p.Languages) > 0 && p.MatchesLanguage(item.Language) {
		score += p.LanguageWeight
	}

	if p.MinRating > 0 && item.Rating < p.MinRating {
		penalty := item.Rating / p.MinRating
		if penalty < ratingPenaltyFloor {
			penalty = ratingPenaltyFloor
		}
		score *= penalty
	}

	return score
}
