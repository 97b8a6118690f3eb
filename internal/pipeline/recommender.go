// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package pipeline wires feature building, similarity search, and preference
// ranking into the end-to-end recommendation flow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/prefs"
	"github.com/tomtom215/reelmatch/internal/recommend/similarity"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// Request describes one recommendation query. Either ItemID or Title
// identifies the query item; ItemID wins when both are set.
type Request struct {
	ItemID      int                       `json:"item_id,omitempty"`
	Title       string                    `json:"title,omitempty"`
	K           int                       `json:"k,omitempty"`
	Preferences recommend.UserPreferences `json:"preferences,omitempty"`
	RequestID   string                    `json:"request_id,omitempty"`
}

// Response is the result of one recommendation query.
type Response struct {
	RequestID       string                   `json:"request_id"`
	QueryID         int                      `json:"query_id"`
	QueryTitle      string                   `json:"query_title"`
	Personalized    bool                     `json:"personalized"`
	Results         []recommend.ScoredResult `json:"results"`
	TotalCandidates int                      `json:"total_candidates"`
	LatencyMS       int64                    `json:"latency_ms"`
}

// Recommender is the top-level engine: a fitted feature model plus the
// similarity and preference engines built over it. Construct once per item
// collection; all methods are safe for concurrent use.
type Recommender struct {
	items      []recommend.Item
	itemsByID  map[int]recommend.Item
	cfg        *recommend.Config
	model      *features.Model
	similar    *similarity.Engine
	prefEngine *prefs.Engine
	simCache   *cache.Cache
	logger     zerolog.Logger
}

// simCacheTTL bounds how long raw similarity results are reused. The model
// is immutable after construction, so the TTL only bounds memory growth.
const simCacheTTL = 5 * time.Minute

// New fits a model over the item collection and builds a recommender.
func New(items []recommend.Item, cfg *recommend.Config, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	model, err := features.NewBuilder(cfg.Features, logger).FitTransform(items)
	if err != nil {
		return nil, fmt.Errorf("fit feature model: %w", err)
	}
	metrics.RecordModelFit(time.Since(start), len(items), model.Layout().TotalCols())

	return newFromModel(items, cfg, model, logger), nil
}

// NewWithStore builds a recommender, restoring the fitted model from a
// stored snapshot when one exists for the exact same collection and feature
// configuration. After a fresh fit the new snapshot is saved back.
func NewWithStore(items []recommend.Item, cfg *recommend.Config, store *storage.BadgerStore, name string, logger zerolog.Logger) (*Recommender, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.With().Str("component", "pipeline").Logger()
	fingerprint := features.Fingerprint(items, cfg.Features)

	snap, _, err := store.Load(name)
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		metrics.RecordSnapshotRestore("miss")
	case err != nil:
		metrics.RecordSnapshotRestore("error")
		log.Warn().Err(err).Str("snapshot", name).Msg("snapshot load failed, refitting")
	case snap.Fingerprint != fingerprint:
		metrics.RecordSnapshotRestore("stale")
		log.Info().Str("snapshot", name).Msg("snapshot is stale, refitting")
	default:
		model, restoreErr := features.ModelFromSnapshot(snap, items, cfg.Features)
		if restoreErr != nil {
			metrics.RecordSnapshotRestore("error")
			log.Warn().Err(restoreErr).Str("snapshot", name).Msg("snapshot restore failed, refitting")
		} else {
			metrics.RecordSnapshotRestore("hit")
			log.Info().Str("snapshot", name).Msg("restored model from snapshot")
			return newFromModel(items, cfg, model, logger), nil
		}
	}

	r, err := New(items, cfg, logger)
	if err != nil {
		return nil, err
	}
	if saveErr := store.Save(name, r.model.Snapshot(fingerprint)); saveErr != nil {
		log.Warn().Err(saveErr).Str("snapshot", name).Msg("snapshot save failed")
	}
	return r, nil
}

func newFromModel(items []recommend.Item, cfg *recommend.Config, model *features.Model, logger zerolog.Logger) *Recommender {
	byID := make(map[int]recommend.Item, len(items))
	for i := range items {
		if _, dup := byID[items[i].ID]; dup {
			continue
		}
		byID[items[i].ID] = items[i]
	}

	return &Recommender{
		items:      items,
		itemsByID:  byID,
		cfg:        cfg,
		model:      model,
		similar:    similarity.NewEngine(model.Matrix(), cfg.Limits.BatchWorkers),
		prefEngine: prefs.NewEngine(items, logger),
		simCache:   cache.New(simCacheTTL),
		logger:     logger.With().Str("component", "pipeline").Logger(),
	}
}

// Close releases the recommender's background resources. The recommender
// must not be used after Close.
func (r *Recommender) Close() {
	r.simCache.Stop()
}

// Item returns the item with the given id.
func (r *Recommender) Item(id int) (recommend.Item, error) {
	item, ok := r.itemsByID[id]
	if !ok {
		return recommend.Item{}, recommend.NotFoundItem(id)
	}
	return item, nil
}

// Items returns the full item collection in load order.
func (r *Recommender) Items() []recommend.Item {
	return r.items
}

// Genres returns the sorted distinct genres across the collection.
func (r *Recommender) Genres() []string {
	distinct := make(map[string]struct{})
	for i := range r.items {
		for _, g := range r.items[i].Genres {
			distinct[g] = struct{}{}
		}
	}
	out := make([]string, 0, len(distinct))
	for g := range distinct {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Languages returns the sorted distinct languages across the collection.
func (r *Recommender) Languages() []string {
	distinct := make(map[string]struct{})
	for i := range r.items {
		distinct[r.items[i].Language] = struct{}{}
	}
	out := make([]string, 0, len(distinct))
	for l := range distinct {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// FindByTitle resolves a title to an item: exact match first, then the first
// item whose title contains the query. Matching is case-insensitive; items
// are scanned in load order.
func (r *Recommender) FindByTitle(title string) (recommend.Item, error) {
	lowered := strings.ToLower(strings.TrimSpace(title))
	if lowered == "" {
		return recommend.Item{}, &recommend.NotFoundError{Kind: "title", Key: title}
	}

	for i := range r.items {
		if strings.ToLower(r.items[i].Title) == lowered {
			return r.items[i], nil
		}
	}
	for i := range r.items {
		if strings.Contains(strings.ToLower(r.items[i].Title), lowered) {
			return r.items[i], nil
		}
	}
	return recommend.Item{}, &recommend.NotFoundError{Kind: "title", Key: title}
}

// Recommend answers one recommendation query. The query item is resolved
// from ItemID or Title, more candidates than requested are pulled from the
// similarity engine, and preferences (when present) re-rank them before
// truncation.
func (r *Recommender) Recommend(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	query, err := r.resolveQuery(req)
	if err != nil {
		return nil, err
	}

	k := req.K
	if k <= 0 {
		k = r.cfg.Limits.DefaultK
	}
	if k > r.cfg.Limits.MaxK {
		k = r.cfg.Limits.MaxK
	}

	row, err := r.model.RowOf(query.ID)
	if err != nil {
		return nil, err
	}

	// Over-fetch so preference ranking has room to reorder beyond the cut.
	matches, err := r.similar.FindSimilar(row, k*2, true)
	if err != nil {
		return nil, err
	}

	candidates := make([]recommend.Candidate, 0, len(matches))
	for _, match := range matches {
		id, idErr := r.model.IDOf(match.Row)
		if idErr != nil {
			return nil, idErr
		}
		candidates = append(candidates, recommend.Candidate{ID: id, Score: match.Score})
	}

	totalCandidates := len(candidates)
	personalized := !req.Preferences.IsZero()
	var results []recommend.ScoredResult
	if personalized {
		p := r.applyWeightDefaults(req.Preferences)
		results = r.prefEngine.FilterAndRank(candidates, p, k)
	} else {
		if len(candidates) > k {
			candidates = candidates[:k]
		}
		results = r.enrich(candidates)
	}

	elapsed := time.Since(start)
	mode := "similar"
	if personalized {
		mode = "preferences"
	}
	metrics.RecordRecommendation(mode, elapsed)

	r.logger.Info().
		Str("request_id", requestID).
		Int("query_id", query.ID).
		Str("query_title", query.Title).
		Bool("personalized", personalized).
		Int("results", len(results)).
		Dur("elapsed", elapsed).
		Msg("recommendation served")

	return &Response{
		RequestID:       requestID,
		QueryID:         query.ID,
		QueryTitle:      query.Title,
		Personalized:    personalized,
		Results:         results,
		TotalCandidates: totalCandidates,
		LatencyMS:       elapsed.Milliseconds(),
	}, nil
}

// SimilarByID returns the k most similar items to the given item, by raw
// cosine score without preference adjustment.
func (r *Recommender) SimilarByID(id, k int) ([]recommend.ScoredResult, error) {
	if k <= 0 {
		k = r.cfg.Limits.DefaultK
	}
	if k > r.cfg.Limits.MaxK {
		k = r.cfg.Limits.MaxK
	}

	key := cache.GenerateKey("similar", struct{ ID, K int }{id, k})
	if cached, ok := r.simCache.Get(key); ok {
		return cached.([]recommend.ScoredResult), nil
	}

	row, err := r.model.RowOf(id)
	if err != nil {
		return nil, err
	}
	matches, err := r.similar.FindSimilar(row, k, true)
	if err != nil {
		return nil, err
	}

	candidates := make([]recommend.Candidate, 0, len(matches))
	for _, match := range matches {
		itemID, idErr := r.model.IDOf(match.Row)
		if idErr != nil {
			return nil, idErr
		}
		candidates = append(candidates, recommend.Candidate{ID: itemID, Score: match.Score})
	}

	results := r.enrich(candidates)
	r.simCache.Set(key, results)
	return results, nil
}

func (r *Recommender) resolveQuery(req Request) (recommend.Item, error) {
	if req.ItemID > 0 {
		return r.Item(req.ItemID)
	}
	return r.FindByTitle(req.Title)
}

// applyWeightDefaults fills omitted weights from the configured defaults.
func (r *Recommender) applyWeightDefaults(p recommend.UserPreferences) recommend.UserPreferences {
	if p.GenreWeight == 0 {
		p.GenreWeight = r.cfg.Preferences.GenreWeight
	}
	if p.LanguageWeight == 0 {
		p.LanguageWeight = r.cfg.Preferences.LanguageWeight
	}
	return p
}

func (r *Recommender) enrich(candidates []recommend.Candidate) []recommend.ScoredResult {
	results := make([]recommend.ScoredResult, 0, len(candidates))
	for _, cand := range candidates {
		item, ok := r.itemsByID[cand.ID]
		if !ok {
			continue
		}
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
