// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Builder constructs feature models from item collections.
type Builder struct {
	cfg    recommend.FeatureConfig
	logger zerolog.Logger
}

// NewBuilder creates a feature builder. Zero-valued numeric settings fall
// back to the defaults from recommend.DefaultConfig.
func NewBuilder(cfg recommend.FeatureConfig, logger zerolog.Logger) *Builder {
	def := recommend.DefaultConfig().Features
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = def.MaxFeatures
	}
	if cfg.NgramMin < 1 {
		cfg.NgramMin = def.NgramMin
	}
	if cfg.NgramMax < cfg.NgramMin {
		cfg.NgramMax = def.NgramMax
		if cfg.NgramMax < cfg.NgramMin {
			cfg.NgramMax = cfg.NgramMin
		}
	}
	if cfg.MinDocFreq < 1 {
		cfg.MinDocFreq = def.MinDocFreq
	}

	return &Builder{
		cfg:    cfg,
		logger: logger.With().Str("component", "features").Logger(),
	}
}

// Model is the immutable result of one fit pass: the matrix together with
// every piece of fitted state needed to interpret or reproduce it.
type Model struct {
	index  *Index
	vocab  *Vocabulary
	genres *GenreSet
	layout Layout
	matrix *Matrix
	cfg    recommend.FeatureConfig
}

// FitTransform fits all feature blocks over the item collection and returns
// the resulting model. Stage order is fixed: index, text, genres, rating,
// concatenation; later stages reuse state fitted in the same pass.
//
// Returns a ConfigurationError when items is empty or when the fitted
// feature blocks produce zero total columns.
func (b *Builder) FitTransform(items []recommend.Item) (*Model, error) {
	if len(items) == 0 {
		return nil, &recommend.ConfigurationError{Reason: "cannot fit features on an empty item collection"}
	}

	index := indexItems(items)

	docs := make([]string, len(items))
	for i := range items {
		docs[i] = items[i].Overview
	}
	vectorizer := NewVectorizer(b.cfg.NgramMin, b.cfg.NgramMax, b.cfg.MaxFeatures, b.cfg.MinDocFreq)
	vocab := vectorizer.Fit(docs)

	genres := NewGenreSet(nil)
	if b.cfg.IncludeGenres {
		genres = FitGenres(items)
	}

	layout := Layout{
		TextCols:  vocab.Len(),
		GenreCols: genres.Len(),
	}
	if b.cfg.IncludeRating {
		layout.RatingCols = 1
	}
	if layout.TotalCols() == 0 {
		return nil, &recommend.ConfigurationError{
			Reason: "feature configuration produced zero columns (empty vocabulary and no genre or rating blocks)",
		}
	}

	matrix := NewMatrix(len(items), layout.TotalCols())
	genreLo, genreHi := layout.GenreRange()
	for i := range items {
		row := matrix.Row(i)
		vectorizer.Transform(vocab, items[i].Overview, row[:layout.TextCols])
		if layout.GenreCols > 0 {
			genres.Transform(items[i].Genres, row[genreLo:genreHi])
		}
		if layout.RatingCols > 0 {
			row[layout.TotalCols()-1] = items[i].Rating / 10.0
		}
	}

	b.logger.Info().
		Int("items", len(items)).
		Int("text_cols", layout.TextCols).
		Int("genre_cols", layout.GenreCols).
		Int("rating_cols", layout.RatingCols).
		Msg("fitted feature matrix")

	return &Model{
		index:  index,
		vocab:  vocab,
		genres: genres,
		layout: layout,
		matrix: matrix,
		cfg:    b.cfg,
	}, nil
}

// RowOf returns the matrix row for an item id.
func (m *Model) RowOf(id int) (int, error) { return m.index.RowOf(id) }

// IDOf returns the item id for a matrix row.
func (m *Model) IDOf(row int) (int, error) { return m.index.IDOf(row) }

// Matrix returns the fitted feature matrix.
func (m *Model) Matrix() *Matrix { return m.matrix }

// Layout returns the feature block layout.
func (m *Model) Layout() Layout { return m.layout }

// Vocabulary returns the fitted text vocabulary.
func (m *Model) Vocabulary() *Vocabulary { return m.vocab }

// Genres returns the fitted genre vocabulary.
func (m *Model) Genres() *GenreSet { return m.genres }

// Fingerprint computes a stable digest over an item collection and feature
// configuration. Two equal fingerprints mean a cached fitted state is valid
// to reuse, since fitting is deterministic.
func Fingerprint(items []recommend.Item, cfg recommend.FeatureConfig) string {
	h := sha256.New()
	fmt.Fprintf(h, "cfg:%d:%d:%d:%d:%t:%t\n",
		cfg.MaxFeatures, cfg.NgramMin, cfg.NgramMax, cfg.MinDocFreq,
		cfg.IncludeGenres, cfg.IncludeRating)
	for i := range items {
		fmt.Fprintf(h, "%d\x1f%s\x1f%s\x1f%.4f\x1f", items[i].ID, items[i].Overview, items[i].Language, items[i].Rating)
		for _, g := range items[i].Genres {
			fmt.Fprintf(h, "%s\x1e", g)
		}
		fmt.Fprint(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}
