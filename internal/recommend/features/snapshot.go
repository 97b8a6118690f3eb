// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// SnapshotVersion is bumped whenever the snapshot layout changes
// incompatibly. Loaders reject snapshots with a different version.
const SnapshotVersion = 1

// Snapshot is the serializable fitted state of a Model. It carries everything
// needed to rebuild the model against the same item collection without
// refitting: the vocabulary, the genre classes, the row ordering, and a
// fingerprint tying the snapshot to the collection it was fitted on.
//
// All fields are exported for gob encoding.
type Snapshot struct {
	Version     int
	Fingerprint string
	CreatedAt   time.Time
	Terms       []string
	IDF         []float64
	Classes     []string
	IDs         []int
	Layout      Layout
}

// Snapshot captures the model's fitted state for persistence.
func (m *Model) Snapshot(fingerprint string) *Snapshot {
	return &Snapshot{
		Version:     SnapshotVersion,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
		Terms:       m.vocab.Terms(),
		IDF:         m.vocab.IDF(),
		Classes:     m.genres.Classes(),
		IDs:         m.index.IDs(),
		Layout:      m.layout,
	}
}

// ModelFromSnapshot rebuilds a model from persisted fitted state and the item
// collection it was fitted on, transforming rows without refitting the
// vocabulary or genre classes. The items must match the snapshot's row
// ordering; callers are expected to have verified the collection fingerprint
// before restoring.
func ModelFromSnapshot(snap *Snapshot, items []recommend.Item, cfg recommend.FeatureConfig) (*Model, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported (want %d)", snap.Version, SnapshotVersion)
	}
	if len(snap.IDs) != len(items) {
		return nil, fmt.Errorf("snapshot covers %d items, collection has %d", len(snap.IDs), len(items))
	}
	for i := range items {
		if items[i].ID != snap.IDs[i] {
			return nil, fmt.Errorf("snapshot row %d holds item %d, collection has %d", i, snap.IDs[i], items[i].ID)
		}
	}
	if snap.Layout.TextCols != len(snap.Terms) {
		return nil, fmt.Errorf("snapshot layout declares %d text columns, vocabulary has %d terms",
			snap.Layout.TextCols, len(snap.Terms))
	}

	vocab := NewVocabulary(snap.Terms, snap.IDF)
	genres := NewGenreSet(snap.Classes)
	index := NewIndex(snap.IDs)
	layout := snap.Layout

	vectorizer := NewVectorizer(cfg.NgramMin, cfg.NgramMax, cfg.MaxFeatures, cfg.MinDocFreq)
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

	return &Model{
		index:  index,
		vocab:  vocab,
		genres: genres,
		layout: layout,
		matrix: matrix,
		cfg:    cfg,
	}, nil
}
