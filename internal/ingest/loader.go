// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package ingest loads item collections from CSV datasets.
//
// A ColumnMapping binds dataset-specific header names to item fields, so
// TMDB exports, MovieLens dumps, and custom CSVs all load through the same
// path. Preprocessing is deterministic: missing text fields get placeholder
// defaults, malformed numerics collapse to zero, duplicate ids keep the
// first occurrence, and rows without a positive id are dropped.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Placeholder values substituted for missing fields.
const (
	defaultOverview = "No description available"
	defaultTitle    = "Unknown Title"
	defaultGenre    = "Unknown"
	defaultLanguage = "unknown"
)

// ColumnMapping binds CSV header names to item fields. The required columns
// must exist in the header; optional columns are used when present and named.
type ColumnMapping struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Genres   string `json:"genres" validate:"required"`
	Overview string `json:"overview" validate:"required"`
	Language string `json:"language" validate:"required"`
	Rating   string `json:"rating" validate:"required"`

	// Optional columns. Empty means "not in this dataset".
	ReleaseDate string `json:"release_date,omitempty"`
	Popularity  string `json:"popularity,omitempty"`
	VoteCount   string `json:"vote_count,omitempty"`
	Runtime     string `json:"runtime,omitempty"`
}

// DefaultColumnMapping matches the canonical dataset header.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		ID:          "movie_id",
		Title:       "title",
		Genres:      "genres",
		Overview:    "overview",
		Language:    "language",
		Rating:      "rating",
		ReleaseDate: "release_date",
	}
}

// TMDBColumnMapping matches The Movie Database export format.
func TMDBColumnMapping() ColumnMapping {
	return ColumnMapping{
		ID:          "id",
		Title:       "title",
		Genres:      "genres",
		Overview:    "overview",
		Language:    "original_language",
		Rating:      "vote_average",
		ReleaseDate: "release_date",
		Popularity:  "popularity",
		VoteCount:   "vote_count",
		Runtime:     "runtime",
	}
}

var validate = validator.New()

// Loader reads item collections from CSV files.
type Loader struct {
	mapping ColumnMapping
	logger  zerolog.Logger
}

// NewLoader creates a loader for the given column mapping.
func NewLoader(mapping ColumnMapping, logger zerolog.Logger) (*Loader, error) {
	if err := validate.Struct(mapping); err != nil {
		return nil, fmt.Errorf("invalid column mapping: %w", err)
	}
	return &Loader{
		mapping: mapping,
		logger:  logger.With().Str("component", "ingest").Logger(),
	}, nil
}

// LoadFile loads items from a CSV file on disk.
func (l *Loader) LoadFile(path string) ([]recommend.Item, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	items, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return items, nil
}

// Load reads items from CSV data. The first record must be the header.
func (l *Loader) Load(r io.Reader) ([]recommend.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := l.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		items   []recommend.Item
		seen    = make(map[int]struct{})
		raw     int
		dropped int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", raw+2, err)
		}
		raw++

		item, ok := l.buildItem(cols, record)
		if !ok {
			dropped++
			continue
		}
		if _, dup := seen[item.ID]; dup {
			dropped++
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	l.logger.Info().
		Int("raw_records", raw).
		Int("items", len(items)).
		Int("dropped", dropped).
		Msg("loaded dataset")

	return items, nil
}

// columnIndexes holds resolved header positions. -1 marks an absent optional
// column.
type columnIndexes struct {
	id, title, genres, overview, language, rating int
	releaseDate, popularity, voteCount, runtime   int
}

func (l *Loader) resolveColumns(header []string) (columnIndexes, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	find := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	cols := columnIndexes{
		id:          find(l.mapping.ID),
		title:       find(l.mapping.Title),
		genres:      find(l.mapping.Genres),
		overview:    find(l.mapping.Overview),
		language:    find(l.mapping.Language),
		rating:      find(l.mapping.Rating),
		releaseDate: find(l.mapping.ReleaseDate),
		popularity:  find(l.mapping.Popularity),
		voteCount:   find(l.mapping.VoteCount),
		runtime:     find(l.mapping.Runtime),
	}

	var missing []string
	for _, req := range []struct {
		name string
		idx  int
	}{
		{l.mapping.ID, cols.id},
		{l.mapping.Title, cols.title},
		{l.mapping.Genres, cols.genres},
		{l.mapping.Overview, cols.overview},
		{l.mapping.Language, cols.language},
		{l.mapping.Rating, cols.rating},
	} {
		if req.idx < 0 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		available := make([]string, 0, len(pos))
		for name := range pos {
			available = append(available, name)
		}
		sort.Strings(available)
		return cols, fmt.Errorf("missing required columns %v (available: %v)", missing, available)
	}

	return cols, nil
}

func (l *Loader) buildItem(cols columnIndexes, record []string) (recommend.Item, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id, err := strconv.Atoi(field(cols.id))
	if err != nil || id <= 0 {
		l.logger.Debug().Str("raw_id", field(cols.id)).Msg("dropping row with invalid id")
		return recommend.Item{}, false
	}

	title := field(cols.title)
	if title == "" {
		title = defaultTitle
	}
	overview := field(cols.overview)
	if overview == "" {
		overview = defaultOverview
	}
	language := field(cols.language)
	if language == "" {
		language = defaultLanguage
	}

	rating, err := strconv.ParseFloat(field(cols.rating), 64)
	if err != nil {
		rating = 0
	}

	item := recommend.Item{
		ID:       id,
		Title:    title,
		Genres:   ParseGenres(field(cols.genres)),
		Overview: overview,
		Language: language,
		Rating:   recommend.ClampRating(rating),
	}

	if details := l.buildDetails(cols, field); details != nil {
		item.Details = details
	}

	return item, true
}

func (l *Loader) buildDetails(cols columnIndexes, field func(int) string) *recommend.ItemDetails {
	var (
		details recommend.ItemDetails
		any     bool
	)

	if v := field(cols.releaseDate); v != "" {
		if year := parseReleaseYear(v); year > 0 {
			details.ReleaseYear = year
			any = true
		}
	}
	if v := field(cols.popularity); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			details.Popularity = f
			any = true
		}
	}
	if v := field(cols.voteCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			details.VoteCount = n
			any = true
		}
	}
	if v := field(cols.runtime); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			details.Runtime = int(f)
			any = true
		}
	}

	if !any {
		return nil
	}
	return &details
}

// parseReleaseYear extracts a year from a date string. Accepts full dates
// and bare years.
func parseReleaseYear(s string) int {
	for _, layout := range []string{"2006-01-02", "2006/01/02", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	return 0
}

// tmdbGenre is one entry of a JSON-encoded genre list.
type tmdbGenre struct {
	Name string `json:"name"`
}

// ParseGenres splits a raw genre cell into a clean list. Comma and pipe
// separated strings are supported, as is the TMDB JSON form
// [{"name": "Action"}, ...]. Duplicates are collapsed keeping first-seen
// order. Empty input yields the Unknown genre.
func ParseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{defaultGenre}
	}

	if strings.HasPrefix(raw, "[") {
		var entries []tmdbGenre
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name)
			}
			return cleanGenres(names)
		}
	}

	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	return cleanGenres(strings.Split(raw, sep))
}

// cleanGenres trims entries and collapses duplicates, keeping first-seen
// order. An all-empty result falls back to the Unknown genre.
func cleanGenres(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	genres := make([]string, 0, len(names))
	for _, g := range names {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	if len(genres) == 0 {
		return []string{defaultGenre}
	}
	return genres
}
