// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "fmt"

// Config contains all configuration for the recommendation core.
type Config struct {
	// Features contains parameters for feature construction.
	Features FeatureConfig `json:"features"`

	// Preferences contains default weights for preference re-ranking.
	Preferences PreferenceConfig `json:"preferences"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`
}

// FeatureConfig contains parameters for the feature builder.
type FeatureConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary size. When the corpus exceeds
	// the cap, terms are selected by highest document frequency.
	MaxFeatures int `json:"max_features"`

	// NgramMin and NgramMax bound the n-gram range for text features.
	// The default (1, 2) produces unigrams and bigrams.
	NgramMin int `json:"ngram_min"`
	NgramMax int `json:"ngram_max"`

	// MinDocFreq is the minimum number of documents a term must appear in.
	MinDocFreq int `json:"min_doc_freq"`

	// IncludeGenres toggles the genre one-hot block.
	IncludeGenres bool `json:"include_genres"`

	// IncludeRating toggles the scaled-rating column.
	IncludeRating bool `json:"include_rating"`
}

// PreferenceConfig contains default weights applied when a request supplies
// preferences without explicit weights.
type PreferenceConfig struct {
	// GenreWeight is the default genre-overlap boost weight.
	GenreWeight float64 `json:"genre_weight"`

	// LanguageWeight is the default language-match boost weight.
	LanguageWeight float64 `json:"language_weight"`
}

// LimitsConfig contains operational limits for the pipeline.
type LimitsConfig struct {
	// DefaultK is the result count when a request leaves K at zero.
	DefaultK int `json:"default_k"`

	// MaxK caps the requested result count.
	MaxK int `json:"max_k"`

	// BatchWorkers is the number of parallel workers for batch similarity
	// queries. Per-query results are unaffected by the worker count.
	BatchWorkers int `json:"batch_workers"`
}

// DefaultConfig returns the default core configuration.
func DefaultConfig() *Config {
	return &Config{
		Features: FeatureConfig{
			MaxFeatures:   5000,
			NgramMin:      1,
			NgramMax:      2,
			MinDocFreq:    1,
			IncludeGenres: true,
			IncludeRating: true,
		},
		Preferences: PreferenceConfig{
			GenreWeight:    0.3,
			LanguageWeight: 0.2,
		},
		Limits: LimitsConfig{
			DefaultK:     10,
			MaxK:         100,
			BatchWorkers: 4,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Features.MaxFeatures <= 0 {
		return fmt.Errorf("features.max_features must be positive, got %d", c.Features.MaxFeatures)
	}
	if c.Features.NgramMin < 1 {
		return fmt.Errorf("features.ngram_min must be >= 1, got %d", c.Features.NgramMin)
	}
	if c.Features.NgramMax < c.Features.NgramMin {
		return fmt.Errorf("features.ngram_max (%d) must be >= ngram_min (%d)",
			c.Features.NgramMax, c.Features.NgramMin)
	}
	if c.Features.MinDocFreq < 1 {
		return fmt.Errorf("features.min_doc_freq must be >= 1, got %d", c.Features.MinDocFreq)
	}
	if c.Preferences.GenreWeight < 0 || c.Preferences.LanguageWeight < 0 {
		return fmt.Errorf("preference weights must be non-negative")
	}
	if c.Limits.DefaultK <= 0 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k (%d) must be >= default_k (%d)",
			c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.BatchWorkers <= 0 {
		return fmt.Errorf("limits.batch_workers must be positive, got %d", c.Limits.BatchWorkers)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
