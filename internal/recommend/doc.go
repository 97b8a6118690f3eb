// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend defines the shared types, configuration, and error
// taxonomy for the recommendation core.
//
// The core is split into three stages, each in its own subpackage:
//
//   - features: turns item attributes (overview text, genre sets, rating)
//     into one dense feature matrix with a stable id/row mapping
//   - similarity: exact brute-force cosine retrieval over that matrix
//   - prefs: soft preference-based re-ranking of retrieved candidates
//
// This package has no dependencies on the subpackages so that all three can
// share its types without import cycles. Wiring the stages together is the
// job of the pipeline package.
//
// # Thread Safety
//
// Every structure produced by a fit operation (feature model, similarity
// engine, preference engine) is immutable after construction and safe for
// concurrent reads. Fitting itself is an exclusive phase that must complete
// before query traffic starts.
package recommend
