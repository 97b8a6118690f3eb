// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// sampleRows is a small, well-known dataset in the canonical header format.
var sampleRows = [][]string{
	{"movie_id", "title", "genres", "overview", "language", "rating", "release_date"},
	{"1", "The Matrix", "Action, Sci-Fi", "A computer hacker learns about the true nature of reality and his role in the war against its controllers.", "en", "8.7", "1999-03-31"},
	{"2", "Inception", "Action, Sci-Fi, Thriller", "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.", "en", "8.8", "2010-07-16"},
	{"3", "Interstellar", "Sci-Fi, Drama, Adventure", "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.", "en", "8.6", "2014-11-07"},
	{"4", "The Dark Knight", "Action, Crime, Drama", "When the menace known as the Joker wreaks havoc on Gotham, Batman must accept one of the greatest tests.", "en", "9.0", "2008-07-18"},
	{"5", "Pulp Fiction", "Crime, Drama", "The lives of two mob hitmen, a boxer, and a pair of diner bandits intertwine in four tales of violence.", "en", "8.9", "1994-10-14"},
	{"6", "Forrest Gump", "Drama, Romance", "The presidencies of Kennedy and Johnson unfold through the perspective of an Alabama man.", "en", "8.8", "1994-07-06"},
	{"7", "The Shawshank Redemption", "Drama", "Two imprisoned men bond over a number of years, finding solace and eventual redemption.", "en", "9.3", "1994-09-23"},
	{"8", "The Godfather", "Crime, Drama", "The aging patriarch of an organized crime dynasty transfers control to his reluctant son.", "en", "9.2", "1972-03-24"},
	{"9", "Schindler's List", "Biography, Drama, History", "In German-occupied Poland, industrialist Oskar Schindler saves his Jewish employees from the Holocaust.", "en", "9.0", "1993-12-15"},
	{"10", "Fight Club", "Drama", "An insomniac office worker and a soap salesman build an underground fight club.", "en", "8.8", "1999-10-15"},
}

// WriteSampleDataset writes a ten-movie sample CSV to path, creating parent
// directories as needed. Useful for first runs and integration tests.
func WriteSampleDataset(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create dataset directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return fmt.Errorf("create sample dataset: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(sampleRows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write sample dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close sample dataset: %w", err)
	}
	return nil
}
