// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a fatal fit-time problem: the item collection
// or feature settings cannot produce any usable feature columns. It is not
// retryable; the caller must fix the configuration or the data.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// NotFoundError reports an id or row lookup against a key that does not
// exist in the current mapping. It signals a stale reference or a lookup
// against the wrong matrix generation; callers should treat it as "no
// recommendation possible for this input", not crash.
type NotFoundError struct {
	// Kind names the missing key space, e.g. "item", "row", "title".
	Kind string

	// Key is the missing key rendered as a string.
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

// RangeError reports a query row index outside the matrix bounds. Always a
// caller precondition violation.
type RangeError struct {
	Index int
	Size  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("row index %d out of bounds [0, %d)", e.Index, e.Size)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NotFoundItem builds a NotFoundError for an item id.
func NotFoundItem(id int) *NotFoundError {
	return &NotFoundError{Kind: "item", Key: fmt.Sprint(id)}
}

// NotFoundRow builds a NotFoundError for a matrix row.
func NotFoundRow(row int) *NotFoundError {
	return &NotFoundError{Kind: "row", Key: fmt.Sprint(row)}
}
