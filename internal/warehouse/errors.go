// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"errors"
	"fmt"
)

// Error taxonomy for the warehouse layer. The API layer maps these onto HTTP
// status codes; everything not matched there is treated as an internal error.
var (
	// ErrInvalidFilter indicates a filter failed shape, range, or enum
	// validation. Raised at the input boundary, before any query runs.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrInvalidMetric indicates a requested ranking metric is not in the
	// allow-list for that ranking type.
	ErrInvalidMetric = errors.New("invalid ranking metric")

	// ErrNotFound indicates a single-entity lookup matched zero rows.
	// This is an expected outcome, not logged as an error.
	ErrNotFound = errors.New("not found")

	// ErrNormalizationFailure indicates a required numeric field failed to
	// parse from the driver's representation. This signals a broken
	// assumption about warehouse column types and is never retried.
	ErrNormalizationFailure = errors.New("result normalization failed")

	// ErrQueryFailure indicates the warehouse rejected or failed a query.
	// Queries are not assumed safe to blindly repeat, so no retries.
	ErrQueryFailure = errors.New("query execution failed")
)

// invalidFilter wraps a reason into ErrInvalidFilter.
func invalidFilter(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidFilter, fmt.Sprintf(format, args...))
}

// queryFailure wraps a driver error into ErrQueryFailure, preserving the
// operation name for logging at the service boundary.
func queryFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrQueryFailure, op, err)
}
