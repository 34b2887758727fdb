// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package api

import (
	"errors"
	"net/http"

	"github.com/notelens/notelens/internal/warehouse"
)

// Error codes returned in the error envelope.
const (
	codeInvalidRequest = "invalid_request"
	codeInvalidMetric  = "invalid_metric"
	codeNotFound       = "not_found"
	codeInternal       = "internal_error"
)

// classifyError maps a domain error to (status, code, log-as-error).
// Client mistakes and missing entities are expected traffic and never logged
// at error level; everything else is a server-side fault.
func classifyError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, warehouse.ErrInvalidFilter):
		return http.StatusBadRequest, codeInvalidRequest, false
	case errors.Is(err, warehouse.ErrInvalidMetric):
		return http.StatusBadRequest, codeInvalidMetric, false
	case errors.Is(err, warehouse.ErrNotFound):
		return http.StatusNotFound, codeNotFound, false
	default:
		return http.StatusInternalServerError, codeInternal, true
	}
}
