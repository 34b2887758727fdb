// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

// Package api is the HTTP surface: routing, parameter parsing, response
// envelopes, error mapping and the response cache. Query semantics live in
// the warehouse package; handlers here stay thin.
package api

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/notelens/notelens/internal/logging"
	"github.com/notelens/notelens/internal/middleware"
	"github.com/notelens/notelens/internal/warehouse"
)

// envelope is the success response shape. Pagination is present only on
// paginated list endpoints.
type envelope struct {
	Data       interface{}           `json:"data"`
	Pagination *warehouse.Pagination `json:"pagination,omitempty"`
}

// errorEnvelope is the error response shape. RequestID lets a client quote
// the exact server-side log line when reporting a failure.
type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// writeData writes a 200 with a bare data envelope.
func writeData(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, r, http.StatusOK, envelope{Data: data})
}

// writePage writes a 200 with data plus pagination metadata.
func writePage(w http.ResponseWriter, r *http.Request, data interface{}, p warehouse.Pagination) {
	writeJSON(w, r, http.StatusOK, envelope{Data: data, Pagination: &p})
}

// writeError maps a domain error onto its HTTP shape. See errors.go for the
// taxonomy.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, logIt := classifyError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Driver and normalization detail stays in the logs.
		message = "internal server error"
	}
	if logIt {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	writeJSON(w, r, status, errorEnvelope{Error: apiError{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(r.Context()),
	}})
}
