// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package api

import (
	"bytes"
	"net/http"

	"github.com/notelens/notelens/internal/metrics"
)

// cached serves GET responses from the response cache. The key is the full
// request URI, so two requests differing only in parameter order occupy two
// slots; that wastes a little memory but never serves the wrong page.
// Only 200 responses are stored. Invalidation is TTL-only since the
// warehouse changes only when the ETL runs.
func (s *Server) cached(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if body, ok := s.store.Get(r.Context(), key); ok {
			metrics.RecordCacheLookup(true)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body) //nolint:errcheck
			return
		}
		metrics.RecordCacheLookup(false)

		rec := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			s.store.Set(r.Context(), key, rec.body.Bytes(), 0)
		}
	})
}

// captureWriter tees the response body so a successful page can be cached
// after it is written to the client.
type captureWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}
