// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package api

import (
	"net/http"
	"time"

	"github.com/notelens/notelens/internal/cache"
	"github.com/notelens/notelens/internal/config"
	"github.com/notelens/notelens/internal/metrics"
	"github.com/notelens/notelens/internal/warehouse"
)

// Server hosts the HTTP handlers and their collaborators.
type Server struct {
	db    *warehouse.DB
	store cache.Store
	cfg   *config.Config
}

// NewServer wires the handler set.
func NewServer(db *warehouse.DB, store cache.Store, cfg *config.Config) *Server {
	return &Server{db: db, store: store, cfg: cfg}
}

// pageLimits maps the configured page sizing onto the normalizer. Zero
// values fall back to the contract defaults inside the normalizer.
func (s *Server) pageLimits() warehouse.PageLimits {
	return warehouse.PageLimits{
		Default: s.cfg.API.DefaultPageSize,
		Max:     s.cfg.API.MaxPageSize,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, map[string]string{"status": "ok"})
}

// handleReady reports readiness: the process is up and the warehouse
// answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, map[string]string{"status": "ready"})
}

func (s *Server) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	f, err := warehouse.NormalizeFilterLimits(rawFilterFromQuery(r.URL.Query()), s.pageLimits())
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	res, err := s.db.SearchNotes(r.Context(), f)
	metrics.RecordQuery("search_notes", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, res.Rows, res.Pagination)
}

func (s *Server) handleSearchHashtags(w http.ResponseWriter, r *http.Request) {
	f, err := warehouse.NormalizeFilterLimits(rawFilterFromQuery(r.URL.Query()), s.pageLimits())
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	res, err := s.db.SearchHashtags(r.Context(), f)
	metrics.RecordQuery("search_hashtags", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, res.Rows, res.Pagination)
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	profile, err := s.db.GetUserProfile(r.Context(), id)
	metrics.RecordQuery("user_profile", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, profile)
}

func (s *Server) handleCountryProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	profile, err := s.db.GetCountryProfile(r.Context(), id)
	metrics.RecordQuery("country_profile", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, profile)
}

func (s *Server) handleUserRanking(w http.ResponseWriter, r *http.Request) {
	params, err := rankingParamsFromQuery(r.URL.Query(), s.pageLimits())
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	entries, err := s.db.GetUserRanking(r.Context(), params)
	metrics.RecordQuery("user_ranking", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, entries)
}

func (s *Server) handleCountryRanking(w http.ResponseWriter, r *http.Request) {
	params, err := rankingParamsFromQuery(r.URL.Query(), s.pageLimits())
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	entries, err := s.db.GetCountryRanking(r.Context(), params)
	metrics.RecordQuery("country_ranking", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, entries)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	params, err := trendParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	res, err := s.db.GetTrends(r.Context(), params)
	metrics.RecordQuery("trends", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, res)
}

func (s *Server) handleGlobalStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := s.db.GetGlobalStats(r.Context())
	metrics.RecordQuery("global_stats", time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, stats)
}
