// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notelens/notelens/internal/middleware"
)

// Router assembles the chi router. Request identity and logging run on every
// route; metrics and the response cache only on the data endpoints, keeping
// health probes and /metrics scrapes out of both.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.cfg.Server.RateLimitReqs, s.cfg.Server.RateLimitWindow))
		r.Use(middleware.Metrics)
		r.Use(s.cached)

		r.Get("/notes", s.handleSearchNotes)
		r.Get("/hashtags", s.handleSearchHashtags)
		r.Get("/users/{id}", s.handleUserProfile)
		r.Get("/countries/{id}", s.handleCountryProfile)
		r.Get("/rankings/users", s.handleUserRanking)
		r.Get("/rankings/countries", s.handleCountryRanking)
		r.Get("/trends", s.handleTrends)
		r.Get("/stats", s.handleGlobalStats)
	})

	return r
}
