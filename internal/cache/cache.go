// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

// Package cache provides the response cache behind the read endpoints.
// Warehouse data changes only when the ETL runs, so short-TTL caching of
// whole response bodies is safe and cheap. Two backends exist: an in-process
// store for single instances and Redis for multi-instance deployments.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/notelens/notelens/internal/config"
)

// Store is a TTL'd byte cache keyed by normalized request URL.
type Store interface {
	// Get returns the cached value and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl. A zero ttl uses the store default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete evicts a key. Missing keys are a no-op.
	Delete(ctx context.Context, key string)
	// Close releases backend resources.
	Close() error
}

// New builds the Store selected by configuration.
func New(cfg *config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return NewMemoryStore(cfg.TTL), nil
	case config.CacheBackendRedis:
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
