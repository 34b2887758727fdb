// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/notelens/notelens/internal/config"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}

	s.Set(ctx, "k", []byte("v"), 0)
	got, ok := s.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("Get(k) = %q, %v", got, ok)
	}

	s.Delete(ctx, "k")
	if _, ok := s.Get(ctx, "k"); ok {
		t.Error("Get after Delete = hit, want miss")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := s.Get(ctx, "k"); ok {
		t.Error("expired entry still served")
	}
	// The lazy path also evicted the entry.
	if s.Len() != 0 {
		t.Errorf("Len() = %d after expiry read, want 0", s.Len())
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "a", []byte("1"), 5*time.Millisecond)
	s.Set(ctx, "b", []byte("2"), time.Hour)
	time.Sleep(20 * time.Millisecond)
	s.sweep()

	if s.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", s.Len())
	}
	if _, ok := s.Get(ctx, "b"); !ok {
		t.Error("fresh entry swept")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(&config.CacheConfig{
		Backend:   config.CacheBackendRedis,
		TTL:       time.Minute,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	defer s.Close()

	s.Set(ctx, "notes?page=1", []byte(`{"data":[]}`), 0)
	got, ok := s.Get(ctx, "notes?page=1")
	require.True(t, ok)
	require.JSONEq(t, `{"data":[]}`, string(got))

	// Keys are namespaced so other users of the instance stay untouched.
	require.True(t, mr.Exists(redisKeyPrefix+"notes?page=1"))

	s.Delete(ctx, "notes?page=1")
	_, ok = s.Get(ctx, "notes?page=1")
	require.False(t, ok)
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(&config.CacheConfig{
		Backend:   config.CacheBackendRedis,
		TTL:       time.Minute,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	defer s.Close()

	s.Set(ctx, "k", []byte("v"), 30*time.Second)
	mr.FastForward(time.Minute)

	_, ok := s.Get(ctx, "k")
	require.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(&config.CacheConfig{Backend: config.CacheBackendMemory, TTL: time.Minute})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)
	s.Close()

	_, err = New(&config.CacheConfig{Backend: "memcached"})
	require.Error(t, err)

	_, err = New(&config.CacheConfig{Backend: config.CacheBackendRedis, RedisAddr: "127.0.0.1:1"})
	require.Error(t, err)
}
