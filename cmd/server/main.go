// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

// Command server runs the Notelens analytics API: a read-only HTTP surface
// over the OSM-notes data warehouse. All state lives in Postgres and the
// optional Redis response cache; the process itself is stateless and safe to
// run in multiple instances.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/notelens/notelens/internal/api"
	"github.com/notelens/notelens/internal/cache"
	"github.com/notelens/notelens/internal/config"
	"github.com/notelens/notelens/internal/logging"
	"github.com/notelens/notelens/internal/warehouse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("starting notelens")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config) error {
	db, err := warehouse.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	err = db.Ping(ctx)
	cancel()
	if err != nil {
		return err
	}
	logging.Info().Str("database", cfg.Database.Name).Msg("warehouse connection established")

	store, err := cache.New(&cfg.Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewServer(db, store, cfg).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info().Msg("shutdown complete")
	return nil
}
