// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/notelens/notelens/internal/config"
)

// Executor abstracts the SQL connection pool. The concrete pool is owned by
// the caller; passing the capability explicitly keeps the query layer free of
// global state and deterministic under test.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB provides read-only access to the notes warehouse.
type DB struct {
	exec Executor
	conn *sql.DB // nil when built via NewWithExecutor
}

// New opens a connection pool against the warehouse and returns a DB.
// The pool is tuned from cfg; the schema is never touched.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse connection: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &DB{exec: conn, conn: conn}, nil
}

// NewWithExecutor builds a DB around an existing executor.
// Used by tests to substitute a mock pool.
func NewWithExecutor(exec Executor) *DB {
	return &DB{exec: exec}
}

// Ping checks the warehouse connection.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("warehouse connection is not a pool")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the underlying pool, if this DB owns one.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// queryAndScan executes a query and hands the full result set to scanner,
// which owns iteration. Reduces the query-scan-collect boilerplate across
// entity methods; errors raised by scanner pass through unwrapped so
// normalization failures keep their identity.
func (db *DB) queryAndScan(ctx context.Context, query string, args []interface{}, scanner func(*sql.Rows) error) error {
	rows, err := db.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return queryFailure("query", err)
	}
	defer rows.Close()

	return scanner(rows)
}
