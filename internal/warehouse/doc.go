// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

// Package warehouse provides read-only query access to the precomputed OSM
// notes data warehouse (Postgres).
//
// The package owns the full query-construction pipeline: normalizing raw
// request filters into an immutable Filter record, compiling the record into
// a parameterized predicate set, deriving an equivalent count query, executing
// data and count statements concurrently, and normalizing driver rows into
// type-stable API rows.
//
// Nothing in this package mutates the warehouse. All statements are SELECTs
// and no cross-request state is kept beyond the connection pool.
package warehouse
