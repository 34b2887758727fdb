// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"database/sql"
	"sync"
)

// SearchResult carries one page of rows plus its pagination metadata.
type SearchResult struct {
	Rows       []map[string]interface{}
	Pagination Pagination
}

// runSearch executes a page query and its count query concurrently and
// assembles the SearchResult. The first error wins; the partial result from
// the other goroutine is discarded.
func (db *DB) runSearch(ctx context.Context, dataQuery string, dataArgs []interface{},
	countQuery string, countArgs []interface{}, specs []FieldSpec, page, limit int) (*SearchResult, error) {

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		rows     []map[string]interface{}
		total    int64
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		err := db.queryAndScan(ctx, dataQuery, dataArgs, func(r *sql.Rows) error {
			scanned, err := scanRows(r, specs)
			if err != nil {
				return err
			}
			mu.Lock()
			rows = scanned
			mu.Unlock()
			return nil
		})
		if err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var n int64
		if err := db.exec.QueryRowContext(ctx, countQuery, countArgs...).Scan(&n); err != nil {
			fail(queryFailure("count", err))
			return
		}
		mu.Lock()
		total = n
		mu.Unlock()
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &SearchResult{
		Rows:       rows,
		Pagination: Paginate(page, limit, total),
	}, nil
}
