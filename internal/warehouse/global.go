// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"database/sql"
	"errors"

	"github.com/notelens/notelens/internal/models"
)

// Trend scopes accepted by GetTrends.
const (
	TrendScopeGlobal  = "global"
	TrendScopeUser    = "user"
	TrendScopeCountry = "country"
)

// TrendParams selects a trend series by scope. EntityID is required for the
// user and country scopes and ignored for global.
type TrendParams struct {
	Type     string
	EntityID *int64
}

// GetGlobalStats returns the warehouse-wide aggregate row. The ETL maintains
// exactly one row in global_stats; a missing row means the warehouse has
// never been populated.
func (db *DB) GetGlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	const query = `
		SELECT total_notes, open_notes, closed_notes, reopened_notes,
		       total_users, total_comments, trends, last_updated
		FROM global_stats
		LIMIT 1`

	var (
		stats       models.GlobalStats
		trends      interface{}
		lastUpdated interface{}
	)

	row := db.exec.QueryRowContext(ctx, query)
	err := row.Scan(&stats.TotalNotes, &stats.OpenNotes, &stats.ClosedNotes,
		&stats.ReopenedNotes, &stats.TotalUsers, &stats.TotalComments,
		&trends, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryFailure("global stats", err)
	}

	stats.Trends = parseTrendSeries(trends)
	if last, err := normalizeValue(lastUpdated, FieldTimestamp); err == nil {
		stats.LastUpdated = last
	}
	return &stats, nil
}

// GetTrends returns the yearly trend series for one scope, plus the opening
// working-hours vector for entity scopes. Unknown entity ids surface as
// ErrNotFound; a malformed or empty trend column is an empty series, never
// an error.
func (db *DB) GetTrends(ctx context.Context, params TrendParams) (*models.TrendsResult, error) {
	if params.Type == TrendScopeGlobal {
		var raw interface{}
		err := db.exec.QueryRowContext(ctx, "SELECT trends FROM global_stats LIMIT 1").Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, queryFailure("trends", err)
		}
		return &models.TrendsResult{
			Type:   params.Type,
			Series: parseTrendSeries(raw),
		}, nil
	}

	var query string
	switch params.Type {
	case TrendScopeUser:
		query = "SELECT trends, working_hours_opening FROM datamart_users WHERE user_id = $1"
	case TrendScopeCountry:
		query = "SELECT trends, working_hours_opening FROM datamart_countries WHERE country_id = $1"
	default:
		return nil, invalidFilter("unknown trend scope %q", params.Type)
	}
	if params.EntityID == nil {
		return nil, invalidFilter("trend scope %q requires an entity id", params.Type)
	}

	var trends, hours interface{}
	err := db.exec.QueryRowContext(ctx, query, *params.EntityID).Scan(&trends, &hours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryFailure("trends", err)
	}

	return &models.TrendsResult{
		Type:         params.Type,
		EntityID:     params.EntityID,
		Series:       parseTrendSeries(trends),
		WorkingHours: parseHourVector(hours),
	}, nil
}
