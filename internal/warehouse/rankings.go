// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/notelens/notelens/internal/models"
)

// Ranking metrics the API accepts. Each maps to a vetted datamart column;
// ORDER BY is built only from these values, never from request input.
const (
	MetricWholeOpen           = "history_whole_open"
	MetricWholeCommented      = "history_whole_commented"
	MetricWholeClosed         = "history_whole_closed"
	MetricWholeClosedWithNote = "history_whole_closed_with_comment"
	MetricWholeReopened       = "history_whole_reopened"
	DefaultRankingMetric      = MetricWholeOpen
	DefaultRankingDirection   = "desc"
)

// userRankingMetrics and countryRankingMetrics are the per-entity metric
// allow-lists: metric name as the clients send it to the column it ranks by.
// Both datamarts carry the same activity columns today, but the lists stay
// separate so either side can grow columns the other lacks.
var userRankingMetrics = map[string]string{
	MetricWholeOpen:           "history_whole_open",
	MetricWholeCommented:      "history_whole_commented",
	MetricWholeClosed:         "history_whole_closed",
	MetricWholeClosedWithNote: "history_whole_closed_with_comment",
	MetricWholeReopened:       "history_whole_reopened",
}

var countryRankingMetrics = map[string]string{
	MetricWholeOpen:           "history_whole_open",
	MetricWholeCommented:      "history_whole_commented",
	MetricWholeClosed:         "history_whole_closed",
	MetricWholeClosedWithNote: "history_whole_closed_with_comment",
	MetricWholeReopened:       "history_whole_reopened",
}

var orderDirections = map[string]string{
	"asc":  "ASC",
	"desc": "DESC",
}

// resolveMetric maps a requested metric and direction to a safe ORDER BY
// column and keyword. Empty inputs take the defaults; anything not in the
// allow-lists is ErrInvalidMetric.
func resolveMetric(allowlist map[string]string, metric, direction string) (string, string, error) {
	if metric == "" {
		metric = DefaultRankingMetric
	}
	if direction == "" {
		direction = DefaultRankingDirection
	}
	column, ok := allowlist[metric]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidMetric, metric)
	}
	keyword, ok := orderDirections[strings.ToLower(direction)]
	if !ok {
		return "", "", fmt.Errorf("%w: direction %q", ErrInvalidMetric, direction)
	}
	return column, keyword, nil
}

// RankingParams selects a leaderboard slice.
type RankingParams struct {
	Metric    string
	Direction string
	Page      int
	Limit     int
}

// GetUserRanking returns one page of the contributor leaderboard ordered by
// the requested metric. Ranks are 1-based positions in the ordered result,
// offset by the page, and entities with a NULL metric sort last.
func (db *DB) GetUserRanking(ctx context.Context, params RankingParams) ([]models.RankingEntry, error) {
	column, direction, err := resolveMetric(userRankingMetrics, params.Metric, params.Direction)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT user_id, username, %s
		FROM datamart_users
		ORDER BY %s %s NULLS LAST, user_id ASC
		LIMIT $1 OFFSET $2`, column, column, direction)

	return db.queryRanking(ctx, query, params)
}

// GetCountryRanking returns one page of the country leaderboard.
func (db *DB) GetCountryRanking(ctx context.Context, params RankingParams) ([]models.RankingEntry, error) {
	column, direction, err := resolveMetric(countryRankingMetrics, params.Metric, params.Direction)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT country_id, country_name_en, %s
		FROM datamart_countries
		ORDER BY %s %s NULLS LAST, country_id ASC
		LIMIT $1 OFFSET $2`, column, column, direction)

	return db.queryRanking(ctx, query, params)
}

func (db *DB) queryRanking(ctx context.Context, query string, params RankingParams) ([]models.RankingEntry, error) {
	offset := (params.Page - 1) * params.Limit
	entries := make([]models.RankingEntry, 0, params.Limit)

	err := db.queryAndScan(ctx, query, []interface{}{params.Limit, offset}, func(rows *sql.Rows) error {
		rank := offset
		for rows.Next() {
			var (
				id    int64
				label string
				value interface{}
			)
			if err := rows.Scan(&id, &label, &value); err != nil {
				return err
			}
			rank++
			metric, err := normalizeValue(value, FieldInt)
			if err != nil {
				// NULL passes through as nil; a garbled metric column does not.
				return fmt.Errorf("%w: metric value %s", ErrNormalizationFailure, describeValue(value))
			}
			entries = append(entries, models.RankingEntry{
				Rank:  rank,
				ID:    id,
				Label: label,
				Value: metric,
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
