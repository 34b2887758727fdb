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

// GetUserProfile looks up one contributor's datamart row. An unknown user id
// is ErrNotFound, not an error condition worth logging.
func (db *DB) GetUserProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	const query = `
		SELECT user_id, username, history, trends,
		       working_hours_opening, working_hours_closing, last_activity,
		       countries_opening, countries_closing, hashtags
		FROM datamart_users
		WHERE user_id = $1`

	var (
		id               int64
		username         string
		history          interface{}
		trends           interface{}
		hoursOpen        interface{}
		hoursClose       interface{}
		lastActivity     interface{}
		countriesOpening interface{}
		countriesClosing interface{}
		hashtags         interface{}
	)

	row := db.exec.QueryRowContext(ctx, query, userID)
	err := row.Scan(&id, &username, &history, &trends, &hoursOpen, &hoursClose,
		&lastActivity, &countriesOpening, &countriesClosing, &hashtags)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryFailure("user profile", err)
	}

	last, err := normalizeValue(lastActivity, FieldTimestamp)
	if err != nil {
		last = nil
	}

	return &models.UserProfile{
		UserID:            id,
		Username:          username,
		History:           decodeTrendMap(history),
		Trends:            parseTrendSeries(trends),
		WorkingHoursOpen:  parseHourVector(hoursOpen),
		WorkingHoursClose: parseHourVector(hoursClose),
		LastActivity:      last,
		CountriesOpening:  decodeJSONColumn(countriesOpening),
		CountriesClosing:  decodeJSONColumn(countriesClosing),
		HashtagsUsed:      decodeJSONColumn(hashtags),
	}, nil
}
