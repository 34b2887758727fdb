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

// GetCountryProfile looks up one country's datamart row.
// An unknown country id is ErrNotFound.
func (db *DB) GetCountryProfile(ctx context.Context, countryID int64) (*models.CountryProfile, error) {
	const query = `
		SELECT country_id, country_name, country_name_en, history, trends,
		       working_hours_opening, working_hours_closing, last_activity,
		       users_opening, users_closing, hashtags
		FROM datamart_countries
		WHERE country_id = $1`

	var (
		id           int64
		name         string
		nameEN       string
		history      interface{}
		trends       interface{}
		hoursOpen    interface{}
		hoursClose   interface{}
		lastActivity interface{}
		usersOpening interface{}
		usersClosing interface{}
		hashtags     interface{}
	)

	row := db.exec.QueryRowContext(ctx, query, countryID)
	err := row.Scan(&id, &name, &nameEN, &history, &trends, &hoursOpen, &hoursClose,
		&lastActivity, &usersOpening, &usersClosing, &hashtags)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryFailure("country profile", err)
	}

	last, err := normalizeValue(lastActivity, FieldTimestamp)
	if err != nil {
		last = nil
	}

	return &models.CountryProfile{
		CountryID:         id,
		CountryName:       name,
		CountryNameEN:     nameEN,
		History:           decodeTrendMap(history),
		Trends:            parseTrendSeries(trends),
		WorkingHoursOpen:  parseHourVector(hoursOpen),
		WorkingHoursClose: parseHourVector(hoursClose),
		LastActivity:      last,
		UsersOpening:      decodeJSONColumn(usersOpening),
		UsersClosing:      decodeJSONColumn(usersClosing),
		HashtagsUsed:      decodeJSONColumn(hashtags),
	}, nil
}
