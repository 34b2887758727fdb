// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var userProfileCols = []string{
	"user_id", "username", "history", "trends",
	"working_hours_opening", "working_hours_closing", "last_activity",
	"countries_opening", "countries_closing", "hashtags",
}

func TestGetUserProfile(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT user_id, username, history, trends").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(userProfileCols).AddRow(
			int64(42), "mapper_a",
			[]byte(`{"whole_open": 120, "whole_closed": 80}`),
			[]byte(`{"2023": {"open": 10, "closed": 4}, "2022": {"open": 2, "closed": 1}}`),
			[]byte(`[0,0,5,9]`),
			nil,
			"2024-03-15 10:30:00",
			[]byte(`[{"country_id": 76, "count": 50}]`),
			nil,
			[]byte(`["#mapathon"]`),
		))

	p, err := db.GetUserProfile(context.Background(), 42)
	require.NoError(t, err)

	require.Equal(t, int64(42), p.UserID)
	require.Equal(t, "mapper_a", p.Username)
	require.NotNil(t, p.History)

	require.Len(t, p.Trends, 2)
	require.Equal(t, "2022", p.Trends[0].Year) // ascending years
	require.Equal(t, int64(10), p.Trends[1].Open)

	require.Equal(t, []int64{0, 0, 5, 9}, p.WorkingHoursOpen)
	require.Empty(t, p.WorkingHoursClose)
	require.Equal(t, "2024-03-15T10:30:00Z", p.LastActivity)
	require.NotNil(t, p.CountriesOpening)
	require.Nil(t, p.CountriesClosing)
}

func TestGetUserProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT user_id, username").
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := db.GetUserProfile(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetCountryProfile(t *testing.T) {
	db, mock := newMockDB(t)

	cols := []string{
		"country_id", "country_name", "country_name_en", "history", "trends",
		"working_hours_opening", "working_hours_closing", "last_activity",
		"users_opening", "users_closing", "hashtags",
	}
	mock.ExpectQuery("SELECT country_id, country_name, country_name_en").
		WithArgs(int64(76)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			int64(76), "France", "France",
			[]byte(`{"whole_open": 120000}`),
			[]byte(`not json at all`),
			nil, nil, nil, nil, nil, nil,
		))

	p, err := db.GetCountryProfile(context.Background(), 76)
	require.NoError(t, err)
	require.Equal(t, "France", p.CountryNameEN)
	// A garbled trend column degrades to an empty series, never an error.
	require.NotNil(t, p.Trends)
	require.Empty(t, p.Trends)
	require.Nil(t, p.LastActivity)
}

func TestGetCountryProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT country_id").
		WithArgs(int64(0)).
		WillReturnError(sql.ErrNoRows)

	_, err := db.GetCountryProfile(context.Background(), 0)
	require.ErrorIs(t, err, ErrNotFound)
}
