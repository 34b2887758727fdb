// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

// Package models defines the shared result shapes produced by the warehouse
// query layer and rendered by the API layer.
package models

// TrendPoint is one year of note-activity history for an entity.
type TrendPoint struct {
	Year   string `json:"year"`
	Open   int64  `json:"open"`
	Closed int64  `json:"closed"`
}

// RankingEntry is one row of a leaderboard. Rank is 1-based and reflects
// result order, so ties share neither rank nor position. Value is nil when
// the underlying metric column is NULL for that entity.
type RankingEntry struct {
	Rank  int         `json:"rank"`
	ID    int64       `json:"id"`
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// UserProfile is a contributor's datamart row.
type UserProfile struct {
	UserID            int64                  `json:"user_id"`
	Username          string                 `json:"username"`
	History           map[string]interface{} `json:"history"`
	Trends            []TrendPoint           `json:"trends"`
	WorkingHoursOpen  []int64                `json:"working_hours_open"`
	WorkingHoursClose []int64                `json:"working_hours_close"`
	LastActivity      interface{}            `json:"last_activity"`
	CountriesOpening  interface{}            `json:"countries_opening"`
	CountriesClosing  interface{}            `json:"countries_closing"`
	HashtagsUsed      interface{}            `json:"hashtags_used"`
}

// CountryProfile is a country's datamart row.
type CountryProfile struct {
	CountryID         int64                  `json:"country_id"`
	CountryName       string                 `json:"country_name"`
	CountryNameEN     string                 `json:"country_name_en"`
	History           map[string]interface{} `json:"history"`
	Trends            []TrendPoint           `json:"trends"`
	WorkingHoursOpen  []int64                `json:"working_hours_open"`
	WorkingHoursClose []int64                `json:"working_hours_close"`
	LastActivity      interface{}            `json:"last_activity"`
	UsersOpening      interface{}            `json:"users_opening"`
	UsersClosing      interface{}            `json:"users_closing"`
	HashtagsUsed      interface{}            `json:"hashtags_used"`
}

// GlobalStats is the whole-planet aggregate row.
type GlobalStats struct {
	TotalNotes    int64        `json:"total_notes"`
	OpenNotes     int64        `json:"open_notes"`
	ClosedNotes   int64        `json:"closed_notes"`
	ReopenedNotes int64        `json:"reopened_notes"`
	TotalUsers    int64        `json:"total_users"`
	TotalComments int64        `json:"total_comments"`
	Trends        []TrendPoint `json:"trends"`
	LastUpdated   interface{}  `json:"last_updated"`
}

// TrendsResult is the response payload of the trends endpoint. WorkingHours
// is present only for the user and country scopes.
type TrendsResult struct {
	Type         string       `json:"type"`
	EntityID     *int64       `json:"entity_id,omitempty"`
	Series       []TrendPoint `json:"trends"`
	WorkingHours []int64      `json:"working_hours,omitempty"`
}
