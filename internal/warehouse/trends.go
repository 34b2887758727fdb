// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"sort"

	json "github.com/goccy/go-json"

	"github.com/notelens/notelens/internal/models"
)

// parseTrendSeries decodes a datamart trend column into a sorted year series.
// The column is ETL-produced JSON of the form {"2023": {"open": N, "closed": M}}
// but individual batches have shipped nulls, strings and partial objects, so
// the parser is deliberately tolerant: it never fails, it just drops any year
// entry it cannot fully account for. Years sort ascending as strings, which
// is chronological for four-digit years.
func parseTrendSeries(raw interface{}) []models.TrendPoint {
	entries := decodeTrendMap(raw)
	if len(entries) == 0 {
		return []models.TrendPoint{}
	}

	series := make([]models.TrendPoint, 0, len(entries))
	for year, entry := range entries {
		counts, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		open, okOpen := trendCount(counts["open"])
		closed, okClosed := trendCount(counts["closed"])
		if !okOpen || !okClosed {
			continue
		}
		series = append(series, models.TrendPoint{Year: year, Open: open, Closed: closed})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	return series
}

// decodeTrendMap accepts the forms the driver and upstream callers produce:
// nil, raw JSON as []byte or string, or an already-decoded map.
func decodeTrendMap(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return v
	case []byte:
		return unmarshalTrendMap(v)
	case string:
		return unmarshalTrendMap([]byte(v))
	}
	return nil
}

func unmarshalTrendMap(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// decodeJSONColumn decodes an arbitrary JSON datamart column (top-N lists
// and similar) into plain Go values, or nil when undecodable.
func decodeJSONColumn(raw interface{}) interface{} {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return v
	}
	if len(data) == 0 {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// parseHourVector decodes a datamart working-hours column, a JSON array of
// 24 hourly counts. Same tolerance rules as the trend parser: anything that
// is not a non-negative number becomes zero, absent or undecodable columns
// become an empty vector.
func parseHourVector(raw interface{}) []int64 {
	var decoded []interface{}
	switch v := raw.(type) {
	case nil:
		return []int64{}
	case []interface{}:
		decoded = v
	case []byte:
		if json.Unmarshal(v, &decoded) != nil {
			return []int64{}
		}
	case string:
		if json.Unmarshal([]byte(v), &decoded) != nil {
			return []int64{}
		}
	default:
		return []int64{}
	}

	hours := make([]int64, len(decoded))
	for i, entry := range decoded {
		if n, ok := trendCount(entry); ok {
			hours[i] = n
		}
	}
	return hours
}

// trendCount coerces one count value, rejecting non-numeric and negative
// entries. go-json decodes JSON numbers as float64.
func trendCount(raw interface{}) (int64, bool) {
	var n int64
	switch v := raw.(type) {
	case float64:
		n = int64(v)
	case int64:
		n = v
	default:
		return 0, false
	}
	if n < 0 {
		return 0, false
	}
	return n, true
}
