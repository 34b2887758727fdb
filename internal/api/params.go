// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/notelens/notelens/internal/warehouse"
)

// rawFilterFromQuery lifts query-string parameters into a RawFilter. The
// presence check matters: an omitted parameter takes its default while a
// provided-but-empty one must be rejected downstream, so only url.Values.Has
// distinguishes the two.
func rawFilterFromQuery(q url.Values) warehouse.RawFilter {
	get := func(name string) *string {
		if !q.Has(name) {
			return nil
		}
		v := q.Get(name)
		return &v
	}

	return warehouse.RawFilter{
		Page:     get("page"),
		Limit:    get("limit"),
		Status:   get("status"),
		Country:  get("country"),
		UserID:   get("user_id"),
		DateFrom: get("date_from"),
		DateTo:   get("date_to"),
		BBox:     get("bbox"),
		Operator: get("operator"),
		Text:     get("text"),
	}
}

// rankingParamsFromQuery parses metric, order and pagination for the ranking
// endpoints. Page and limit reuse the filter normalizer so the bounds match
// the search endpoints exactly.
func rankingParamsFromQuery(q url.Values, limits warehouse.PageLimits) (warehouse.RankingParams, error) {
	f, err := warehouse.NormalizeFilterLimits(rawFilterFromQuery(q), limits)
	if err != nil {
		return warehouse.RankingParams{}, err
	}
	return warehouse.RankingParams{
		Metric:    q.Get("metric"),
		Direction: q.Get("order"),
		Page:      f.Page,
		Limit:     f.Limit,
	}, nil
}

// trendParamsFromQuery parses the trend scope selector. Scope defaults to
// global; user and country scopes read the id parameter.
func trendParamsFromQuery(q url.Values) (warehouse.TrendParams, error) {
	params := warehouse.TrendParams{Type: q.Get("type")}
	if params.Type == "" {
		params.Type = warehouse.TrendScopeGlobal
	}
	if q.Has("id") {
		id, err := strconv.ParseInt(q.Get("id"), 10, 64)
		if err != nil || id < 0 {
			return warehouse.TrendParams{}, fmt.Errorf("%w: id must be a non-negative integer, got %q",
				warehouse.ErrInvalidFilter, q.Get("id"))
		}
		params.EntityID = &id
	}
	return params, nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: id must be a non-negative integer, got %q", warehouse.ErrInvalidFilter, raw)
	}
	return id, nil
}
