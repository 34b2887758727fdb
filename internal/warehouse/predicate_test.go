// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"strings"
	"testing"
)

func int64ptr(n int64) *int64 { return &n }

func TestCompileFilterEmpty(t *testing.T) {
	p := compileFilter(Filter{Page: 1, Limit: 20, Operator: OperatorAnd}, textJoin, 0)
	if len(p.fragments) != 0 || len(p.args) != 0 {
		t.Errorf("empty filter compiled to %d fragments, %d args", len(p.fragments), len(p.args))
	}
	if where := p.whereClause(OperatorAnd); where != "" {
		t.Errorf("whereClause() = %q, want empty", where)
	}
}

func TestCompileFilterPlaceholderOrder(t *testing.T) {
	f := Filter{
		CountryID: int64ptr(76),
		UserID:    int64ptr(42),
		Status:    StatusOpen,
		DateFrom:  "2024-01-01",
		DateTo:    "2024-06-30",
		BBox:      &BoundingBox{MinLon: -1, MinLat: 47, MaxLon: 1, MaxLat: 49},
		Text:      "fixme",
		Operator:  OperatorAnd,
		Page:      1,
		Limit:     20,
	}
	p := compileFilter(f, textJoin, 0)

	wantFragments := []string{
		"n.country_id = $1",
		"n.opened_by = $2",
		"n.status = $3",
		"(n.created_at >= $4 AND n.created_at <= $5)",
		"(n.longitude BETWEEN $6 AND $7 AND n.latitude BETWEEN $8 AND $9)",
		"c.body ILIKE $10",
	}
	if len(p.fragments) != len(wantFragments) {
		t.Fatalf("fragments = %v", p.fragments)
	}
	for i, want := range wantFragments {
		if p.fragments[i] != want {
			t.Errorf("fragment[%d] = %q, want %q", i, p.fragments[i], want)
		}
	}

	wantArgs := []interface{}{int64(76), int64(42), "open", "2024-01-01", "2024-06-30",
		float64(-1), float64(1), float64(47), float64(49), "%fixme%"}
	if len(p.args) != len(wantArgs) {
		t.Fatalf("args = %v", p.args)
	}
	for i, want := range wantArgs {
		if p.args[i] != want {
			t.Errorf("arg[%d] = %v, want %v", i, p.args[i], want)
		}
	}

	if !p.distinct {
		t.Error("text join must set distinct")
	}
	if p.joinSQL == "" {
		t.Error("text join must emit a join clause")
	}
}

func TestCompileFilterStartArgPos(t *testing.T) {
	f := Filter{Status: StatusClosed, Operator: OperatorAnd, Page: 1, Limit: 20}
	p := compileFilter(f, textExists, 2)
	if got := p.fragments[0]; got != "n.status = $3" {
		t.Errorf("fragment = %q, want shifted placeholder $3", got)
	}
}

func TestCompileFilterSingleDateBounds(t *testing.T) {
	p := compileFilter(Filter{DateFrom: "2024-01-01", Operator: OperatorAnd, Page: 1, Limit: 20}, textExists, 0)
	if p.fragments[0] != "n.created_at >= $1" {
		t.Errorf("fragment = %q", p.fragments[0])
	}

	p = compileFilter(Filter{DateTo: "2024-01-01", Operator: OperatorAnd, Page: 1, Limit: 20}, textExists, 0)
	if p.fragments[0] != "n.created_at <= $1" {
		t.Errorf("fragment = %q", p.fragments[0])
	}
}

func TestWhereClauseOperators(t *testing.T) {
	f := Filter{Status: StatusOpen, CountryID: int64ptr(5), Page: 1, Limit: 20}

	f.Operator = OperatorAnd
	p := compileFilter(f, textExists, 0)
	if got := p.whereClause(f.Operator); got != "WHERE n.country_id = $1 AND n.status = $2" {
		t.Errorf("AND whereClause = %q", got)
	}

	f.Operator = OperatorOr
	p = compileFilter(f, textExists, 0)
	if got := p.whereClause(f.Operator); got != "WHERE n.country_id = $1 OR n.status = $2" {
		t.Errorf("OR whereClause = %q", got)
	}
}

// The count path attaches the text EXISTS with AND even under the OR
// operator, narrowing the count where the data query's join would widen it.
// That asymmetry is long-standing reported behavior and must not change.
func TestWhereClauseOrTextExistsAsymmetry(t *testing.T) {
	f := Filter{
		Status:   StatusOpen,
		UserID:   int64ptr(9),
		Text:     "pont",
		Operator: OperatorOr,
		Page:     1,
		Limit:    20,
	}

	p := compileFilter(f, textExists, 0)
	where := p.whereClause(f.Operator)
	want := "WHERE (n.opened_by = $1 OR n.status = $2) AND " +
		"EXISTS (SELECT 1 FROM note_comments c WHERE c.note_id = n.note_id AND c.body ILIKE $3)"
	if where != want {
		t.Errorf("whereClause = %q\nwant %q", where, want)
	}

	// On the data path the ILIKE fragment joins the OR group instead.
	p = compileFilter(f, textJoin, 0)
	where = p.whereClause(f.Operator)
	if !strings.Contains(where, "OR c.body ILIKE $3") {
		t.Errorf("data whereClause = %q, want ILIKE inside the OR group", where)
	}
}

func TestWhereClauseTextOnly(t *testing.T) {
	f := Filter{Text: "bench", Operator: OperatorAnd, Page: 1, Limit: 20}
	p := compileFilter(f, textExists, 0)
	want := "WHERE EXISTS (SELECT 1 FROM note_comments c WHERE c.note_id = n.note_id AND c.body ILIKE $1)"
	if got := p.whereClause(f.Operator); got != want {
		t.Errorf("whereClause = %q, want %q", got, want)
	}
}

func TestBuildNoteQueries(t *testing.T) {
	f := Filter{Status: StatusOpen, Text: "fixme", Operator: OperatorAnd, Page: 2, Limit: 50}

	dataQuery, dataArgs := buildNoteDataQuery(f)
	if !strings.HasPrefix(dataQuery, "SELECT DISTINCT ") {
		t.Errorf("data query missing DISTINCT guard:\n%s", dataQuery)
	}
	if !strings.Contains(dataQuery, "JOIN note_comments c ON c.note_id = n.note_id") {
		t.Errorf("data query missing comments join:\n%s", dataQuery)
	}
	if !strings.Contains(dataQuery, "ORDER BY n.note_id DESC") {
		t.Errorf("data query missing stable ordering:\n%s", dataQuery)
	}
	if !strings.Contains(dataQuery, "LIMIT $3 OFFSET $4") {
		t.Errorf("pagination placeholders misnumbered:\n%s", dataQuery)
	}
	if len(dataArgs) != 4 || dataArgs[2] != 50 || dataArgs[3] != 50 {
		t.Errorf("dataArgs = %v, want [... 50 50]", dataArgs)
	}

	countQuery, countArgs := buildNoteCountQuery(f)
	if !strings.HasPrefix(countQuery, "SELECT COUNT(*)") {
		t.Errorf("count query = %q", countQuery)
	}
	if strings.Contains(countQuery, "JOIN") || strings.Contains(countQuery, "DISTINCT") {
		t.Errorf("count query must use EXISTS, not a join:\n%s", countQuery)
	}
	if !strings.Contains(countQuery, "EXISTS (SELECT 1 FROM note_comments c") {
		t.Errorf("count query missing EXISTS predicate:\n%s", countQuery)
	}
	if len(countArgs) != 2 {
		t.Errorf("countArgs = %v, want status + pattern only", countArgs)
	}
}

func TestBuildNoteQueriesNoFilter(t *testing.T) {
	f := Filter{Operator: OperatorAnd, Page: 1, Limit: 20}

	dataQuery, dataArgs := buildNoteDataQuery(f)
	if strings.Contains(dataQuery, "WHERE") {
		t.Errorf("unfiltered data query has WHERE:\n%s", dataQuery)
	}
	if len(dataArgs) != 2 {
		t.Errorf("dataArgs = %v, want limit and offset only", dataArgs)
	}

	countQuery, countArgs := buildNoteCountQuery(f)
	if strings.Contains(countQuery, "WHERE") || len(countArgs) != 0 {
		t.Errorf("unfiltered count query = %q args %v", countQuery, countArgs)
	}
}
