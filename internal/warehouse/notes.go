// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"fmt"
	"strings"
)

// noteColumns is the projection shared by every note search. created_at and
// note_id are the only columns the warehouse guarantees non-null.
var noteColumns = []FieldSpec{
	{Name: "note_id", Kind: FieldInt, Required: true},
	{Name: "latitude", Kind: FieldFloat},
	{Name: "longitude", Kind: FieldFloat},
	{Name: "status", Kind: FieldString},
	{Name: "created_at", Kind: FieldDate, Required: true},
	{Name: "closed_at", Kind: FieldDate},
	{Name: "country_id", Kind: FieldInt},
	{Name: "opened_by", Kind: FieldInt},
	{Name: "comment_count", Kind: FieldInt},
}

// SearchNotes runs the paginated note search for a normalized filter. The
// page query and the count query run concurrently against the pool.
func (db *DB) SearchNotes(ctx context.Context, f Filter) (*SearchResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	dataQuery, dataArgs := buildNoteDataQuery(f)
	countQuery, countArgs := buildNoteCountQuery(f)
	return db.runSearch(ctx, dataQuery, dataArgs, countQuery, countArgs, noteColumns, f.Page, f.Limit)
}

// buildNoteDataQuery compiles the paginated page query. Text search joins
// note_comments, so the projection goes DISTINCT to collapse multi-comment
// matches back to one row per note.
func buildNoteDataQuery(f Filter) (string, []interface{}) {
	p := compileFilter(f, textJoin, 0)

	var b strings.Builder
	b.WriteString("SELECT ")
	if p.distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString("n.note_id, n.latitude, n.longitude, n.status, n.created_at, " +
		"n.closed_at, n.country_id, n.opened_by, n.comment_count\nFROM note_facts n")
	if p.joinSQL != "" {
		b.WriteString("\n" + p.joinSQL)
	}
	if where := p.whereClause(f.Operator); where != "" {
		b.WriteString("\n" + where)
	}
	args := p.args
	b.WriteString(fmt.Sprintf("\nORDER BY n.note_id DESC\nLIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2))
	args = append(args, f.Limit, f.Offset())

	return b.String(), args
}

// buildNoteCountQuery compiles the matching total-count query. It shares the
// fragment builder with the data query; only the text strategy differs, an
// EXISTS instead of a join so no DISTINCT is needed. Under OR that EXISTS is
// still ANDed onto the group, see predicateSet.whereClause.
func buildNoteCountQuery(f Filter) (string, []interface{}) {
	p := compileFilter(f, textExists, 0)

	query := "SELECT COUNT(*)\nFROM note_facts n"
	if where := p.whereClause(f.Operator); where != "" {
		query += "\n" + where
	}
	return query, p.args
}
