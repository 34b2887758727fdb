// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"context"
	"fmt"
)

var hashtagColumns = []FieldSpec{
	{Name: "hashtag_id", Kind: FieldInt, Required: true},
	{Name: "tag", Kind: FieldString, Required: true},
	{Name: "note_count", Kind: FieldInt},
}

// SearchHashtags runs the paginated hashtag search. Only the text, page and
// limit parts of the filter apply here; text is a prefix match on the tag,
// which keeps the tag index usable.
func (db *DB) SearchHashtags(ctx context.Context, f Filter) (*SearchResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	where := ""
	var args []interface{}
	if f.HasText() {
		where = "\nWHERE tag ILIKE $1"
		args = append(args, f.Text+"%")
	}

	dataQuery := fmt.Sprintf(
		"SELECT hashtag_id, tag, note_count\nFROM hashtags%s\nORDER BY note_count DESC, tag ASC\nLIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	dataArgs := append(append([]interface{}{}, args...), f.Limit, f.Offset())
	countQuery := "SELECT COUNT(*)\nFROM hashtags" + where

	return db.runSearch(ctx, dataQuery, dataArgs, countQuery, args, hashtagColumns, f.Page, f.Limit)
}
