// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"fmt"
	"strings"
)

// textStrategy picks how the free-text predicate reaches note comments.
// The paginated data query joins the comments table so matched rows can be
// deduplicated with DISTINCT; the count query uses a correlated EXISTS so no
// join multiplication has to be undone.
type textStrategy int

const (
	textJoin textStrategy = iota
	textExists
)

// predicateSet is the compiled output of one filter: SQL fragments with
// positional placeholders assigned in append order, plus the join and
// dedup requirements the chosen text strategy implies.
type predicateSet struct {
	fragments []string // combinable via the filter operator
	existsSQL string   // text EXISTS predicate, always ANDed on
	joinSQL   string   // comments join for the textJoin strategy
	args      []interface{}
	distinct  bool
}

// add appends a fragment whose placeholders were already numbered.
func (p *predicateSet) add(fragment string, args ...interface{}) {
	p.fragments = append(p.fragments, fragment)
	p.args = append(p.args, args...)
}

// next returns the placeholder for the next argument position.
func (p *predicateSet) next(offset int) string {
	return fmt.Sprintf("$%d", len(p.args)+offset+1)
}

// compileFilter turns a normalized Filter into a predicateSet. Fragments are
// emitted in a fixed order (country, user, status, date range, bbox, text) so
// compiled SQL is deterministic for identical filters. startArgPos shifts
// placeholder numbering when the caller prepends its own arguments.
func compileFilter(f Filter, strategy textStrategy, startArgPos int) predicateSet {
	var p predicateSet

	if f.CountryID != nil {
		p.add("n.country_id = "+p.next(startArgPos), *f.CountryID)
	}
	if f.UserID != nil {
		p.add("n.opened_by = "+p.next(startArgPos), *f.UserID)
	}
	if f.Status != "" {
		p.add("n.status = "+p.next(startArgPos), f.Status)
	}

	// Both date bounds collapse into one fragment so an OR filter treats the
	// range as a single predicate rather than two alternatives.
	switch {
	case f.DateFrom != "" && f.DateTo != "":
		p.add(fmt.Sprintf("(n.created_at >= %s AND n.created_at <= %s)",
			p.next(startArgPos), p.next(startArgPos+1)), f.DateFrom, f.DateTo)
	case f.DateFrom != "":
		p.add("n.created_at >= "+p.next(startArgPos), f.DateFrom)
	case f.DateTo != "":
		p.add("n.created_at <= "+p.next(startArgPos), f.DateTo)
	}

	if f.BBox != nil {
		p.add(fmt.Sprintf("(n.longitude BETWEEN %s AND %s AND n.latitude BETWEEN %s AND %s)",
			p.next(startArgPos), p.next(startArgPos+1), p.next(startArgPos+2), p.next(startArgPos+3)),
			f.BBox.MinLon, f.BBox.MaxLon, f.BBox.MinLat, f.BBox.MaxLat)
	}

	if f.HasText() {
		pattern := "%" + f.Text + "%"
		switch strategy {
		case textJoin:
			p.add("c.body ILIKE "+p.next(startArgPos), pattern)
			p.joinSQL = "JOIN note_comments c ON c.note_id = n.note_id"
			p.distinct = true
		case textExists:
			p.existsSQL = fmt.Sprintf(
				"EXISTS (SELECT 1 FROM note_comments c WHERE c.note_id = n.note_id AND c.body ILIKE %s)",
				p.next(startArgPos))
			p.args = append(p.args, pattern)
		}
	}

	return p
}

// whereClause assembles the final WHERE clause, or "" when no predicate is
// active. Under the OR operator the combinable fragments form one
// parenthesized group; the EXISTS text predicate is ANDed onto that group
// rather than joining it, so an OR filter with text narrows instead of
// widening on the count path. That asymmetry is intentional and matches the
// data the source system has always reported.
func (p *predicateSet) whereClause(op Operator) string {
	group := strings.Join(p.fragments, " "+string(op)+" ")
	if op == OperatorOr && len(p.fragments) > 1 && p.existsSQL != "" {
		group = "(" + group + ")"
	}

	switch {
	case group == "" && p.existsSQL == "":
		return ""
	case group == "":
		return "WHERE " + p.existsSQL
	case p.existsSQL == "":
		return "WHERE " + group
	default:
		return "WHERE " + group + " AND " + p.existsSQL
	}
}
