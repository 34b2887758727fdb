// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"math"
	"strconv"
	"strings"

	"github.com/notelens/notelens/internal/validation"
)

// Operator selects how independent predicate fragments combine.
type Operator string

// Predicate combination operators.
const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// Note statuses recognized by the warehouse.
const (
	StatusOpen     = "open"
	StatusClosed   = "closed"
	StatusReopened = "reopened"
)

// Filter bounds applied during normalization.
const (
	DefaultPage    = 1
	DefaultLimit   = 20
	MaxLimit       = 100
	MaxTextLength  = 500
	bboxPartsCount = 4
)

// BoundingBox is a geographic filter: minLon,minLat,maxLon,maxLat.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// RawFilter carries loosely-typed query-string input. A nil field means the
// parameter was omitted entirely; a pointer to the empty string means it was
// provided but empty, which is invalid for every non-text field here.
type RawFilter struct {
	Page     *string
	Limit    *string
	Status   *string
	Country  *string
	UserID   *string
	DateFrom *string
	DateTo   *string
	BBox     *string
	Operator *string
	Text     *string
}

// Filter is the normalized, immutable filter record for one request.
// Construct via NormalizeFilter; zero-value fields mean "filter absent".
type Filter struct {
	CountryID *int64
	UserID    *int64
	Status    string
	DateFrom  string // YYYY-MM-DD, inclusive
	DateTo    string // YYYY-MM-DD, inclusive
	BBox      *BoundingBox
	Text      string
	Operator  Operator
	Page      int
	Limit     int
}

// filterBounds mirrors the Filter invariants as validator tags so the bound
// checks live in one declarative place. The limit ceiling is enforced in
// NormalizeFilterLimits because deployments may lower it below the contract
// maximum.
type filterBounds struct {
	Page     int    `validate:"min=1"`
	Limit    int    `validate:"min=1"`
	Status   string `validate:"omitempty,oneof=open closed reopened"`
	DateFrom string `validate:"omitempty,calendardate"`
	DateTo   string `validate:"omitempty,calendardate"`
	Text     string `validate:"max=500"`
	Operator string `validate:"oneof=AND OR"`
}

// PageLimits sets the default and maximum page size for normalization.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits is the contract's fixed page sizing.
var DefaultPageLimits = PageLimits{Default: DefaultLimit, Max: MaxLimit}

// NormalizeFilter coerces raw query input into a typed Filter with the
// contract's page sizing. See NormalizeFilterLimits.
func NormalizeFilter(raw RawFilter) (Filter, error) {
	return NormalizeFilterLimits(raw, DefaultPageLimits)
}

// NormalizeFilterLimits coerces raw query input into a typed Filter, applying
// defaults (page=1, limit per limits, operator=AND) only for omitted fields
// and failing with ErrInvalidFilter for out-of-range or malformed values.
//
// One documented laxity is carried over from the source system: a malformed
// bounding box (wrong part count, unparsable or non-finite numbers) is
// silently ignored rather than rejected.
func NormalizeFilterLimits(raw RawFilter, limits PageLimits) (Filter, error) {
	if limits.Default < 1 {
		limits.Default = DefaultLimit
	}
	if limits.Max < 1 {
		limits.Max = MaxLimit
	}

	f := Filter{
		Page:     DefaultPage,
		Limit:    limits.Default,
		Operator: OperatorAnd,
	}

	var err error
	if f.Page, err = normalizeInt(raw.Page, DefaultPage, "page"); err != nil {
		return Filter{}, err
	}
	if f.Limit, err = normalizeInt(raw.Limit, limits.Default, "limit"); err != nil {
		return Filter{}, err
	}
	if f.Limit > limits.Max {
		return Filter{}, invalidFilter("limit must be at most %d, got %d", limits.Max, f.Limit)
	}
	if f.CountryID, err = normalizeID(raw.Country, "country"); err != nil {
		return Filter{}, err
	}
	if f.UserID, err = normalizeID(raw.UserID, "user_id"); err != nil {
		return Filter{}, err
	}
	if f.Status, err = normalizeEnum(raw.Status, "status"); err != nil {
		return Filter{}, err
	}
	if f.DateFrom, err = normalizeEnum(raw.DateFrom, "date_from"); err != nil {
		return Filter{}, err
	}
	if f.DateTo, err = normalizeEnum(raw.DateTo, "date_to"); err != nil {
		return Filter{}, err
	}
	if raw.Text != nil {
		f.Text = *raw.Text
	}
	if raw.Operator != nil {
		f.Operator = Operator(strings.ToUpper(*raw.Operator))
	}
	if raw.BBox != nil {
		f.BBox = parseBBox(*raw.BBox)
	}

	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Validate re-checks the Filter invariants. NormalizeFilter calls it on every
// construction; the count-query path calls it again defensively since it must
// never compile an unnormalized record.
func (f Filter) Validate() error {
	bounds := filterBounds{
		Page:     f.Page,
		Limit:    f.Limit,
		Status:   f.Status,
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
		Text:     f.Text,
		Operator: string(f.Operator),
	}
	if verr := validation.ValidateStruct(&bounds); verr != nil {
		return invalidFilter("%s", verr.Error())
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return invalidFilter("date_from %s is after date_to %s", f.DateFrom, f.DateTo)
	}
	return nil
}

// HasText reports whether a free-text predicate is present.
func (f Filter) HasText() bool {
	return f.Text != ""
}

// Offset returns the row offset implied by page and limit.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// normalizeInt parses an optional integer parameter. Omitted means default;
// provided-but-unparsable (including the empty string) is invalid.
func normalizeInt(raw *string, def int, name string) (int, error) {
	if raw == nil {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return 0, invalidFilter("%s must be an integer, got %q", name, *raw)
	}
	return n, nil
}

// normalizeEnum passes an optional closed-domain parameter through. Omitted
// means absent; provided-but-empty is invalid, since the empty string would
// otherwise slip past the omitempty bound checks as absent.
func normalizeEnum(raw *string, name string) (string, error) {
	if raw == nil {
		return "", nil
	}
	if *raw == "" {
		return "", invalidFilter("%s must not be empty", name)
	}
	return *raw, nil
}

// normalizeID parses an optional entity-id parameter into *int64.
func normalizeID(raw *string, name string) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 64)
	if err != nil {
		return nil, invalidFilter("%s must be an integer, got %q", name, *raw)
	}
	if n < 0 {
		return nil, invalidFilter("%s must be non-negative, got %d", name, n)
	}
	return &n, nil
}

// parseBBox parses "minLon,minLat,maxLon,maxLat". Malformed input returns nil
// (filter ignored), matching the source system's behavior.
func parseBBox(s string) *BoundingBox {
	parts := strings.Split(s, ",")
	if len(parts) != bboxPartsCount {
		return nil
	}

	coords := make([]float64, bboxPartsCount)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		coords[i] = v
	}

	return &BoundingBox{
		MinLon: coords[0],
		MinLat: coords[1],
		MaxLon: coords[2],
		MaxLat: coords[3],
	}
}
