// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"errors"
	"strings"
	"testing"
)

func strptr(s string) *string { return &s }

func TestNormalizeFilterDefaults(t *testing.T) {
	f, err := NormalizeFilter(RawFilter{})
	if err != nil {
		t.Fatalf("NormalizeFilter() error = %v", err)
	}
	if f.Page != DefaultPage {
		t.Errorf("Page = %d, want %d", f.Page, DefaultPage)
	}
	if f.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", f.Limit, DefaultLimit)
	}
	if f.Operator != OperatorAnd {
		t.Errorf("Operator = %q, want %q", f.Operator, OperatorAnd)
	}
	if f.CountryID != nil || f.UserID != nil || f.BBox != nil {
		t.Errorf("omitted filters should stay nil, got %+v", f)
	}
}

func TestNormalizeFilterOmittedVsEmpty(t *testing.T) {
	// An omitted page gets the default; an empty-string page is provided
	// input and must be rejected, never silently defaulted.
	if _, err := NormalizeFilter(RawFilter{Page: strptr("")}); err == nil {
		t.Error("empty page accepted, want error")
	}
	if _, err := NormalizeFilter(RawFilter{Limit: strptr("")}); err == nil {
		t.Error("empty limit accepted, want error")
	}
	// Same rule for the closed-domain fields: ?status= is not ?status absent.
	for _, raw := range []RawFilter{
		{Status: strptr("")},
		{DateFrom: strptr("")},
		{DateTo: strptr("")},
	} {
		if _, err := NormalizeFilter(raw); !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("NormalizeFilter(%+v) = %v, want ErrInvalidFilter", raw, err)
		}
	}
}

func TestNormalizeFilterRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  RawFilter
	}{
		{"page zero", RawFilter{Page: strptr("0")}},
		{"page negative", RawFilter{Page: strptr("-3")}},
		{"page non-numeric", RawFilter{Page: strptr("abc")}},
		{"limit zero", RawFilter{Limit: strptr("0")}},
		{"limit over max", RawFilter{Limit: strptr("101")}},
		{"status empty", RawFilter{Status: strptr("")}},
		{"status unknown", RawFilter{Status: strptr("pending")}},
		{"status cased", RawFilter{Status: strptr("Open")}},
		{"country non-numeric", RawFilter{Country: strptr("FR")}},
		{"country negative", RawFilter{Country: strptr("-1")}},
		{"user non-numeric", RawFilter{UserID: strptr("bob")}},
		{"date empty", RawFilter{DateFrom: strptr("")}},
		{"date wrong layout", RawFilter{DateFrom: strptr("2023/01/01")}},
		{"date impossible", RawFilter{DateFrom: strptr("2023-02-30")}},
		{"date short year", RawFilter{DateTo: strptr("23-01-01")}},
		{"date range inverted", RawFilter{DateFrom: strptr("2024-06-01"), DateTo: strptr("2024-01-01")}},
		{"operator unknown", RawFilter{Operator: strptr("XOR")}},
		{"text too long", RawFilter{Text: strptr(strings.Repeat("x", MaxTextLength+1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeFilter(tt.raw)
			if err == nil {
				t.Fatal("NormalizeFilter() = nil error, want rejection")
			}
			if !errors.Is(err, ErrInvalidFilter) {
				t.Errorf("error = %v, want ErrInvalidFilter", err)
			}
		})
	}
}

func TestNormalizeFilterAccepts(t *testing.T) {
	raw := RawFilter{
		Page:     strptr("3"),
		Limit:    strptr("100"),
		Status:   strptr("reopened"),
		Country:  strptr("76"),
		UserID:   strptr("12345"),
		DateFrom: strptr("2024-02-29"), // leap day
		DateTo:   strptr("2024-12-31"),
		Operator: strptr("or"),
		Text:     strptr("broken sign"),
	}
	f, err := NormalizeFilter(raw)
	if err != nil {
		t.Fatalf("NormalizeFilter() error = %v", err)
	}
	if f.Page != 3 || f.Limit != 100 {
		t.Errorf("page/limit = %d/%d, want 3/100", f.Page, f.Limit)
	}
	if f.CountryID == nil || *f.CountryID != 76 {
		t.Errorf("CountryID = %v, want 76", f.CountryID)
	}
	if f.UserID == nil || *f.UserID != 12345 {
		t.Errorf("UserID = %v, want 12345", f.UserID)
	}
	if f.Operator != OperatorOr {
		t.Errorf("Operator = %q, want OR (case-folded)", f.Operator)
	}
	if f.Offset() != 200 {
		t.Errorf("Offset() = %d, want 200", f.Offset())
	}
}

func TestNormalizeFilterBBoxLaxity(t *testing.T) {
	tests := []struct {
		name string
		bbox string
		want bool // whether a BBox should survive
	}{
		{"valid", "2.22,48.81,2.47,48.90", true},
		{"valid with spaces", " 2.22, 48.81, 2.47, 48.90 ", true},
		{"three parts", "2.22,48.81,2.47", false},
		{"five parts", "1,2,3,4,5", false},
		{"non-numeric part", "2.22,north,2.47,48.90", false},
		{"NaN", "NaN,48.81,2.47,48.90", false},
		{"infinity", "2.22,48.81,+Inf,48.90", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NormalizeFilter(RawFilter{BBox: strptr(tt.bbox)})
			if err != nil {
				// Malformed boxes are dropped, never rejected.
				t.Fatalf("NormalizeFilter() error = %v", err)
			}
			if got := f.BBox != nil; got != tt.want {
				t.Errorf("BBox present = %v, want %v", got, tt.want)
			}
		})
	}

	f, _ := NormalizeFilter(RawFilter{BBox: strptr("2.22,48.81,2.47,48.90")})
	want := BoundingBox{MinLon: 2.22, MinLat: 48.81, MaxLon: 2.47, MaxLat: 48.90}
	if f.BBox == nil || *f.BBox != want {
		t.Errorf("BBox = %+v, want %+v", f.BBox, want)
	}
}

func TestNormalizeFilterLimits(t *testing.T) {
	limits := PageLimits{Default: 10, Max: 50}

	f, err := NormalizeFilterLimits(RawFilter{}, limits)
	if err != nil {
		t.Fatalf("NormalizeFilterLimits() error = %v", err)
	}
	if f.Limit != 10 {
		t.Errorf("Limit = %d, want configured default 10", f.Limit)
	}

	if _, err := NormalizeFilterLimits(RawFilter{Limit: strptr("51")}, limits); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("limit over configured max: error = %v, want ErrInvalidFilter", err)
	}

	// Zero limits fall back to the contract sizing.
	f, err = NormalizeFilterLimits(RawFilter{}, PageLimits{})
	if err != nil || f.Limit != DefaultLimit {
		t.Errorf("fallback Limit = %d, err = %v", f.Limit, err)
	}
}

func TestFilterValidateStandalone(t *testing.T) {
	f := Filter{Page: 1, Limit: 20, Operator: OperatorAnd}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	f.Limit = 0
	if err := f.Validate(); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Validate() with zero limit = %v, want ErrInvalidFilter", err)
	}
}
