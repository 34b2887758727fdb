// Notelens - OSM Notes Warehouse Analytics API
// Copyright 2026 Notelens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/notelens/notelens

package warehouse

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// FieldKind is the normalized type a result column is coerced to. The pq
// driver hands back NUMERIC and some aggregates as []byte, COUNT as int64
// and dates as time.Time, so every row passes through one coercion table
// before it reaches a response body.
type FieldKind int

const (
	FieldInt FieldKind = iota
	FieldFloat
	FieldString
	FieldDate      // rendered as YYYY-MM-DD
	FieldTimestamp // rendered as RFC 3339
	FieldRaw       // passed through untouched, for JSON columns
)

// FieldSpec describes one column of a result set. Required columns fail the
// whole query on a bad value; optional ones degrade to null.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// scanRows reads every row of rows, coercing each column per specs into a
// key/value map. Column order must match the spec order.
func scanRows(rows *sql.Rows, specs []FieldSpec) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, 16)
	raw := make([]interface{}, len(specs))
	ptrs := make([]interface{}, len(specs))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row, err := normalizeRow(specs, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// normalizeRow coerces one scanned row. A required column that is NULL or
// fails coercion aborts with ErrNormalizationFailure; an optional one
// becomes nil so a single odd value cannot poison a whole page.
func normalizeRow(specs []FieldSpec, raw []interface{}) (map[string]interface{}, error) {
	row := make(map[string]interface{}, len(specs))
	for i, spec := range specs {
		v, err := normalizeValue(raw[i], spec.Kind)
		if err != nil || (v == nil && spec.Required) {
			if spec.Required {
				return nil, fmt.Errorf("%w: column %s: %v", ErrNormalizationFailure, spec.Name, describeValue(raw[i]))
			}
			v = nil
		}
		row[spec.Name] = v
	}
	return row, nil
}

func normalizeValue(raw interface{}, kind FieldKind) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	if kind == FieldRaw {
		return raw, nil
	}

	switch kind {
	case FieldInt:
		switch v := raw.(type) {
		case int64:
			return v, nil
		case float64:
			return int64(v), nil
		case []byte:
			n, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return nil, err
			}
			return n, nil
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, err
			}
			return n, nil
		}
	case FieldFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case []byte:
			f, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return nil, err
			}
			return f, nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
	case FieldString:
		switch v := raw.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case time.Time:
			return v.Format(time.RFC3339), nil
		}
	case FieldDate:
		if t, ok := timeValue(raw); ok {
			return t.Format("2006-01-02"), nil
		}
	case FieldTimestamp:
		if t, ok := timeValue(raw); ok {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return nil, fmt.Errorf("unsupported value %s", describeValue(raw))
}

// timeValue accepts the forms the driver produces for temporal columns.
func timeValue(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case []byte:
		return parseTimeString(string(v))
	case string:
		return parseTimeString(v)
	}
	return time.Time{}, false
}

func parseTimeString(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func describeValue(raw interface{}) string {
	if raw == nil {
		return "NULL"
	}
	if b, ok := raw.([]byte); ok {
		return fmt.Sprintf("%T(%q)", raw, string(b))
	}
	return fmt.Sprintf("%T(%v)", raw, raw)
}
