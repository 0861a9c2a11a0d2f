// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package rdw provides the client for the upstream vehicle-registration
// statistics API and the loosely-typed record model its responses use.
//
// The upstream dataset originates from RDW (the Dutch vehicle authority), so
// record keys are government registration field names (kenteken, merk,
// wam_verzekerd, datum_eerste_toelating, ...). Field presence is not
// guaranteed; consumers look fields up by candidate lists with fallback
// defaults instead of relying on a rigid schema.
package rdw

import (
	"strconv"
	"strings"
)

// Record is a single upstream row: an opaque mapping from registration field
// names to primitive values. Records are read-only and never persisted.
type Record map[string]any

// Field returns the first present, non-nil value among the candidate keys.
func (r Record) Field(candidates ...string) (any, bool) {
	for _, key := range candidates {
		if v, ok := r[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// StringField resolves the first present candidate to its string form, or
// returns fallback when none match.
func (r Record) StringField(candidates []string, fallback string) string {
	v, ok := r.Field(candidates...)
	if !ok {
		return fallback
	}
	return Stringify(v)
}

// NumberField resolves the first present candidate coerced to a number, or
// returns fallback when none match. Unparsable values coerce to 0, matching
// the dashboard's historical behavior.
func (r Record) NumberField(candidates []string, fallback float64) float64 {
	v, ok := r.Field(candidates...)
	if !ok {
		return fallback
	}
	return ToNumber(v)
}

// Stringify renders an upstream primitive as a string. JSON numbers decode as
// float64; integral values render without a trailing ".0" so license plates
// and counts round-trip cleanly.
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		// Nested objects/arrays stringify via their JSON-ish form rarely
		// enough that fmt is not worth importing here.
		return ""
	}
}

// ToNumber coerces an upstream primitive to a float64, returning 0 for
// anything unparsable.
func ToNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// envelopeKeys are probed in order when an upstream payload wraps its row
// array in an object instead of returning a bare array.
var envelopeKeys = []string{"data", "result", "results", "items", "records", "response"}

// ExtractArray unwraps an upstream payload into a slice of records. A bare
// top-level array wins; otherwise the first envelope key holding an array is
// used. Anything else yields an empty slice.
func ExtractArray(raw any) []Record {
	if arr, ok := raw.([]any); ok {
		return toRecords(arr)
	}

	if obj, ok := raw.(map[string]any); ok {
		for _, key := range envelopeKeys {
			if arr, ok := obj[key].([]any); ok {
				return toRecords(arr)
			}
		}
	}

	return []Record{}
}

// toRecords converts decoded JSON rows to Records, skipping non-object rows.
func toRecords(arr []any) []Record {
	records := make([]Record, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records
}
