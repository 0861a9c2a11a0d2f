// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package vehicle implements the searchable registration table: free-text
// filtering, column sorting with registration-specific comparators, fixed
// pagination, and the dashboard summary counters.
//
// Rows are the upstream rdw-data records untouched; field presence is not
// guaranteed, so everything operates on the loosely-typed record form.
package vehicle

import (
	"strings"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

// Filter returns the records where any field's string form contains term,
// case-insensitively. An empty term returns the input unchanged.
func Filter(records []rdw.Record, term string) []rdw.Record {
	term = strings.TrimSpace(term)
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	filtered := make([]rdw.Record, 0, len(records))
	for _, rec := range records {
		if matchesAnyField(rec, needle) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func matchesAnyField(rec rdw.Record, needle string) bool {
	for _, v := range rec {
		if v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(rdw.Stringify(v)), needle) {
			return true
		}
	}
	return false
}
