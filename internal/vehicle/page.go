// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package vehicle

import "github.com/TheOnly3aq/z3radar/internal/rdw"

// PageSize is the fixed number of table rows per page.
const PageSize = 20

// Paginate returns the requested 1-based page of records along with the
// clamped page number and total page count. An empty set still reports one
// page so the table footer never shows "Page 1 of 0".
func Paginate(records []rdw.Record, page int) ([]rdw.Record, int, int) {
	totalPages := (len(records) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	if start >= len(records) {
		return []rdw.Record{}, page, totalPages
	}
	end := start + PageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end], page, totalPages
}
