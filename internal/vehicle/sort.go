// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package vehicle

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

// Direction is a sort direction for the registration table.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection normalizes a query-parameter direction, defaulting to
// ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

// compactDate matches the RDW compact date form, e.g. "20240115".
var compactDate = regexp.MustCompile(`^\d{8}$`)

// registrationYear extracts the year from a first-admission date. RDW dates
// arrive either as compact YYYYMMDD strings or as parseable calendar dates;
// anything else yields 0, which sorts last in both directions.
func registrationYear(value string) int {
	if value == "" {
		return 0
	}
	if compactDate.MatchString(value) {
		year, err := strconv.Atoi(value[:4])
		if err != nil {
			return 0
		}
		return year
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Year()
		}
	}
	return 0
}

// Sort orders records by the given column in place, stably. An empty column
// leaves the input order untouched.
//
// Two columns sort on derived values: wam_verzekerd orders insured ("Ja")
// against uninsured, and datum_eerste_toelating orders by extracted year
// with unknown years last regardless of direction. Every other column
// compares lowercase string forms.
func Sort(records []rdw.Record, column string, dir Direction) {
	if column == "" {
		return
	}

	switch column {
	case "datum_eerste_toelating":
		sort.SliceStable(records, func(i, j int) bool {
			iYear := registrationYear(rdw.Stringify(records[i][column]))
			jYear := registrationYear(rdw.Stringify(records[j][column]))
			if iYear == 0 || jYear == 0 {
				// Unknown years go last in both directions.
				return iYear != 0 && jYear == 0
			}
			if dir == Descending {
				return iYear > jYear
			}
			return iYear < jYear
		})

	case "wam_verzekerd":
		sort.SliceStable(records, func(i, j int) bool {
			iIns := insuredRank(records[i][column])
			jIns := insuredRank(records[j][column])
			if dir == Descending {
				return iIns > jIns
			}
			return iIns < jIns
		})

	default:
		sort.SliceStable(records, func(i, j int) bool {
			iStr := strings.ToLower(rdw.Stringify(records[i][column]))
			jStr := strings.ToLower(rdw.Stringify(records[j][column]))
			if dir == Descending {
				return iStr > jStr
			}
			return iStr < jStr
		})
	}
}

// insuredRank maps the WAM insurance flag to a sortable rank: exactly "Ja"
// counts as insured, anything else does not.
func insuredRank(v any) int {
	if rdw.Stringify(v) == "Ja" {
		return 1
	}
	return 0
}
