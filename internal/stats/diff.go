// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package stats

import (
	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

// Changes summarizes the registrations added and removed on one calendar
// day. It annotates chart tooltips only; points with zero total changes stay
// unannotated.
type Changes struct {
	Added        []string `json:"added"`
	Removed      []string `json:"removed"`
	TotalChanges int      `json:"totalChanges"`
}

// DailyDifference is one day-keyed change record from the daily-differences
// endpoint.
type DailyDifference struct {
	Date    string
	Changes Changes
}

// ParseDifferences converts upstream daily-differences rows into change
// records. The upstream is inconsistent about list shape: added/removed may
// arrive as an array, a bare scalar, or be absent entirely.
func ParseDifferences(records []rdw.Record) []DailyDifference {
	diffs := make([]DailyDifference, 0, len(records))
	for _, rec := range records {
		date, ok := rec["date"]
		if !ok || date == nil {
			continue
		}

		var changes Changes
		if ch, ok := rec["changes"].(map[string]any); ok {
			changes.Added = toStringList(ch["added"])
			changes.Removed = toStringList(ch["removed"])
		} else {
			changes.Added = []string{}
			changes.Removed = []string{}
		}
		changes.TotalChanges = int(rdw.ToNumber(rec["totalChanges"]))

		diffs = append(diffs, DailyDifference{
			Date:    rdw.Stringify(date),
			Changes: changes,
		})
	}
	return diffs
}

// toStringList normalizes an array-or-scalar value into a string slice.
func toStringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, rdw.Stringify(item))
		}
		return out
	default:
		return []string{rdw.Stringify(val)}
	}
}

// dayKey reduces a raw date value to its YYYY-MM-DD form for calendar-day
// matching. Unparsable dates yield "" and never match.
func dayKey(raw string) string {
	t, ok := parseDate(raw)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// Annotate attaches change records to chart points by calendar-day equality.
// A point only carries changes when the matched record reports more than
// zero total changes.
func Annotate(points []Point, diffs []DailyDifference) {
	if len(diffs) == 0 {
		return
	}

	byDay := make(map[string]*DailyDifference, len(diffs))
	for i := range diffs {
		key := dayKey(diffs[i].Date)
		if key == "" {
			continue
		}
		if _, exists := byDay[key]; !exists {
			byDay[key] = &diffs[i]
		}
	}

	for i := range points {
		key := dayKey(points[i].OriginalDate)
		if key == "" {
			continue
		}
		diff, ok := byDay[key]
		if !ok || diff.Changes.TotalChanges <= 0 {
			continue
		}
		changes := diff.Changes
		points[i].Changes = &changes
	}
}
