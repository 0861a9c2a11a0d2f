// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package stats derives chart-ready series from the loosely-typed rows the
// upstream statistics API returns. Upstream payloads disagree on field names
// across endpoints, so every logical field resolves through an ordered
// candidate list instead of a fixed schema.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

// Source selects which statistics series a chart renders.
type Source string

const (
	SourceDaily   Source = "daily"
	SourceMonthly Source = "monthly"
)

// Valid reports whether s names a known chart source.
func (s Source) Valid() bool {
	return s == SourceDaily || s == SourceMonthly
}

// Endpoint returns the upstream statistics endpoint backing this source.
func (s Source) Endpoint() string {
	if s == SourceMonthly {
		return "monthly-count"
	}
	return "daily-count"
}

// PageSize is the fixed number of points per chart page. Monthly series keep
// at most twelve entries, so their pagination is effectively single-page.
const PageSize = 15

// monthlyWindow is how many trailing entries a monthly series keeps.
const monthlyWindow = 12

// FieldCandidates maps each logical chart field to the upstream key names
// probed for it, in priority order.
var FieldCandidates = map[string][]string{
	"date":  {"date", "month", "day", "period", "time", "timestamp", "_id", "id"},
	"count": {"count", "total", "value", "amount", "quantity", "number"},
}

// Point is one chart data point. OriginalDate preserves the raw upstream
// value for day-level diff matching; Date carries the display form.
type Point struct {
	Date         string   `json:"date"`
	Count        float64  `json:"count"`
	OriginalDate string   `json:"originalDate"`
	Changes      *Changes `json:"changes,omitempty"`

	// parsed is the resolved calendar date used for ordering. Zero when the
	// raw value did not parse.
	parsed time.Time
}

// dateLayouts are tried in order when resolving a raw upstream date value.
// The upstream mixes full timestamps, calendar dates, and year-month strings
// depending on endpoint.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"2006-01",
	"January 2006",
	"Jan 2006",
}

// parseDate resolves a raw date string against the known layouts.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// displayDate renders a point's axis label: "2 jan" for daily series, "jan"
// for monthly. Unparsable dates fall back to the raw value.
func displayDate(raw string, parsed time.Time, ok bool, source Source) string {
	if !ok {
		return raw
	}
	month := strings.ToLower(parsed.Format("Jan"))
	if source == SourceDaily {
		return fmt.Sprintf("%d %s", parsed.Day(), month)
	}
	return month
}

// BuildSeries normalizes upstream rows into an ordered chart series.
//
// Each row's date resolves through the candidate list with a synthetic
// "Entry N" placeholder when nothing matches; counts default to 0. Daily
// series drop rows whose date does not parse to a calendar date; monthly
// series keep unparsable rows but sort them after the parsable ones, then
// trim to the trailing twelve entries. Both sort ascending by parsed date.
func BuildSeries(records []rdw.Record, source Source) []Point {
	points := make([]Point, 0, len(records))

	for i, rec := range records {
		raw := rec.StringField(FieldCandidates["date"], fmt.Sprintf("Entry %d", i+1))
		count := rec.NumberField(FieldCandidates["count"], 0)

		parsed, ok := parseDate(raw)
		if source == SourceDaily && !ok {
			continue
		}

		points = append(points, Point{
			Date:         displayDate(raw, parsed, ok, source),
			Count:        count,
			OriginalDate: raw,
			parsed:       parsed,
		})
	}

	sortPoints(points)

	if source == SourceMonthly && len(points) > monthlyWindow {
		points = points[len(points)-monthlyWindow:]
	}
	return points
}

// sortPoints orders points ascending by parsed date, keeping unparsable
// entries (zero parsed time) after all parsable ones in their input order.
func sortPoints(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		aOK, bOK := !a.parsed.IsZero(), !b.parsed.IsZero()
		if aOK != bOK {
			return aOK
		}
		if !aOK {
			return false
		}
		return a.parsed.Before(b.parsed)
	})
}

// TotalPages returns the page count for a series, never less than one so an
// empty series still reports page 1 of 1.
func TotalPages(total int) int {
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// DefaultPage returns the 1-based page shown when the caller does not ask
// for one: the last page for daily series (most recent data), the first
// otherwise.
func DefaultPage(source Source, totalPages int) int {
	if source == SourceDaily && totalPages > 1 {
		return totalPages
	}
	return 1
}

// Paginate returns the 1-based page of a series, clamping page into
// [1, totalPages].
func Paginate(points []Point, page int) ([]Point, int) {
	if len(points) == 0 {
		return []Point{}, 1
	}
	totalPages := TotalPages(len(points))
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(points) {
		end = len(points)
	}
	return points[start:end], page
}
