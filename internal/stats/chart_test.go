// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package stats

import (
	"fmt"
	"testing"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

func TestBuildSeriesFieldExtraction(t *testing.T) {
	records := []rdw.Record{
		{"month": "2024-01", "total": 5.0},
	}

	points := BuildSeries(records, SourceMonthly)
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].OriginalDate != "2024-01" {
		t.Errorf("OriginalDate = %q, want 2024-01", points[0].OriginalDate)
	}
	if points[0].Count != 5 {
		t.Errorf("Count = %v, want 5", points[0].Count)
	}
	// Monthly labels are the lowercase short month.
	if points[0].Date != "jan" {
		t.Errorf("Date = %q, want jan", points[0].Date)
	}
}

func TestBuildSeriesNoRecognizedFields(t *testing.T) {
	records := []rdw.Record{{"foo": 1.0}}

	points := BuildSeries(records, SourceMonthly)
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].OriginalDate != "Entry 1" {
		t.Errorf("OriginalDate = %q, want Entry 1", points[0].OriginalDate)
	}
	if points[0].Count != 0 {
		t.Errorf("Count = %v, want 0", points[0].Count)
	}
	// The synthetic placeholder does not parse and stays as the label.
	if points[0].Date != "Entry 1" {
		t.Errorf("Date = %q, want Entry 1", points[0].Date)
	}
}

func TestBuildSeriesDailyDropsUnparsable(t *testing.T) {
	records := []rdw.Record{
		{"date": "2024-01-03", "count": 3.0},
		{"date": "garbage", "count": 99.0},
		{"date": "2024-01-02", "count": 2.0},
	}

	points := BuildSeries(records, SourceDaily)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2 (unparsable dropped)", len(points))
	}
	// Sorted ascending by parsed date.
	if points[0].OriginalDate != "2024-01-02" || points[1].OriginalDate != "2024-01-03" {
		t.Errorf("order = [%q, %q], want ascending", points[0].OriginalDate, points[1].OriginalDate)
	}
	if points[0].Date != "2 jan" {
		t.Errorf("display date = %q, want \"2 jan\"", points[0].Date)
	}
}

func TestBuildSeriesMonthlyKeepsLastTwelve(t *testing.T) {
	records := make([]rdw.Record, 0, 15)
	for i := 0; i < 15; i++ {
		records = append(records, rdw.Record{
			"month": fmt.Sprintf("%04d-%02d", 2023+i/12, i%12+1),
			"count": float64(i),
		})
	}

	points := BuildSeries(records, SourceMonthly)
	if len(points) != 12 {
		t.Fatalf("got %d points, want 12", len(points))
	}
	// The trailing window keeps the most recent months.
	if points[len(points)-1].OriginalDate != "2024-03" {
		t.Errorf("last point = %q, want 2024-03", points[len(points)-1].OriginalDate)
	}
	if points[0].OriginalDate != "2023-04" {
		t.Errorf("first point = %q, want 2023-04", points[0].OriginalDate)
	}
}

func TestBuildSeriesMonthlyUnparsableSortLast(t *testing.T) {
	records := []rdw.Record{
		{"month": "whatever", "count": 1.0},
		{"month": "2024-02", "count": 2.0},
		{"month": "2024-01", "count": 3.0},
	}

	points := BuildSeries(records, SourceMonthly)
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[2].OriginalDate != "whatever" {
		t.Errorf("unparsable point sorted to %q position, want last", points[2].OriginalDate)
	}
}

func TestPaginate(t *testing.T) {
	points := make([]Point, 35)
	for i := range points {
		points[i].Count = float64(i)
	}

	tests := []struct {
		name     string
		page     int
		wantLen  int
		wantPage int
		first    float64
	}{
		{"first page", 1, PageSize, 1, 0},
		{"second page", 2, PageSize, 2, 15},
		{"last partial page", 3, 5, 3, 30},
		{"page below range clamps", 0, PageSize, 1, 0},
		{"page above range clamps", 99, 5, 3, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, page := Paginate(points, tt.page)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
			if page != tt.wantPage {
				t.Errorf("page = %d, want %d", page, tt.wantPage)
			}
			if len(got) > 0 && got[0].Count != tt.first {
				t.Errorf("first item count = %v, want %v", got[0].Count, tt.first)
			}
		})
	}

	t.Run("empty series", func(t *testing.T) {
		got, page := Paginate(nil, 3)
		if len(got) != 0 || page != 1 {
			t.Errorf("Paginate(nil, 3) = %d items page %d, want 0 items page 1", len(got), page)
		}
	})
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{PageSize, 1},
		{PageSize + 1, 2},
		{35, 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestDefaultPage(t *testing.T) {
	tests := []struct {
		source     Source
		totalPages int
		want       int
	}{
		{SourceDaily, 5, 5},
		{SourceDaily, 1, 1},
		{SourceDaily, 0, 1},
		{SourceMonthly, 5, 1},
		{SourceMonthly, 1, 1},
	}

	for _, tt := range tests {
		if got := DefaultPage(tt.source, tt.totalPages); got != tt.want {
			t.Errorf("DefaultPage(%s, %d) = %d, want %d", tt.source, tt.totalPages, got, tt.want)
		}
	}
}

func TestSourceEndpoint(t *testing.T) {
	if got := SourceDaily.Endpoint(); got != "daily-count" {
		t.Errorf("daily endpoint = %q", got)
	}
	if got := SourceMonthly.Endpoint(); got != "monthly-count" {
		t.Errorf("monthly endpoint = %q", got)
	}
	if Source("hourly").Valid() {
		t.Error("unknown source reported valid")
	}
}
