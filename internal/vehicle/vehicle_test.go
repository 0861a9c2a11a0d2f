// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package vehicle

import (
	"testing"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

func fleet() []rdw.Record {
	return []rdw.Record{
		{
			"kenteken":               "AB-12-CD",
			"merk":                   "BMW",
			"eerste_kleur":           "ROOD",
			"wam_verzekerd":          "Ja",
			"datum_eerste_toelating": "19970315",
			"datum_eerste_tenaamstelling_in_nederland": "19970315",
		},
		{
			"kenteken":               "EF-34-GH",
			"merk":                   "BMW",
			"eerste_kleur":           "ZWART",
			"wam_verzekerd":          "Nee",
			"datum_eerste_toelating": "20010720",
			"datum_eerste_tenaamstelling_in_nederland": "20150301",
		},
		{
			"kenteken":               "IJ-56-KL",
			"merk":                   "BMW",
			"eerste_kleur":           "BLAUW",
			"wam_verzekerd":          "Ja",
			"datum_eerste_toelating": "",
			"datum_eerste_tenaamstelling_in_nederland": "19990101",
		},
	}
}

func TestFilter(t *testing.T) {
	records := fleet()

	tests := []struct {
		name string
		term string
		want int
	}{
		{"empty term returns all", "", 3},
		{"case-insensitive match on wam_verzekerd", "ja", 2},
		{"match on kenteken", "ef-34", 1},
		{"match on color", "ROOD", 1},
		{"no matches", "PORSCHE", 0},
		{"whitespace-only term returns all", "   ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.term)
			if len(got) != tt.want {
				t.Errorf("Filter(%q) = %d records, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestSortInsured(t *testing.T) {
	records := fleet()

	Sort(records, "wam_verzekerd", Descending)
	if rdw.Stringify(records[0]["wam_verzekerd"]) != "Ja" {
		t.Errorf("descending: first = %v, want Ja", records[0]["wam_verzekerd"])
	}
	if rdw.Stringify(records[2]["wam_verzekerd"]) != "Nee" {
		t.Errorf("descending: last = %v, want Nee", records[2]["wam_verzekerd"])
	}

	Sort(records, "wam_verzekerd", Ascending)
	if rdw.Stringify(records[0]["wam_verzekerd"]) != "Nee" {
		t.Errorf("ascending: first = %v, want Nee", records[0]["wam_verzekerd"])
	}
}

func TestSortAdmissionYearUnparsableLast(t *testing.T) {
	for _, dir := range []Direction{Ascending, Descending} {
		records := fleet()
		Sort(records, "datum_eerste_toelating", dir)

		last := rdw.Stringify(records[len(records)-1]["datum_eerste_toelating"])
		if last != "" {
			t.Errorf("%s: record with unparsable date sorted to %q, want last", dir, last)
		}
	}

	records := fleet()
	Sort(records, "datum_eerste_toelating", Ascending)
	if rdw.Stringify(records[0]["datum_eerste_toelating"]) != "19970315" {
		t.Errorf("ascending: first year = %v, want 19970315", records[0]["datum_eerste_toelating"])
	}

	Sort(records, "datum_eerste_toelating", Descending)
	if rdw.Stringify(records[0]["datum_eerste_toelating"]) != "20010720" {
		t.Errorf("descending: first year = %v, want 20010720", records[0]["datum_eerste_toelating"])
	}
}

func TestSortDefaultColumn(t *testing.T) {
	records := fleet()

	Sort(records, "eerste_kleur", Ascending)
	if rdw.Stringify(records[0]["eerste_kleur"]) != "BLAUW" {
		t.Errorf("ascending: first color = %v, want BLAUW", records[0]["eerste_kleur"])
	}

	Sort(records, "eerste_kleur", Descending)
	if rdw.Stringify(records[0]["eerste_kleur"]) != "ZWART" {
		t.Errorf("descending: first color = %v, want ZWART", records[0]["eerste_kleur"])
	}
}

func TestSortEmptyColumnNoop(t *testing.T) {
	records := fleet()
	first := rdw.Stringify(records[0]["kenteken"])
	Sort(records, "", Descending)
	if rdw.Stringify(records[0]["kenteken"]) != first {
		t.Error("Sort with empty column reordered records")
	}
}

func TestRegistrationYear(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"19970315", 1997},
		{"2001-07-20", 2001},
		{"", 0},
		{"unknown", 0},
		{"1997", 0}, // too short for the compact form, not a full date
	}

	for _, tt := range tests {
		if got := registrationYear(tt.value); got != tt.want {
			t.Errorf("registrationYear(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	records := make([]rdw.Record, 45)
	for i := range records {
		records[i] = rdw.Record{"n": float64(i)}
	}

	tests := []struct {
		name      string
		page      int
		wantLen   int
		wantPage  int
		wantTotal int
	}{
		{"first page", 1, PageSize, 1, 3},
		{"last partial page", 3, 5, 3, 3},
		{"clamp below", -2, PageSize, 1, 3},
		{"clamp above", 10, 5, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, page, totalPages := Paginate(records, tt.page)
			if len(items) != tt.wantLen || page != tt.wantPage || totalPages != tt.wantTotal {
				t.Errorf("Paginate(%d) = (%d items, page %d, %d pages), want (%d, %d, %d)",
					tt.page, len(items), page, totalPages, tt.wantLen, tt.wantPage, tt.wantTotal)
			}
		})
	}

	t.Run("empty set reports one page", func(t *testing.T) {
		items, page, totalPages := Paginate(nil, 5)
		if len(items) != 0 || page != 1 || totalPages != 1 {
			t.Errorf("Paginate(nil) = (%d, %d, %d), want (0, 1, 1)", len(items), page, totalPages)
		}
	})
}

func TestSummarize(t *testing.T) {
	summary := Summarize(fleet())

	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Red != 1 {
		t.Errorf("Red = %d, want 1", summary.Red)
	}
	if summary.Insured != 2 {
		t.Errorf("Insured = %d, want 2", summary.Insured)
	}
	// Two records have differing admission and registration dates.
	if summary.Imported != 2 {
		t.Errorf("Imported = %d, want 2", summary.Imported)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Total != 0 || summary.Red != 0 || summary.Insured != 0 || summary.Imported != 0 {
		t.Errorf("Summarize(nil) = %+v, want zeros", summary)
	}
}
