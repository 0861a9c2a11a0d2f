// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
	"github.com/TheOnly3aq/z3radar/internal/vehicle"
)

func registrations() []rdw.Record {
	return []rdw.Record{
		{"kenteken": "AB-12-CD", "eerste_kleur": "ROOD", "wam_verzekerd": "Ja", "datum_eerste_toelating": "19970315", "datum_eerste_tenaamstelling_in_nederland": "19970315"},
		{"kenteken": "EF-34-GH", "eerste_kleur": "ZWART", "wam_verzekerd": "Nee", "datum_eerste_toelating": "20010720", "datum_eerste_tenaamstelling_in_nederland": "20150301"},
		{"kenteken": "IJ-56-KL", "eerste_kleur": "ROOD", "wam_verzekerd": "Ja", "datum_eerste_toelating": "19991104", "datum_eerste_tenaamstelling_in_nederland": "19991104"},
	}
}

func decodeVehicles(t *testing.T, body []byte) *VehiclesResponse {
	t.Helper()
	resp, err := decodeAPIResponse(body)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var vr VehiclesResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		t.Fatalf("decode vehicles payload: %v", err)
	}
	return &vr
}

func TestVehiclesUnfiltered(t *testing.T) {
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": registrations()}}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/vehicles", nil)
	w := serve(testConfig(), upstream, nil, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	vr := decodeVehicles(t, w.Body.Bytes())
	if vr.TotalItems != 3 || vr.Page != 1 || vr.TotalPages != 1 {
		t.Errorf("response = %d items page %d of %d", vr.TotalItems, vr.Page, vr.TotalPages)
	}
}

func TestVehiclesSearch(t *testing.T) {
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": registrations()}}

	// "ja" matches wam_verzekerd "Ja" case-insensitively.
	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/vehicles?search=ja", nil)
	w := serve(testConfig(), upstream, nil, r)

	vr := decodeVehicles(t, w.Body.Bytes())
	if vr.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", vr.TotalItems)
	}
}

func TestVehiclesSortDescending(t *testing.T) {
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": registrations()}}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/vehicles?sort=datum_eerste_toelating&dir=desc", nil)
	w := serve(testConfig(), upstream, nil, r)

	vr := decodeVehicles(t, w.Body.Bytes())
	if len(vr.Items) != 3 {
		t.Fatalf("got %d items", len(vr.Items))
	}
	if got := vr.Items[0]["kenteken"]; got != "EF-34-GH" {
		t.Errorf("first item = %v, want most recent admission EF-34-GH", got)
	}
}

func TestVehiclesInvalidDirection(t *testing.T) {
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": registrations()}}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/vehicles?sort=kenteken&dir=sideways", nil)
	w := serve(testConfig(), upstream, nil, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for invalid dir", w.Code)
	}
}

func TestVehiclesPageClamps(t *testing.T) {
	records := make([]rdw.Record, 0, 45)
	for i := 0; i < 45; i++ {
		records = append(records, rdw.Record{"n": float64(i)})
	}
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": records}}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/vehicles?page=99", nil)
	w := serve(testConfig(), upstream, nil, r)

	vr := decodeVehicles(t, w.Body.Bytes())
	if vr.Page != 3 || vr.TotalPages != 3 {
		t.Errorf("page = %d of %d, want clamped to 3 of 3", vr.Page, vr.TotalPages)
	}
	if len(vr.Items) != 45-2*vehicle.PageSize {
		t.Errorf("last page has %d items, want %d", len(vr.Items), 45-2*vehicle.PageSize)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": registrations()}}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/summary", nil)
	w := serve(testConfig(), upstream, nil, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}

	resp, err := decodeAPIResponse(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw, _ := json.Marshal(resp.Data)
	var summary vehicle.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}

	if summary.Total != 3 || summary.Red != 2 || summary.Insured != 2 || summary.Imported != 1 {
		t.Errorf("summary = %+v, want {Total:3 Red:2 Insured:2 Imported:1}", summary)
	}
}

func TestVehiclesCachesUpstream(t *testing.T) {
	upstream := &fakeUpstream{records: map[string][]rdw.Record{"rdw-data": registrations()}}
	cfg := testConfig()

	handler := NewHandler(cfg, upstream, nil)
	router := NewRouter(cfg, handler)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cars/Z3/vehicles", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}

	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (cached afterwards)", upstream.calls)
	}
}
