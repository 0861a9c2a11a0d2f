// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
	"github.com/TheOnly3aq/z3radar/internal/vehicle"
)

// vehiclesRequest carries the validated query parameters of the vehicle
// table endpoint.
type vehiclesRequest struct {
	Search    string `validate:"omitempty,max=200"`
	Sort      string `validate:"omitempty,max=100"`
	Direction string `validate:"omitempty,oneof=asc desc"`
}

// VehiclesResponse is the payload of the vehicle table endpoint.
type VehiclesResponse struct {
	Items      []rdw.Record `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalItems int          `json:"totalItems"`
}

// Vehicles serves GET /api/cars/{car}/vehicles: the searchable, sortable
// registration table. Filtering matches the search term against the string
// form of every field; sorting applies the registration-specific
// comparators; pages hold twenty rows and the page number clamps into range.
func (h *Handler) Vehicles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	car := chi.URLParam(r, "car")
	if !h.cfg.CarAllowed(car) {
		respondError(w, http.StatusBadRequest, "CAR_NOT_AVAILABLE", "Car not available", nil)
		return
	}
	if err := h.cfg.Upstream.Ready(); err != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_ERROR", err.Error(), nil)
		return
	}

	req := vehiclesRequest{
		Search:    r.URL.Query().Get("search"),
		Sort:      r.URL.Query().Get("sort"),
		Direction: r.URL.Query().Get("dir"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	records, cached, err := h.fetchRecords(r.Context(), car, "rdw-data")
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), err)
		return
	}

	filtered := vehicle.Filter(records, req.Search)
	if req.Sort != "" {
		// Sort a copy so the cached record order stays untouched.
		sorted := make([]rdw.Record, len(filtered))
		copy(sorted, filtered)
		vehicle.Sort(sorted, req.Sort, vehicle.ParseDirection(req.Direction))
		filtered = sorted
	}

	items, page, totalPages := vehicle.Paginate(filtered, getIntParam(r, "page", 1))

	respondSuccess(w, &VehiclesResponse{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}, start, cached)
}

// Summary serves GET /api/cars/{car}/summary: the dashboard stat-card
// counters derived from the full registration set.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	car := chi.URLParam(r, "car")
	if !h.cfg.CarAllowed(car) {
		respondError(w, http.StatusBadRequest, "CAR_NOT_AVAILABLE", "Car not available", nil)
		return
	}
	if err := h.cfg.Upstream.Ready(); err != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_ERROR", err.Error(), nil)
		return
	}

	records, cached, err := h.fetchRecords(r.Context(), car, "rdw-data")
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), err)
		return
	}

	summary := vehicle.Summarize(records)
	respondSuccess(w, &summary, start, cached)
}
