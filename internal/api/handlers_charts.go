// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/stats"
)

// ChartResponse is the payload of the chart endpoints.
type ChartResponse struct {
	Source     string        `json:"source"`
	Points     []stats.Point `json:"points"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	TotalItems int           `json:"totalItems"`
}

// Chart serves GET /api/cars/{car}/charts/{source}: the normalized,
// paginated chart series for a car, with day-level change annotations on
// daily series.
//
// Without an explicit page parameter, daily charts open on their last page
// so the most recent data shows first; monthly charts fit on one page.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	car := chi.URLParam(r, "car")
	source := stats.Source(chi.URLParam(r, "source"))

	if !source.Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_SOURCE", "Unknown chart source", nil)
		return
	}
	if !h.cfg.CarAllowed(car) {
		respondError(w, http.StatusBadRequest, "CAR_NOT_AVAILABLE", "Car not available", nil)
		return
	}
	if err := h.cfg.Upstream.Ready(); err != nil {
		respondError(w, http.StatusInternalServerError, "CONFIG_ERROR", err.Error(), nil)
		return
	}

	records, cached, err := h.fetchRecords(r.Context(), car, source.Endpoint())
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), err)
		return
	}

	points := stats.BuildSeries(records, source)

	// Change annotations come from a separate endpoint and are cosmetic;
	// a failed diff fetch degrades to an unannotated chart.
	if source == stats.SourceDaily && len(points) > 0 {
		diffRecords, _, err := h.fetchRecords(r.Context(), car, "daily-differences")
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("car", sanitizeLogValue(car)).Msg("Daily differences unavailable")
		} else {
			stats.Annotate(points, stats.ParseDifferences(diffRecords))
		}
	}

	totalItems := len(points)
	totalPages := stats.TotalPages(totalItems)
	page := getIntParam(r, "page", stats.DefaultPage(source, totalPages))
	pagePoints, page := stats.Paginate(points, page)

	respondSuccess(w, &ChartResponse{
		Source:     string(source),
		Points:     pagePoints,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}, start, cached)
}
