// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/models"
)

// Photos serves GET /api/photos: the active photo set in gallery order.
//
// A ?website= value narrows the set only when it exactly matches one of the
// deployment's recognized tags; unrecognized values are ignored rather than
// rejected, so stale links keep working. In production a missing or failing
// catalog degrades to an empty gallery; development surfaces the error so
// it gets noticed.
func (h *Handler) Photos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	website := r.URL.Query().Get("website")
	if website != "" && !h.cfg.WebsiteTagAllowed(website) {
		website = ""
	}

	if h.photos == nil {
		if h.cfg.IsProduction() {
			respondSuccess(w, []models.Photo{}, start, false)
			return
		}
		respondError(w, http.StatusInternalServerError, "PHOTO_STORE_UNAVAILABLE", "Photo store is not configured", nil)
		return
	}

	photos, err := h.photos.ListActive(r.Context(), website)
	if err != nil {
		if h.cfg.IsProduction() {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Photo query failed, serving empty gallery")
			respondSuccess(w, []models.Photo{}, start, false)
			return
		}
		respondError(w, http.StatusInternalServerError, "PHOTO_QUERY_FAILED", "Failed to load photos", err)
		return
	}

	respondSuccess(w, photos, start, false)
}
