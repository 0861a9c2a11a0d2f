// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/models"
)

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Checks        map[string]string `json:"checks,omitempty"`
}

// HealthLive serves GET /api/v1/health/live: process liveness only, no
// dependency checks. Orchestrators use this to decide whether to restart
// the container.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, &HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}, time.Now(), false)
}

// HealthReady serves GET /api/v1/health/ready: readiness including the
// upstream configuration and the photo catalog connection. A missing
// upstream secret means the gateway can only serve errors, so the instance
// reports not-ready until the operator fixes the configuration.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	ready := true

	if err := h.cfg.Upstream.Ready(); err != nil {
		checks["upstream"] = err.Error()
		ready = false
	} else {
		checks["upstream"] = "ok"
	}

	if h.photos != nil {
		if err := h.photos.Ping(r.Context()); err != nil {
			checks["photo_store"] = err.Error()
			ready = false
		} else {
			checks["photo_store"] = "ok"
		}
	} else {
		checks["photo_store"] = "disabled"
	}

	status := &HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        checks,
	}
	if !ready {
		status.Status = "degraded"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     status,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    "NOT_READY",
				Message: "Service dependencies are not ready",
			},
		})
		return
	}
	respondSuccess(w, status, time.Now(), false)
}
