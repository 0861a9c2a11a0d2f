// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/metrics"
)

// allowedEndpoints is the fixed set of upstream statistics endpoints the
// gateway will forward. Everything else is rejected before any upstream
// call.
var allowedEndpoints = map[string]bool{
	"daily-count":       true,
	"monthly-count":     true,
	"daily-differences": true,
	"rdw-data":          true,
	"summary":           true,
}

// setNoCacheHeaders marks a gateway response non-cacheable. Stale upstream
// errors must never be served from a CDN.
func setNoCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// proxyError writes the gateway's bare {"error": ...} shape. The gateway
// predates the wrapped response envelope and its consumers depend on the
// flat form.
func proxyError(w http.ResponseWriter, status int, message string) {
	setNoCacheHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal proxy error")
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write proxy error")
	}
}

// StatsProxy forwards GET /api/cars/{car}/stats/{endpoint} to the upstream
// statistics API and relays the reply verbatim.
//
// Checks run in a fixed order: endpoint allow-list, car allow-list, shared
// secret configured, caller authorization, upstream base URL configured.
// Callers authorize either with a matching x-api-key header or by being
// same-origin (Referer host equal to the request Host). All responses,
// success or failure, are marked non-cacheable.
func (h *Handler) StatsProxy(w http.ResponseWriter, r *http.Request) {
	car := chi.URLParam(r, "car")
	endpoint := chi.URLParam(r, "endpoint")

	if !allowedEndpoints[endpoint] {
		metrics.ProxyRejectionsTotal.WithLabelValues("endpoint").Inc()
		proxyError(w, http.StatusBadRequest, "Not allowed")
		return
	}

	if !h.cfg.CarAllowed(car) {
		metrics.ProxyRejectionsTotal.WithLabelValues("car").Inc()
		proxyError(w, http.StatusBadRequest, "Car not available")
		return
	}

	expectedKey := h.cfg.Upstream.APIKey
	if expectedKey == "" {
		metrics.ProxyRejectionsTotal.WithLabelValues("misconfigured").Inc()
		proxyError(w, http.StatusInternalServerError, "API_KEY is not configured")
		return
	}

	if r.Header.Get("x-api-key") != expectedKey && !sameOrigin(r) {
		metrics.ProxyRejectionsTotal.WithLabelValues("unauthorized").Inc()
		logging.Ctx(r.Context()).Warn().
			Str("car", sanitizeLogValue(car)).
			Str("endpoint", sanitizeLogValue(endpoint)).
			Msg("Unauthorized proxy request")
		proxyError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if h.cfg.Upstream.BaseURL == "" {
		metrics.ProxyRejectionsTotal.WithLabelValues("misconfigured").Inc()
		proxyError(w, http.StatusInternalServerError, "API_URL is not configured")
		return
	}

	resp, err := h.upstream.Forward(r.Context(), car, endpoint)
	if err != nil {
		proxyError(w, http.StatusBadGateway, err.Error())
		return
	}

	// JSON bodies are re-serialized so the gateway only relays well-formed
	// JSON; anything else passes through untouched with its original
	// content type.
	if resp.IsJSON() {
		var body any
		if err := resp.Decode(&body); err != nil {
			proxyError(w, http.StatusBadGateway, err.Error())
			return
		}
		data, err := json.Marshal(body)
		if err != nil {
			proxyError(w, http.StatusBadGateway, err.Error())
			return
		}
		setNoCacheHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if _, err := w.Write(data); err != nil {
			logging.Error().Err(err).Msg("Failed to relay upstream response")
		}
		return
	}

	setNoCacheHeaders(w)
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		logging.Error().Err(err).Msg("Failed to relay upstream response")
	}
}

// sameOrigin reports whether the request's Referer names the same host the
// request was addressed to. An absent or unparsable Referer is not
// same-origin.
func sameOrigin(r *http.Request) bool {
	referer := r.Header.Get("Referer")
	host := r.Host
	if referer == "" || host == "" {
		return false
	}
	u, err := url.Parse(referer)
	if err != nil {
		return false
	}
	return u.Host == host
}
