// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TheOnly3aq/z3radar/internal/config"
	"github.com/TheOnly3aq/z3radar/internal/locale"
)

// NewRouter builds the full HTTP surface around the handler set.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	mw := NewChiMiddleware(&cfg.Security)

	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(locale.Middleware(cfg.IsProduction()))

	// Health endpoints get a permissive rate limit so monitoring can poll
	// them frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/cars/{car}", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(PrometheusMetrics)

		// The pass-through statistics gateway. No caching and no wrapped
		// response envelope on this surface.
		r.Get("/stats/{endpoint}", handler.StatsProxy)

		// Derived data endpoints.
		r.Get("/charts/{source}", handler.Chart)
		r.Get("/vehicles", handler.Vehicles)
		r.Get("/summary", handler.Summary)
	})

	r.Route("/api/photos", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(PrometheusMetrics)
		r.Get("/", handler.Photos)
	})

	r.Route("/api/locale", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Get("/", handler.GetLocale)
		r.Post("/", handler.SetLocale)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
