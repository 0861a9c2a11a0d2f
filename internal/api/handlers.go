// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package api implements the HTTP surface: the pass-through statistics
// gateway, the derived chart/table/summary endpoints, the photo catalog
// route, locale handling, and health probes.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/TheOnly3aq/z3radar/internal/cache"
	"github.com/TheOnly3aq/z3radar/internal/config"
	"github.com/TheOnly3aq/z3radar/internal/metrics"
	"github.com/TheOnly3aq/z3radar/internal/models"
	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

// PhotoStore is the read surface of the photo catalog.
type PhotoStore interface {
	ListActive(ctx context.Context, website string) ([]models.Photo, error)
	Ping(ctx context.Context) error
}

// Handler holds the dependencies shared across HTTP handlers.
type Handler struct {
	cfg      *config.Config
	upstream rdw.StatsAPI
	// photos is nil when no catalog database is configured; the photo route
	// then serves an empty gallery.
	photos    PhotoStore
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates the handler set. photos may be nil.
func NewHandler(cfg *config.Config, upstream rdw.StatsAPI, photos PhotoStore) *Handler {
	return &Handler{
		cfg:       cfg,
		upstream:  upstream,
		photos:    photos,
		cache:     cache.New(cfg.Cache.TTL),
		startTime: time.Now(),
	}
}

// fetchRecords returns a car's rows for an upstream endpoint through the
// TTL cache. The gateway path never goes through here; only derived
// endpoints cache.
func (h *Handler) fetchRecords(ctx context.Context, car, endpoint string) ([]rdw.Record, bool, error) {
	key := cache.GenerateKey("records", fmt.Sprintf("%s/%s", car, endpoint))

	if cached, ok := h.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		if records, ok := cached.([]rdw.Record); ok {
			return records, true, nil
		}
	}
	metrics.CacheMisses.Inc()

	records, err := h.upstream.FetchRecords(ctx, car, endpoint)
	if err != nil {
		return nil, false, err
	}
	h.cache.Set(key, records)
	return records, false, nil
}
