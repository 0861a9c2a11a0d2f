// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/goccy/go-json"

	"github.com/TheOnly3aq/z3radar/internal/config"
	"github.com/TheOnly3aq/z3radar/internal/models"
	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

// testConfig returns a fully-populated development configuration with rate
// limiting disabled so tests never trip the limiter.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8380,
			Timeout:     5 * time.Second,
			Environment: "development",
		},
		Upstream: config.UpstreamConfig{
			BaseURL: "https://api.example.com/cars",
			APIKey:  "secret",
			Timeout: 5 * time.Second,
		},
		Cars:   config.CarsConfig{Allowed: []string{"Z3"}},
		Photos: config.PhotosConfig{WebsiteTags: []string{"Z3Radar", "LexusTracker"}},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Cache:   config.CacheConfig{TTL: time.Minute},
		Logging: config.LoggingConfig{Level: "disabled", Format: "json"},
	}
}

// fakeUpstream implements rdw.StatsAPI for handler tests, counting calls so
// tests can assert rejections happen before any upstream request.
type fakeUpstream struct {
	forwardResp *rdw.Response
	forwardErr  error
	records     map[string][]rdw.Record
	recordsErr  error
	calls       int
}

func (f *fakeUpstream) Forward(ctx context.Context, car, endpoint string) (*rdw.Response, error) {
	f.calls++
	if f.forwardErr != nil {
		return nil, f.forwardErr
	}
	return f.forwardResp, nil
}

func (f *fakeUpstream) FetchRecords(ctx context.Context, car, endpoint string) ([]rdw.Record, error) {
	f.calls++
	if f.recordsErr != nil {
		return nil, f.recordsErr
	}
	return f.records[endpoint], nil
}

// fakePhotoStore implements PhotoStore for handler tests.
type fakePhotoStore struct {
	photos  []models.Photo
	listErr error
	// website captures the filter the handler passed down.
	website string
}

func (f *fakePhotoStore) ListActive(ctx context.Context, website string) ([]models.Photo, error) {
	f.website = website
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.photos, nil
}

func (f *fakePhotoStore) Ping(ctx context.Context) error { return nil }

// serve routes a request through the full router and returns the recorder.
func serve(cfg *config.Config, upstream rdw.StatsAPI, photos PhotoStore, r *http.Request) *httptest.ResponseRecorder {
	handler := NewHandler(cfg, upstream, photos)
	router := NewRouter(cfg, handler)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

// decodeAPIResponse unmarshals a wrapped response body.
func decodeAPIResponse(body []byte) (*models.APIResponse, error) {
	var resp models.APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
