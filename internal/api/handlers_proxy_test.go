// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TheOnly3aq/z3radar/internal/rdw"
)

func TestStatsProxyPolicyRejections(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		apiKey     string // configured shared secret ("" = unconfigured)
		baseURL    string
		headerKey  string
		referer    string
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown endpoint rejected first",
			url:        "/api/cars/Z3/stats/secret-dump",
			apiKey:     "secret",
			baseURL:    "https://api.example.com/cars",
			headerKey:  "secret",
			wantStatus: http.StatusBadRequest,
			wantError:  "Not allowed",
		},
		{
			name:       "unknown car rejected second",
			url:        "/api/cars/M3/stats/daily-count",
			apiKey:     "secret",
			baseURL:    "https://api.example.com/cars",
			headerKey:  "secret",
			wantStatus: http.StatusBadRequest,
			wantError:  "Car not available",
		},
		{
			name:       "endpoint check wins over car check",
			url:        "/api/cars/M3/stats/secret-dump",
			apiKey:     "secret",
			baseURL:    "https://api.example.com/cars",
			wantStatus: http.StatusBadRequest,
			wantError:  "Not allowed",
		},
		{
			name:       "missing shared secret is a server error",
			url:        "/api/cars/Z3/stats/daily-count",
			apiKey:     "",
			baseURL:    "https://api.example.com/cars",
			headerKey:  "anything",
			wantStatus: http.StatusInternalServerError,
			wantError:  "API_KEY is not configured",
		},
		{
			name:       "wrong key without same-origin referer",
			url:        "/api/cars/Z3/stats/daily-count",
			apiKey:     "secret",
			baseURL:    "https://api.example.com/cars",
			headerKey:  "wrong",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "no key and cross-origin referer",
			url:        "/api/cars/Z3/stats/daily-count",
			apiKey:     "secret",
			baseURL:    "https://api.example.com/cars",
			referer:    "https://evil.example.org/page",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "unparsable referer is not same-origin",
			url:        "/api/cars/Z3/stats/daily-count",
			apiKey:     "secret",
			baseURL:    "https://api.example.com/cars",
			referer:    "::not a url::",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "missing base URL checked after auth",
			url:        "/api/cars/Z3/stats/daily-count",
			apiKey:     "secret",
			baseURL:    "",
			headerKey:  "secret",
			wantStatus: http.StatusInternalServerError,
			wantError:  "API_URL is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Upstream.APIKey = tt.apiKey
			cfg.Upstream.BaseURL = tt.baseURL

			upstream := &fakeUpstream{}
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.headerKey != "" {
				r.Header.Set("x-api-key", tt.headerKey)
			}
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}

			w := serve(cfg, upstream, nil, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Body.String(); got != `{"error":"`+tt.wantError+`"}` {
				t.Errorf("body = %s, want {\"error\":%q}", got, tt.wantError)
			}
			if upstream.calls != 0 {
				t.Errorf("upstream called %d times before policy rejection", upstream.calls)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-store, no-cache, must-revalidate, proxy-revalidate" {
				t.Errorf("Cache-Control = %q, rejection must be non-cacheable", cc)
			}
		})
	}
}

func TestStatsProxySameOriginAllowed(t *testing.T) {
	cfg := testConfig()
	upstream := &fakeUpstream{
		forwardResp: &rdw.Response{
			StatusCode:  http.StatusOK,
			ContentType: "application/json",
			Body:        []byte(`{"data":[]}`),
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/stats/daily-count", nil)
	r.Host = "z3radar.com"
	r.Header.Set("Referer", "https://z3radar.com/dashboard")

	w := serve(cfg, upstream, nil, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}
}

func TestStatsProxyRelaysJSONVerbatim(t *testing.T) {
	cfg := testConfig()
	// Upstream errors relay with their original status and body.
	upstream := &fakeUpstream{
		forwardResp: &rdw.Response{
			StatusCode:  http.StatusNotFound,
			ContentType: "application/json; charset=utf-8",
			Body:        []byte(`{"message":"no data for car"}`),
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/stats/rdw-data", nil)
	r.Header.Set("x-api-key", "secret")

	w := serve(cfg, upstream, nil, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want upstream's 404", w.Code)
	}
	if got := w.Body.String(); got != `{"message":"no data for car"}` {
		t.Errorf("body = %s, want upstream body", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if w.Header().Get("Pragma") != "no-cache" || w.Header().Get("Expires") != "0" {
		t.Error("missing no-cache headers on relayed response")
	}
}

func TestStatsProxyRelaysTextPassthrough(t *testing.T) {
	cfg := testConfig()
	upstream := &fakeUpstream{
		forwardResp: &rdw.Response{
			StatusCode:  http.StatusOK,
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte("plain maintenance notice"),
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/stats/summary", nil)
	r.Header.Set("x-api-key", "secret")

	w := serve(cfg, upstream, nil, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "plain maintenance notice" {
		t.Errorf("body = %q, want passthrough text", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q, want original upstream content type", ct)
	}
}

func TestStatsProxyUpstreamFailure(t *testing.T) {
	cfg := testConfig()
	upstream := &fakeUpstream{forwardErr: errors.New("upstream request failed: connection refused")}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/stats/daily-count", nil)
	r.Header.Set("x-api-key", "secret")

	w := serve(cfg, upstream, nil, r)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if got := w.Body.String(); got != `{"error":"upstream request failed: connection refused"}` {
		t.Errorf("body = %s, want the underlying error message", got)
	}
}

func TestStatsProxyMalformedUpstreamJSON(t *testing.T) {
	cfg := testConfig()
	upstream := &fakeUpstream{
		forwardResp: &rdw.Response{
			StatusCode:  http.StatusOK,
			ContentType: "application/json",
			Body:        []byte(`{"truncated":`),
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/cars/Z3/stats/daily-count", nil)
	r.Header.Set("x-api-key", "secret")

	w := serve(cfg, upstream, nil, r)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 for undecodable JSON", w.Code)
	}
}
