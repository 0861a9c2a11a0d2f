// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/TheOnly3aq/z3radar/internal/locale"
)

// localeRequest is the body of POST /api/locale.
type localeRequest struct {
	Locale string `json:"locale" validate:"required,oneof=nl en"`
}

// LocaleResponse is the payload of the locale endpoints.
type LocaleResponse struct {
	Locale string `json:"locale"`
	// Path is the current path rewritten for the locale, when the caller
	// supplied one via ?path=.
	Path string `json:"path,omitempty"`
	// Text is the resolved translation when the caller asked for a single
	// key via ?key=; other query parameters fill {placeholder} tokens.
	Text string `json:"text,omitempty"`
	// Messages is the locale's full dictionary, included when no single key
	// was requested so the frontend can resolve keys client-side.
	Messages map[string]any `json:"messages,omitempty"`
}

// GetLocale serves GET /api/locale: the locale the middleware resolved for
// this request (explicit lng parameter, then stored cookie, then the Dutch
// default) together with that locale's translation dictionary.
//
// With ?key=, the response carries the single translated string instead of
// the dictionary; remaining query parameters substitute {placeholder} tokens
// (e.g. ?key=common.page&page=2&totalPages=5). With ?path=, the response
// includes that path rewritten for the resolved locale, which the frontend
// uses for language-aware links.
func (h *Handler) GetLocale(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	loc := locale.FromContext(r.Context())

	resp := &LocaleResponse{Locale: string(loc)}
	q := r.URL.Query()
	if key := q.Get("key"); key != "" {
		resp.Text = locale.T(loc, key, placeholderValues(q))
	} else {
		resp.Messages = locale.Messages(loc)
	}
	if path := q.Get("path"); path != "" {
		resp.Path = locale.LocalizedPath(path, loc)
	}
	respondSuccess(w, resp, start, false)
}

// placeholderValues turns the non-reserved query parameters into substitution
// values for translation templates.
func placeholderValues(q url.Values) map[string]string {
	values := make(map[string]string)
	for name, vals := range q {
		switch name {
		case "key", "path", locale.QueryParam:
			continue
		}
		if len(vals) > 0 {
			values[name] = vals[0]
		}
	}
	return values
}

// SetLocale serves POST /api/locale: persists a language choice in the
// preference cookie for a year. The response carries the new locale's
// dictionary so a language switch needs no second request.
func (h *Handler) SetLocale(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req localeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	loc := locale.Parse(req.Locale)
	locale.SetCookie(w, loc, h.cfg.IsProduction())
	respondSuccess(w, &LocaleResponse{
		Locale:   string(loc),
		Messages: locale.Messages(loc),
	}, start, false)
}
