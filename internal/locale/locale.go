// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package locale implements the site's language preference: Dutch by
// default, English opt-in via a ?lng=en query parameter persisted in a
// one-year cookie. Page URLs carry the preference explicitly so shared links
// render in the language they were copied in.
package locale

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Locale is a supported display language.
type Locale string

const (
	NL Locale = "nl"
	EN Locale = "en"

	// Default is the language used when no preference is present.
	Default = NL
)

// CookieName persists the language preference across sessions.
const CookieName = "preferred-language"

// QueryParam carries an explicit language choice in page URLs.
const QueryParam = "lng"

// cookieMaxAge is one year in seconds.
const cookieMaxAge = 60 * 60 * 24 * 365

// Parse normalizes a raw language value. Only "en" selects English; any
// other value, including garbage, falls back to Dutch.
func Parse(raw string) Locale {
	if raw == string(EN) {
		return EN
	}
	return NL
}

// Resolve determines the request's locale. An explicit lng parameter wins;
// otherwise the stored cookie preference applies; otherwise the default.
func Resolve(r *http.Request) Locale {
	if lng := r.URL.Query().Get(QueryParam); lng != "" {
		return Parse(lng)
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return Parse(c.Value)
	}
	return Default
}

// SetCookie persists the locale preference for a year. The cookie is marked
// Secure in production deployments only, so local development over plain
// HTTP keeps working.
func SetCookie(w http.ResponseWriter, loc Locale, production bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(loc),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   production,
	})
}

// RedirectURL returns the URL a request without an explicit lng parameter
// should redirect to when the stored preference is English, and whether such
// a redirect applies. Dutch never redirects because it is the default.
func RedirectURL(r *http.Request) (string, bool) {
	if r.URL.Query().Get(QueryParam) != "" {
		return "", false
	}
	c, err := r.Cookie(CookieName)
	if err != nil || Parse(c.Value) != EN {
		return "", false
	}

	u := *r.URL
	q := u.Query()
	q.Set(QueryParam, string(EN))
	u.RawQuery = q.Encode()
	return u.String(), true
}

// LocalizedPath rewrites a site path for the given locale: English appends
// lng=en, Dutch strips it.
func LocalizedPath(path string, loc Locale) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	if loc == EN {
		q.Set(QueryParam, string(EN))
	} else {
		q.Del(QueryParam)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type contextKey struct{}

// ContextWith returns a context carrying the resolved locale.
func ContextWith(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, loc)
}

// FromContext returns the request's resolved locale, or the default when the
// middleware did not run.
func FromContext(ctx context.Context) Locale {
	if loc, ok := ctx.Value(contextKey{}).(Locale); ok {
		return loc
	}
	return Default
}

// Middleware resolves each request's locale into its context and refreshes
// the preference cookie. Page requests (anything outside /api/ and static
// assets) with a stored English preference but no lng parameter redirect to
// the English URL, so the preference survives cookie-only sessions.
func Middleware(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pageRequest(r.URL.Path) {
				if target, ok := RedirectURL(r); ok {
					http.Redirect(w, r, target, http.StatusTemporaryRedirect)
					return
				}
			}

			loc := Resolve(r)
			if pageRequest(r.URL.Path) {
				SetCookie(w, loc, production)
			}
			next.ServeHTTP(w, r.WithContext(ContextWith(r.Context(), loc)))
		})
	}
}

// pageRequest reports whether a path is a browser page rather than an API
// route or static asset.
func pageRequest(path string) bool {
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/metrics") {
		return false
	}
	// Paths with a file extension are static assets.
	return !strings.Contains(path, ".")
}
