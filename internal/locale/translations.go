// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package locale

import (
	"strings"

	"github.com/TheOnly3aq/z3radar/internal/logging"
)

// messages holds the nested translation dictionaries. Keys are looked up by
// dot path, e.g. "dashboard.totalChanges".
var messages = map[Locale]map[string]any{
	NL: {
		"common": map[string]any{
			"loading":  "Laden...",
			"error":    "Er is iets misgegaan",
			"retry":    "Opnieuw proberen",
			"previous": "Vorige",
			"next":     "Volgende",
			"page":     "Pagina {page} van {totalPages}",
		},
		"dashboard": map[string]any{
			"title":        "Dashboard",
			"daily":        "Dagelijks",
			"monthly":      "Maandelijks",
			"count":        "Aantal",
			"totalChanges": "Totaal wijzigingen",
			"added":        "Toegevoegd",
			"removed":      "Verwijderd",
			"noData":       "Geen gegevens beschikbaar",
		},
		"stats": map[string]any{
			"total":    "Totaal geregistreerd",
			"red":      "Rode exemplaren",
			"insured":  "Verzekerd",
			"imported": "Geïmporteerd",
		},
		"search": map[string]any{
			"title":       "Zoeken",
			"placeholder": "Zoek op kenteken, kleur, ...",
			"noResults":   "Geen resultaten gevonden",
			"showing":     "Resultaat {from}-{to} van {total}",
			"insured":     "Verzekerd",
			"uninsured":   "Niet verzekerd",
		},
		"photos": map[string]any{
			"title": "Foto's",
			"empty": "Nog geen foto's beschikbaar",
		},
	},
	EN: {
		"common": map[string]any{
			"loading":  "Loading...",
			"error":    "Something went wrong",
			"retry":    "Try again",
			"previous": "Previous",
			"next":     "Next",
			"page":     "Page {page} of {totalPages}",
		},
		"dashboard": map[string]any{
			"title":        "Dashboard",
			"daily":        "Daily",
			"monthly":      "Monthly",
			"count":        "Count",
			"totalChanges": "Total changes",
			"added":        "Added",
			"removed":      "Removed",
			"noData":       "No data available",
		},
		"stats": map[string]any{
			"total":    "Total registered",
			"red":      "Red examples",
			"insured":  "Insured",
			"imported": "Imported",
		},
		"search": map[string]any{
			"title":       "Search",
			"placeholder": "Search by plate, color, ...",
			"noResults":   "No results found",
			"showing":     "Showing {from}-{to} of {total}",
			"insured":     "Insured",
			"uninsured":   "Not insured",
		},
		"photos": map[string]any{
			"title": "Photos",
			"empty": "No photos available yet",
		},
	},
}

// Messages returns a locale's full dictionary. The frontend fetches it once
// per language and resolves keys client-side; T covers single lookups.
// Callers must treat the returned map as read-only.
func Messages(loc Locale) map[string]any {
	if m, ok := messages[loc]; ok {
		return m
	}
	return messages[Default]
}

// T resolves a dot-path translation key for the given locale, substituting
// {placeholder} tokens from values. Missing keys and non-string leaves log a
// warning and return the key itself so broken translations stay visible
// instead of blanking out UI text.
func T(loc Locale, key string, values map[string]string) string {
	var node any = messages[loc]
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			logging.Warn().Str("key", key).Str("locale", string(loc)).Msg("Translation key not found")
			return key
		}
		node, ok = m[part]
		if !ok {
			logging.Warn().Str("key", key).Str("locale", string(loc)).Msg("Translation key not found")
			return key
		}
	}

	text, ok := node.(string)
	if !ok {
		logging.Warn().Str("key", key).Str("locale", string(loc)).Msg("Translation value is not a string")
		return key
	}

	for placeholder, value := range values {
		text = strings.ReplaceAll(text, "{"+placeholder+"}", value)
	}
	return text
}
