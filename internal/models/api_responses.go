// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package models defines the data structures shared between the HTTP layer,
// the photo store, and the derived statistics code.
package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by the
// derived-data endpoints (charts, vehicles, summary, photos, locale).
//
// The proxy gateway does NOT use this wrapper: it relays the upstream body
// verbatim and reports its own failures as a bare {"error": ...} object, so
// existing dashboard clients keep working unchanged.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the server-side processing time in milliseconds. Cached is
// set when the response was served from the upstream TTL cache (omitted when
// false).
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details for failed requests.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
