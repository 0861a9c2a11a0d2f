// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package models

import "time"

// Photo is a gallery photo record. Photos are created and edited out-of-band
// (an admin tool writes the table directly); this service only reads them.
//
// Active implements soft deletion: inactive photos stay in the table but are
// never served. Order is the manual gallery position, ascending.
type Photo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Order       int       `json:"order"`
	Active      bool      `json:"active"`
	Website     *string   `json:"website,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
