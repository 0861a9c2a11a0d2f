// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package vehicle

import "github.com/TheOnly3aq/z3radar/internal/rdw"

// Summary holds the dashboard stat-card counters for one car's fleet.
type Summary struct {
	Total   int `json:"total"`
	Red     int `json:"red"`
	Insured int `json:"insured"`
	// Imported counts vehicles whose first registration in the Netherlands
	// differs from their first admission date, i.e. cars that entered the
	// country second-hand.
	Imported int `json:"imported"`
}

// Summarize derives the stat-card counters from a fleet's records.
func Summarize(records []rdw.Record) Summary {
	summary := Summary{Total: len(records)}
	for _, rec := range records {
		if rdw.Stringify(rec["eerste_kleur"]) == "ROOD" {
			summary.Red++
		}
		if rdw.Stringify(rec["wam_verzekerd"]) == "Ja" {
			summary.Insured++
		}
		if rdw.Stringify(rec["datum_eerste_tenaamstelling_in_nederland"]) != rdw.Stringify(rec["datum_eerste_toelating"]) {
			summary.Imported++
		}
	}
	return summary
}
