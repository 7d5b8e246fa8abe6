// SPDX-License-Identifier: MIT
// Package: scanstat/search

package search

import (
	"math"

	"github.com/katalvlaran/scanstat/aggregate"
	"github.com/katalvlaran/scanstat/statistic"
	"github.com/katalvlaran/scanstat/zone"
)

// NoZone is the zone id reported when a dataset has no valid window.
const NoZone = -1

// Row is one evaluated (zone, duration) pair.
type Row struct {
	Zone       int     `json:"zone" yaml:"zone"`
	Duration   int     `json:"duration" yaml:"duration"`
	Score      float64 `json:"score" yaml:"score"`
	RelRiskIn  float64 `json:"relrisk_in" yaml:"relrisk_in"`
	RelRiskOut float64 `json:"relrisk_out" yaml:"relrisk_out"`
}

// NoCluster is the row reported when every window is degenerate.
// Its score is 0 so it never outranks a real cluster in a replicate table.
func NoCluster() Row {
	return Row{Zone: NoZone, Duration: 0, Score: 0, RelRiskIn: math.NaN(), RelRiskOut: math.NaN()}
}

// Result is the outcome of one Maximize call.
type Result struct {
	Best Row
	// All holds every non-degenerate row in iteration order; nil unless requested.
	All []Row
	// Evaluated counts every (zone, duration) pair visited.
	Evaluated int
	// Degenerate counts pairs skipped for an empty inside or outside baseline.
	Degenerate int
}

// Maximize scores every pair of zones × [1, T] on the dataset described by
// counts and baselines and returns the maximizing row.
//
// Behavior highlights:
//   - Degenerate windows are counted and skipped; they never become Best and
//     are not included in All.
//   - If nothing valid remains, Best is NoCluster().
//   - storeAll pre-sizes All to zones·T.
//
// Complexity: O(T·Σ|zone|) time; O(1) extra memory, O(zones·T) with storeAll.
func Maximize(counts *aggregate.Counts, baselines *aggregate.Baselines, zones *zone.Set, storeAll bool) Result {
	periods := baselines.Periods()
	res := Result{Best: NoCluster()}
	if storeAll {
		res.All = make([]Row, 0, zones.Len()*periods)
	}

	found := false
	for z := 0; z < zones.Len(); z++ {
		locs := zones.Zone(z)
		for d := 1; d <= periods; d++ {
			res.Evaluated++
			s := statistic.Evaluate(aggregate.Gather(counts, baselines, locs, d))
			if s.Degenerate {
				res.Degenerate++
				continue
			}
			row := Row{Zone: z, Duration: d, Score: s.Value, RelRiskIn: s.RelRiskIn, RelRiskOut: s.RelRiskOut}
			if storeAll {
				res.All = append(res.All, row)
			}
			if !found || row.Score > res.Best.Score {
				res.Best = row
				found = true
			}
		}
	}

	return res
}
