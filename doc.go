// SPDX-License-Identifier: MIT

// Package scanstat is a space-time scan statistic kernel: it finds the most
// likely cluster of excess cases over (zone, duration) windows and scores
// Monte Carlo replicates for inference.
//
// Packages, leaf first:
//
//	zone/       flat (zones, zone_lengths) encoding → zone sets
//	grid/       validated periods × locations counts and baselines
//	aggregate/  prefix sums down time, O(|zone|) window aggregates
//	statistic/  one-sided Poisson log-likelihood ratio and relative risks
//	search/     maximization over every (zone, duration) pair
//	permute/    null models and per-replicate seeded streams
//	scan/       entry point: validation, worker pool, tables, logs, spans, metrics
//	zonegen/    k-nearest and flexible zone generation from geometry
//	config/     viper settings → scan options
//	cmd/scanstat  CLI
//
// Quick start:
//
//	out, err := scan.Scan(ctx, scan.Input{
//		Counts:      counts,    // [T][N]int64, row 0 most recent
//		Baselines:   baselines, // [T][N]float64, > 0
//		Zones:       zones,
//		ZoneLengths: lengths,
//	}, scan.WithNumMCSim(999), scan.WithSeed(1))
//
// out.Observed holds the most likely cluster, out.Simulated one row per
// replicate, and out.PValue() the Monte Carlo p-value.
package scanstat
