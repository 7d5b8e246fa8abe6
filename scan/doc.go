// Package scan is the entry point of the space-time scan statistic kernel.
//
// Scan validates a counts/baselines grid and a flat zone encoding, finds the
// most likely cluster (MLC) of the observed data, then draws num_mcsim
// permutation replicates and records the MLC score of each.
// Output.PValue ranks the observed score among the replicate scores.
//
// Usage:
//
//	out, err := scan.Scan(ctx, scan.Input{
//		Counts:      counts,      // T×N, row 0 most recent
//		Baselines:   baselines,   // T×N, all > 0
//		Zones:       zones,       // flat location indices
//		ZoneLengths: zoneLengths, // Σ == len(Zones)
//	},
//		scan.WithNumMCSim(999),
//		scan.WithSeed(42),
//	)
//
// The observed and simulated tables both have the columns
// zone, duration, score, relrisk_in, relrisk_out. Replicates are computed on
// a bounded pool of goroutines; each replicate draws from its own seeded
// stream, so the output does not depend on the worker count.
package scan
