// Package permute generates Monte Carlo replicates of a counts grid under a
// null hypothesis of no clustering.
//
// Three null models are available:
//
//   - RowUniform (default): every time row is treated independently; the
//     row's cases are reassigned to locations uniformly at random. Row totals
//     are preserved, baselines are untouched.
//   - RowBaselineWeighted: as RowUniform, but each case lands on a location
//     with probability proportional to that row's baselines.
//   - SpaceTime: the space-time permutation of Kulldorff (2005). The time
//     labels of all cases are shuffled, preserving both the row (time) and
//     column (location) totals. Every case is labelled individually, so the
//     total is capped by WithMaxCases.
//
// The row models draw each row as a multinomial through conditional
// binomials, so their cost depends on the grid size, not on the counts.
//
// Randomness is split into one stream per replicate. Stream(seed, i) keys a
// ChaCha8 generator with both the seed and the replicate index, so replicate
// i is the same no matter which worker produces it or in which order.
package permute
