// Package aggregate answers "how many cases and how much baseline fall in
// zone Z over the d most recent periods" in O(|Z|) time.
//
// Both matrices are turned into column-wise cumulative sums down time:
//
//	cum[d][loc] = Σ_{t<=d} value[t][loc]
//
// together with per-duration grand totals. A window query then gathers
// cum[d-1][loc] for loc in Z. Baseline prefixes are built once per scan and
// shared read-only by every dataset; count prefixes are rebuilt per dataset
// into a reusable buffer.
package aggregate
