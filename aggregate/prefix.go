// SPDX-License-Identifier: MIT
// Package: scanstat/aggregate
//
// Purpose:
//   - Build prefix sums over time for counts (exact int64) and baselines (float64).
//   - Serve window aggregates without re-walking time.
//
// Determinism & Performance:
//   - Builds run in fixed t→loc order: O(T·N) time, O(T·N) memory.
//   - Window is a pure gather over one cumulative row: O(|zone|).
//   - Counts.Reset reuses its buffers, so one Counts per worker suffices.

package aggregate

import "github.com/katalvlaran/scanstat/grid"

// Window is the aggregate of one (zone, duration) pair.
type Window struct {
	CountIn       int64
	BaselineIn    float64
	CountTotal    int64
	BaselineTotal float64
}

// CountOut is CountTotal − CountIn.
func (w Window) CountOut() int64 { return w.CountTotal - w.CountIn }

// BaselineOut is BaselineTotal − BaselineIn.
func (w Window) BaselineOut() float64 { return w.BaselineTotal - w.BaselineIn }

// Baselines holds cumulative baselines; immutable after construction.
type Baselines struct {
	t, n  int
	cum   []float64 // cum[(d-1)*n+loc], row-major
	total []float64 // total[d-1]
}

// NewBaselines builds baseline prefix sums for g.
func NewBaselines(g *grid.Grid) *Baselines {
	t, n := g.Periods(), g.Locations()
	b := &Baselines{
		t:     t,
		n:     n,
		cum:   make([]float64, t*n),
		total: make([]float64, t),
	}
	cumulate(b.cum, g.Baselines(), b.total, t, n)

	return b
}

// Periods returns T.
func (b *Baselines) Periods() int { return b.t }

// Total returns the grand baseline over the d most recent periods.
func (b *Baselines) Total(d int) float64 { return b.total[d-1] }

// Counts holds cumulative counts for one dataset.
type Counts struct {
	t, n  int
	cum   []int64
	total []int64
}

// NewCounts allocates a count prefix buffer of shape t×n and fills it from counts.
func NewCounts(t, n int, counts []int64) *Counts {
	c := &Counts{
		t:     t,
		n:     n,
		cum:   make([]int64, t*n),
		total: make([]int64, t),
	}
	c.Reset(counts)

	return c
}

// Reset recomputes the prefix sums in place from a new row-major counts
// buffer of the same shape. No allocation.
func (c *Counts) Reset(counts []int64) {
	cumulate(c.cum, counts, c.total, c.t, c.n)
}

// Total returns the number of cases in the d most recent periods.
func (c *Counts) Total(d int) int64 { return c.total[d-1] }

// Gather sums the aggregate of zone over durations 1..d.
// d must lie in [1, T]; zone entries must lie in [0, N). Both are
// guaranteed by zone.Decode and the search loop, so no checks are repeated
// in the hot path.
func Gather(c *Counts, b *Baselines, zone []int, d int) Window {
	base := (d - 1) * c.n
	crow := c.cum[base : base+c.n]
	brow := b.cum[base : base+b.n]

	var w Window
	for _, loc := range zone {
		w.CountIn += crow[loc]
		w.BaselineIn += brow[loc]
	}
	w.CountTotal = c.total[d-1]
	w.BaselineTotal = b.total[d-1]

	return w
}

// cumulate writes column-wise running sums of src into dst, and into
// total[d] the sum of dst row d taken in location order, so a zone that
// lists every location in ascending order reproduces total exactly.
func cumulate[E int64 | float64](dst, src, total []E, t, n int) {
	copy(dst[:n], src[:n])
	for d := 1; d < t; d++ {
		prev := dst[(d-1)*n : d*n]
		cur := dst[d*n : (d+1)*n]
		row := src[d*n : (d+1)*n]
		for loc := 0; loc < n; loc++ {
			cur[loc] = prev[loc] + row[loc]
		}
	}
	for d := 0; d < t; d++ {
		var s E
		for _, v := range dst[d*n : (d+1)*n] {
			s += v
		}
		total[d] = s
	}
}
