// SPDX-License-Identifier: MIT
// Package: scanstat/grid
//
// grid.go: the immutable T×N counts/baselines pair.

package grid

import (
	"fmt"
	"strings"
)

const (
	opNew     = "New"
	opNewFlat = "NewFlat"
)

// Grid is a validated T×N pair of case counts and expected baselines.
// t is the number of periods, n the number of locations; counts and
// baselines hold t*n elements in row-major order, row 0 most recent.
type Grid struct {
	t, n      int
	counts    []int64
	baselines []float64
}

// New copies and validates two row-slices matrices.
// Stage 1 (Validate shape): both rectangles, non-empty, same dimensions.
// Stage 2 (Flatten): copy into row-major buffers.
// Stage 3 (Validate values): baselines finite and > 0, counts ≥ 0.
// Complexity: O(T·N) time and memory.
func New(counts [][]int64, baselines [][]float64) (*Grid, error) {
	ct, cn, err := ValidateShape(counts)
	if err != nil {
		return nil, gridErrorf(opNew, fmt.Errorf("counts: %w", err))
	}
	bt, bn, err := ValidateShape(baselines)
	if err != nil {
		return nil, gridErrorf(opNew, fmt.Errorf("baselines: %w", err))
	}
	if ct != bt || cn != bn {
		return nil, gridErrorf(opNew,
			fmt.Errorf("%w: counts %dx%d, baselines %dx%d", ErrShapeMismatch, ct, cn, bt, bn))
	}

	flatC := make([]int64, 0, ct*cn)
	flatB := make([]float64, 0, ct*cn)
	for t := 0; t < ct; t++ {
		flatC = append(flatC, counts[t]...)
		flatB = append(flatB, baselines[t]...)
	}

	return newChecked(opNew, ct, cn, flatC, flatB)
}

// NewFlat validates row-major buffers of length periods*locations.
// The buffers are adopted, not copied; the caller must not modify them afterwards.
func NewFlat(periods, locations int, counts []int64, baselines []float64) (*Grid, error) {
	if periods <= 0 || locations <= 0 {
		return nil, gridErrorf(opNewFlat, ErrBadShape)
	}
	want := periods * locations
	if len(counts) != want || len(baselines) != want {
		return nil, gridErrorf(opNewFlat,
			fmt.Errorf("%w: want %d cells, counts=%d baselines=%d", ErrShapeMismatch, want, len(counts), len(baselines)))
	}

	return newChecked(opNewFlat, periods, locations, counts, baselines)
}

func newChecked(op string, t, n int, counts []int64, baselines []float64) (*Grid, error) {
	if err := ValidateBaselines(baselines, n); err != nil {
		return nil, gridErrorf(op, err)
	}
	if err := ValidateCounts(counts, n); err != nil {
		return nil, gridErrorf(op, err)
	}

	return &Grid{t: t, n: n, counts: counts, baselines: baselines}, nil
}

// Periods returns T.
func (g *Grid) Periods() int { return g.t }

// Locations returns N.
func (g *Grid) Locations() int { return g.n }

// Counts returns the flat row-major counts. Read-only view.
func (g *Grid) Counts() []int64 { return g.counts }

// Baselines returns the flat row-major baselines. Read-only view.
func (g *Grid) Baselines() []float64 { return g.baselines }

// Row returns the counts of period t. Read-only view.
func (g *Grid) Row(t int) []int64 {
	return g.counts[t*g.n : (t+1)*g.n : (t+1)*g.n]
}

// BaselineRow returns the baselines of period t. Read-only view.
func (g *Grid) BaselineRow(t int) []float64 {
	return g.baselines[t*g.n : (t+1)*g.n : (t+1)*g.n]
}

// Count returns counts[t][loc] or ErrOutOfRange.
func (g *Grid) Count(t, loc int) (int64, error) {
	idx, err := g.indexOf("Count", t, loc)
	if err != nil {
		return 0, err
	}

	return g.counts[idx], nil
}

// Baseline returns baselines[t][loc] or ErrOutOfRange.
func (g *Grid) Baseline(t, loc int) (float64, error) {
	idx, err := g.indexOf("Baseline", t, loc)
	if err != nil {
		return 0, err
	}

	return g.baselines[idx], nil
}

func (g *Grid) indexOf(op string, t, loc int) (int, error) {
	if t < 0 || t >= g.t || loc < 0 || loc >= g.n {
		return 0, cellErrorf(op, t, loc, ErrOutOfRange)
	}

	return t*g.n + loc, nil
}

// RowTotals returns Σ_loc counts[t][loc] for every period.
// Complexity: O(T·N).
func (g *Grid) RowTotals() []int64 {
	out := make([]int64, g.t)
	for t := 0; t < g.t; t++ {
		for _, c := range g.Row(t) {
			out[t] += c
		}
	}

	return out
}

// TotalCount returns the number of cases in the whole grid.
func (g *Grid) TotalCount() int64 {
	var s int64
	for _, c := range g.counts {
		s += c
	}

	return s
}

// TotalBaseline returns Σ baselines over the whole grid.
func (g *Grid) TotalBaseline() float64 {
	var s float64
	for _, b := range g.baselines {
		s += b
	}

	return s
}

// MinBaseline returns the smallest cell baseline.
func (g *Grid) MinBaseline() float64 {
	m := g.baselines[0]
	for _, b := range g.baselines[1:] {
		m = min(m, b)
	}

	return m
}

// WithCounts returns a Grid sharing g's baselines with a different counts
// buffer of the same length. The buffer is adopted and only its length is
// checked; permutation replicates use this to avoid re-validating baselines.
func (g *Grid) WithCounts(counts []int64) (*Grid, error) {
	if len(counts) != len(g.counts) {
		return nil, gridErrorf("WithCounts", ErrShapeMismatch)
	}

	return &Grid{t: g.t, n: g.n, counts: counts, baselines: g.baselines}, nil
}

// String renders counts and baselines side by side, one period per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for t := 0; t < g.t; t++ {
		fmt.Fprintf(&sb, "t=%d counts=%v baselines=%v\n", t, g.Row(t), g.BaselineRow(t))
	}

	return sb.String()
}
