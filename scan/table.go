// SPDX-License-Identifier: MIT
// Package: scanstat/scan
//
// table.go: assembles per-dataset search results into output tables.

package scan

import (
	"math"

	"github.com/katalvlaran/scanstat/search"
)

// Row is one output row: zone id (position in the input zone sequence),
// duration, score and the two relative risks.
type Row = search.Row

// Columns are the fixed column names of every Table.
var Columns = []string{"zone", "duration", "score", "relrisk_in", "relrisk_out"}

// Table is an ordered list of rows grouped by dataset. The observed table
// has one group; the simulated table has one group per replicate, in
// replicate index order.
type Table struct {
	Rows   []Row
	bounds []int // len = Groups()+1; group i is Rows[bounds[i]:bounds[i+1]]
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Groups returns the number of datasets represented.
func (t *Table) Groups() int {
	if len(t.bounds) == 0 {
		return 0
	}

	return len(t.bounds) - 1
}

// Group returns the rows of dataset i.
func (t *Table) Group(i int) []Row {
	return t.Rows[t.bounds[i]:t.bounds[i+1]]
}

// Scores returns the score column.
func (t *Table) Scores() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Score
	}

	return out
}

// MaxScores returns the largest score of each group. In the default mode
// this equals Scores().
func (t *Table) MaxScores() []float64 {
	out := make([]float64, t.Groups())
	for g := range out {
		rows := t.Group(g)
		best := rows[0].Score
		for _, r := range rows[1:] {
			best = max(best, r.Score)
		}
		out[g] = best
	}

	return out
}

// assemble builds a Table from search results in dataset order.
// With storeAll each group is the dataset's full row set, or its NoCluster
// row when every window was degenerate, so no group is ever empty.
func assemble(results []search.Result, storeAll bool) *Table {
	n := len(results)
	if storeAll {
		n = 0
		for _, r := range results {
			n += max(len(r.All), 1)
		}
	}

	t := &Table{Rows: make([]Row, 0, n), bounds: make([]int, 1, len(results)+1)}
	for _, r := range results {
		if storeAll && len(r.All) > 0 {
			t.Rows = append(t.Rows, r.All...)
		} else {
			t.Rows = append(t.Rows, r.Best)
		}
		t.bounds = append(t.bounds, len(t.Rows))
	}

	return t
}

// PValue is the Monte Carlo p-value of the observed MLC: the rank of its
// score among the replicate maxima, (1 + #{sim ≥ obs}) / (1 + R).
// It is NaN when no replicates were run.
func (o *Output) PValue() float64 {
	sims := o.Simulated.MaxScores()
	if len(sims) == 0 {
		return math.NaN()
	}
	obs := o.Observed.MaxScores()[0]
	exceed := 0
	for _, s := range sims {
		if s >= obs {
			exceed++
		}
	}

	return float64(1+exceed) / float64(1+len(sims))
}
