// SPDX-License-Identifier: MIT
// Package: scanstat/permute
//
// Purpose:
//   - Precompute, once per scan, what every replicate needs (row totals,
//     suffix baseline masses, or the expanded case list).
//   - Hand each worker a Workspace with private buffers so replicates can be
//     produced concurrently with no shared mutable state.
//
// Complexity per replicate:
//   - RowUniform:          O(T·N), one binomial draw per cell
//   - RowBaselineWeighted: O(T·N), one binomial draw per cell
//   - SpaceTime:           O(T·N + C), C the total number of cases,
//     bounded by WithMaxCases.

package permute

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/scanstat/grid"
)

// DefaultMaxCases bounds the cases SpaceTime expands into per-case labels.
const DefaultMaxCases = 1 << 24

// Option tunes New.
type Option func(*settings)

type settings struct {
	maxCases int64
}

// WithMaxCases sets the most cases a SpaceTime Permuter accepts.
// Row models draw whole cells and ignore the limit. Panics if n <= 0.
func WithMaxCases(n int64) Option {
	if n <= 0 {
		panic("permute: WithMaxCases: n must be > 0")
	}
	return func(s *settings) { s.maxCases = n }
}

// Permuter holds the read-only precomputation for one grid and model.
type Permuter struct {
	model     NullModel
	t, n      int
	rowTotals []int64

	// RowBaselineWeighted: the grid's baselines and, per row, the baseline
	// mass of locations loc..N-1, both row-major.
	weights     []float64
	tailWeights []float64

	// SpaceTime: time and location label of every case, row-major order.
	caseTimes []int32
	caseLocs  []int32
}

// New prepares a Permuter for g under model.
func New(g *grid.Grid, model NullModel, opts ...Option) (*Permuter, error) {
	if g == nil {
		return nil, fmt.Errorf("New: %w", ErrNilGrid)
	}
	if !model.Valid() {
		return nil, fmt.Errorf("New(%v): %w", model, ErrUnknownNullModel)
	}
	cfg := settings{maxCases: DefaultMaxCases}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Permuter{
		model:     model,
		t:         g.Periods(),
		n:         g.Locations(),
		rowTotals: g.RowTotals(),
	}

	switch model {
	case RowBaselineWeighted:
		p.weights = g.Baselines()
		p.tailWeights = make([]float64, p.t*p.n)
		for t := 0; t < p.t; t++ {
			row := g.BaselineRow(t)
			var running float64
			for loc := p.n - 1; loc >= 0; loc-- {
				running += row[loc]
				p.tailWeights[t*p.n+loc] = running
			}
		}
	case SpaceTime:
		total := g.TotalCount()
		if total > cfg.maxCases {
			return nil, fmt.Errorf("New(%v): %w: %d cases, limit %d", model, ErrTooManyCases, total, cfg.maxCases)
		}
		p.caseTimes = make([]int32, 0, total)
		p.caseLocs = make([]int32, 0, total)
		for t := 0; t < p.t; t++ {
			for loc, c := range g.Row(t) {
				for k := int64(0); k < c; k++ {
					p.caseTimes = append(p.caseTimes, int32(t))
					p.caseLocs = append(p.caseLocs, int32(loc))
				}
			}
		}
	}

	return p, nil
}

// Model returns the null model in use.
func (p *Permuter) Model() NullModel { return p.model }

// Workspace is a per-worker scratch area. Not safe for concurrent use.
type Workspace struct {
	p      *Permuter
	counts []int64
	times  []int32
}

// NewWorkspace allocates the buffers one worker needs.
func (p *Permuter) NewWorkspace() *Workspace {
	ws := &Workspace{p: p, counts: make([]int64, p.t*p.n)}
	if p.model == SpaceTime {
		ws.times = make([]int32, len(p.caseTimes))
	}

	return ws
}

// Permute fills the workspace buffer with one replicate drawn from rng and
// returns it. The slice is overwritten by the next call.
func (ws *Workspace) Permute(rng *rand.Rand) []int64 {
	clear(ws.counts)
	p := ws.p
	switch p.model {
	case RowUniform, RowBaselineWeighted:
		for t, total := range p.rowTotals {
			row := ws.counts[t*p.n : (t+1)*p.n]
			var w, tail []float64
			if p.model == RowBaselineWeighted {
				w = p.weights[t*p.n : (t+1)*p.n]
				tail = p.tailWeights[t*p.n : (t+1)*p.n]
			}
			spread(row, total, w, tail, rng)
		}
	case SpaceTime:
		copy(ws.times, p.caseTimes)
		rng.Shuffle(len(ws.times), func(i, j int) {
			ws.times[i], ws.times[j] = ws.times[j], ws.times[i]
		})
		for k, t := range ws.times {
			ws.counts[int(t)*p.n+int(p.caseLocs[k])]++
		}
	}

	return ws.counts
}

// spread draws a multinomial split of total cases over row as a chain of
// conditional binomials: location loc receives Binomial(remaining, q) with
// q = w[loc] / Σ_{j≥loc} w[j], and the last location takes what is left.
// tail holds those suffix sums; nil w means equal weights.
func spread(row []int64, total int64, w, tail []float64, rng *rand.Rand) {
	remaining := total
	last := len(row) - 1
	for loc := 0; loc < last && remaining > 0; loc++ {
		var q float64
		if w == nil {
			q = 1 / float64(len(row)-loc)
		} else {
			q = w[loc] / tail[loc]
		}
		k := binomial(remaining, q, rng)
		row[loc] = k
		remaining -= k
	}
	row[last] += remaining
}

// binomial draws from Binomial(n, q) on rng. n must not exceed
// grid.MaxTotalCount so that it is exact as a float64.
func binomial(n int64, q float64, rng *rand.Rand) int64 {
	switch {
	case n == 0 || q <= 0:
		return 0
	case q >= 1:
		return n
	}
	k := int64(distuv.Binomial{N: float64(n), P: q, Src: rng}.Rand())

	return min(max(k, 0), n)
}
