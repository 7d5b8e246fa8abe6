// SPDX-License-Identifier: MIT
// Package: scanstat/statistic
//
// Numeric policy:
//   - Logs are taken of ratios c/b, never of c and b separately.
//   - An inside baseline is empty only when it is exactly zero. Any positive
//     inside baseline is scored, however small relative to B.
//   - An outside baseline at or below DegenerateTolerance·B is treated as
//     zero; it can only arise from rounding when a zone spans every location.
//   - Positive scores are clamped at 0 from below to absorb cancellation in
//     the three-term sum.

package statistic

import (
	"math"

	"github.com/katalvlaran/scanstat/aggregate"
)

// DegenerateTolerance is the relative size below which an outside baseline
// counts as empty. B − b_in is computed by subtraction, so an all-location
// zone can leave a rounding residue instead of an exact zero.
const DegenerateTolerance = 1e-12

// Score is the evaluation of one window.
type Score struct {
	Value      float64 // LLR, 0, or −Inf when Degenerate
	RelRiskIn  float64 // c_in / b_in
	RelRiskOut float64 // c_out / b_out
	Degenerate bool
}

// Evaluate scores w.
// Complexity: O(1), no allocation.
func Evaluate(w aggregate.Window) Score {
	return Compute(w.CountIn, w.BaselineIn, w.CountOut(), w.BaselineOut())
}

// Compute scores a window given its inside and outside aggregates.
func Compute(countIn int64, baselineIn float64, countOut int64, baselineOut float64) Score {
	baselineTotal := baselineIn + baselineOut
	if baselineIn <= 0 || baselineOut <= DegenerateTolerance*baselineTotal {
		return Score{
			Value:      math.Inf(-1),
			RelRiskIn:  ratio(countIn, baselineIn),
			RelRiskOut: ratio(countOut, baselineOut),
			Degenerate: true,
		}
	}

	cin, cout := float64(countIn), float64(countOut)
	s := Score{
		RelRiskIn:  cin / baselineIn,
		RelRiskOut: cout / baselineOut,
	}
	if s.RelRiskIn <= s.RelRiskOut {
		return s
	}

	total := cin + cout
	v := XLogRatio(cin, baselineIn) + XLogRatio(cout, baselineOut) - XLogRatio(total, baselineTotal)
	s.Value = max(v, 0)

	return s
}

// XLogRatio returns x·ln(x/b) with the convention 0·ln(0) = 0.
// b must be > 0.
func XLogRatio(x, b float64) float64 {
	if x == 0 {
		return 0
	}

	return x * math.Log(x/b)
}

// ratio is c/b, NaN when b is not positive (degenerate side).
func ratio(c int64, b float64) float64 {
	if b <= 0 {
		return math.NaN()
	}

	return float64(c) / b
}

// Bound returns an upper bound on any score attainable on a dataset with
// totalCount cases, totalBaseline expected cases and smallest cell
// baseline minCell: score ≤ C·ln(B/min(b_in, b_out)) ≤ C·ln(B/minCell).
func Bound(totalCount int64, totalBaseline, minCell float64) float64 {
	if totalCount == 0 || minCell <= 0 {
		return 0
	}

	return float64(totalCount) * math.Log(totalBaseline/minCell)
}
