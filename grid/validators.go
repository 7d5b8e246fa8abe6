// SPDX-License-Identifier: MIT
// Package: scanstat/grid
//
// Purpose:
//   - Single source of truth for the preconditions of a scan input.
//   - Return sentinel errors wrapped with the cell that failed, so callers can
//     both match (errors.Is) and report precisely.
//
// All checks are pure, allocate nothing and run in O(T·N).

package grid

import "math"

// ValidateShape checks that a [][]T input is a non-empty rectangle and
// returns its dimensions.
func ValidateShape[E int64 | float64](rows [][]E) (periods, locations int, err error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, 0, gridErrorf("ValidateShape", ErrBadShape)
	}
	locations = len(rows[0])
	for t, row := range rows {
		if len(row) != locations {
			return 0, 0, cellErrorf("ValidateShape", t, len(row), ErrBadShape)
		}
	}

	return len(rows), locations, nil
}

// MaxTotalCount is the largest number of cases a grid may hold. Scores and
// replicate draws carry counts as float64, which is exact up to 2^53.
const MaxTotalCount = 1 << 53

// ValidateCounts rejects negative counts in a flat row-major buffer and
// totals above MaxTotalCount.
func ValidateCounts(counts []int64, locations int) error {
	var total int64
	for i, c := range counts {
		if c < 0 {
			return cellErrorf("ValidateCounts", i/locations, i%locations, ErrNegativeCount)
		}
		if c > MaxTotalCount-total {
			return cellErrorf("ValidateCounts", i/locations, i%locations, ErrCountOverflow)
		}
		total += c
	}

	return nil
}

// ValidateBaselines rejects NaN, ±Inf and non-positive baselines.
// NaN/Inf is reported first so that a NaN never masquerades as "≤ 0".
func ValidateBaselines(baselines []float64, locations int) error {
	for i, b := range baselines {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return cellErrorf("ValidateBaselines", i/locations, i%locations, ErrNaNInf)
		}
		if b <= 0 {
			return cellErrorf("ValidateBaselines", i/locations, i%locations, ErrNonPositiveBaseline)
		}
	}

	return nil
}
