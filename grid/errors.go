// SPDX-License-Identifier: MIT
// Package: scanstat/grid
//
// errors.go: sentinel errors for grid construction and access.
//
// ERROR PRIORITY (checked in this order):
// shape -> dimension mismatch -> NaN/Inf -> non-positive baseline -> negative count
// -> total count overflow.

package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when T or N is zero or rows are ragged.
	ErrBadShape = errors.New("grid: invalid shape")

	// ErrShapeMismatch is returned when counts and baselines differ in shape.
	ErrShapeMismatch = errors.New("grid: counts and baselines shape mismatch")

	// ErrNaNInf is returned when a baseline is NaN or ±Inf.
	ErrNaNInf = errors.New("grid: NaN or Inf baseline")

	// ErrNonPositiveBaseline is returned when a baseline is ≤ 0.
	ErrNonPositiveBaseline = errors.New("grid: baseline must be > 0")

	// ErrNegativeCount is returned when a count is < 0.
	ErrNegativeCount = errors.New("grid: count must be >= 0")

	// ErrCountOverflow is returned when the grid holds more than MaxTotalCount cases.
	ErrCountOverflow = errors.New("grid: total count exceeds 2^53")

	// ErrOutOfRange is returned by indexed accessors for bad (t, loc).
	ErrOutOfRange = errors.New("grid: index out of range")
)

// cellErrorf wraps err with the offending cell coordinates.
func cellErrorf(op string, t, loc int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", op, t, loc, err)
}

// gridErrorf wraps err with the operation tag.
func gridErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
