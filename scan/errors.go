// SPDX-License-Identifier: MIT
// Package: scanstat/scan
//
// errors.go: sentinel errors of the entry point.
// Every precondition failure matches ErrValidation AND the specific sentinel
// from grid or zone (errors.Is works for both).

package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks any input precondition failure.
	ErrValidation = errors.New("scan: invalid input")

	// ErrMemoryGuard is returned when the requested output would exceed the
	// configured row budget (see WithMaxResultRows).
	ErrMemoryGuard = errors.New("scan: result rows exceed memory guard")
)

const opScan = "Scan"

// validationErrorf tags err as a validation failure raised by Scan.
func validationErrorf(err error) error {
	return fmt.Errorf("%s: %w: %w", opScan, ErrValidation, err)
}
