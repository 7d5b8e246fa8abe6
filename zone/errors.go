// SPDX-License-Identifier: MIT
// Package: scanstat/zone
//
// errors.go: sentinel errors for zone decoding.
// Callers MUST branch with errors.Is; sentinels are wrapped with the
// operation tag at the return site.

package zone

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch indicates that Σ zone_lengths differs from len(zones).
	ErrLengthMismatch = errors.New("zone: zone lengths do not sum to number of zone entries")

	// ErrLocationOutOfRange indicates a location index ≥ the number of locations.
	ErrLocationOutOfRange = errors.New("zone: location index out of range")

	// ErrNoLocations indicates a non-positive location count was supplied.
	ErrNoLocations = errors.New("zone: number of locations must be > 0")
)

// zoneErrorf tags err with the operation that produced it.
func zoneErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
