// SPDX-License-Identifier: MIT
package zonegen

import "errors"

var (
	// ErrNoLocations indicates an empty coordinate list.
	ErrNoLocations = errors.New("zonegen: at least one location is required")
	// ErrDimension indicates coordinates of differing or zero dimension.
	ErrDimension = errors.New("zonegen: all coordinates must have the same non-zero dimension")
	// ErrNaNInf indicates a NaN or ±Inf coordinate.
	ErrNaNInf = errors.New("zonegen: coordinates must be finite")
	// ErrBadK indicates k outside [1, number of locations].
	ErrBadK = errors.New("zonegen: k must lie in [1, locations]")
	// ErrFlexibleK indicates k above MaxFlexibleK.
	ErrFlexibleK = errors.New("zonegen: k too large for flexible zones")
	// ErrNeighborRange indicates a neighbour index outside [0, N).
	ErrNeighborRange = errors.New("zonegen: neighbour index out of range")
	// ErrLatticeShape indicates a non-positive lattice dimension.
	ErrLatticeShape = errors.New("zonegen: lattice must have at least one row and one column")
)
