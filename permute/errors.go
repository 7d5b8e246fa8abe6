// SPDX-License-Identifier: MIT
package permute

import "errors"

var (
	// ErrUnknownNullModel is returned for an unrecognized model name or value.
	ErrUnknownNullModel = errors.New("permute: unknown null model")

	// ErrTooManyCases is returned when a SpaceTime grid holds more cases than
	// the WithMaxCases limit.
	ErrTooManyCases = errors.New("permute: too many cases for space-time permutation")

	// ErrNilGrid is returned when New receives a nil grid.
	ErrNilGrid = errors.New("permute: nil grid")
)
