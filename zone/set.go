// SPDX-License-Identifier: MIT
// Package: scanstat/zone
//
// Purpose:
//   - Decode (zones, zone_lengths) into an immutable Set.
//   - Serve zero-copy views of individual zones to the search loop.
//
// Determinism & Performance:
//   - Decode is O(len(zones)) time and allocates exactly two slices.
//   - Zone(i) is O(1) and returns a sub-slice of the arena.

package zone

import "fmt"

const opDecode = "Decode"

// Set is a decoded, read-only collection of zones.
// arena holds every location index back to back; offsets has Len()+1
// entries and zone i spans arena[offsets[i]:offsets[i+1]].
type Set struct {
	arena   []int
	offsets []int
	n       int // number of locations the indices were validated against
}

// Decode validates the flat encoding and builds a Set.
// Stage 1 (Validate): numLocations > 0 and Σ lengths == len(zones); the
// running sum never passes len(zones), so it cannot wrap.
// Stage 2 (Execute): copy indices into the arena, checking each is < numLocations.
// Stage 3 (Finalize): build offsets as prefix sums of lengths.
// Zero-length zones are legal; every window they form is degenerate.
// Complexity: O(len(zones) + len(lengths)).
func Decode(zones, lengths []uint, numLocations int) (*Set, error) {
	if numLocations <= 0 {
		return nil, zoneErrorf(opDecode, ErrNoLocations)
	}

	entries := uint(len(zones))
	var total uint
	for i, l := range lengths {
		if l > entries-total {
			return nil, zoneErrorf(opDecode,
				fmt.Errorf("%w: length %d at zone %d overruns %d entries", ErrLengthMismatch, l, i, len(zones)))
		}
		total += l
	}
	if total != entries {
		return nil, zoneErrorf(opDecode,
			fmt.Errorf("%w: sum=%d, entries=%d", ErrLengthMismatch, total, len(zones)))
	}

	arena := make([]int, len(zones))
	for i, loc := range zones {
		if loc >= uint(numLocations) {
			return nil, zoneErrorf(opDecode,
				fmt.Errorf("%w: entry %d has location %d, want < %d", ErrLocationOutOfRange, i, loc, numLocations))
		}
		arena[i] = int(loc)
	}

	offsets := make([]int, len(lengths)+1)
	for i, l := range lengths {
		offsets[i+1] = offsets[i] + int(l)
	}

	return &Set{arena: arena, offsets: offsets, n: numLocations}, nil
}

// Len returns the number of zones.
func (s *Set) Len() int {
	return len(s.offsets) - 1
}

// Zone returns the location indices of zone i in input order.
// The returned slice aliases internal storage and must not be modified.
// Panics if i is out of range, like a slice index.
func (s *Set) Zone(i int) []int {
	return s.arena[s.offsets[i]:s.offsets[i+1]:s.offsets[i+1]]
}

// Size returns |zone i|.
func (s *Set) Size(i int) int {
	return s.offsets[i+1] - s.offsets[i]
}

// TotalSize returns Σ|zone| over all zones.
func (s *Set) TotalSize() int {
	return len(s.arena)
}

// Locations returns the location count the Set was validated against.
func (s *Set) Locations() int {
	return s.n
}
