// SPDX-License-Identifier: MIT
package zonegen

import (
	"fmt"
	"math/bits"
)

// MaxFlexibleK bounds k for Flexible: each centre enumerates 2^(k-1) subsets.
const MaxFlexibleK = 20

// Flexible builds connected zones: for every centre location, each subset
// of its k nearest neighbours that contains the centre and is connected
// under nb. Subsets of a centre are visited in increasing bitmask order
// over the neighbour list, so the output order is deterministic.
//
// Complexity: O(N·2^(k-1)·k²) time.
func Flexible(coords [][]float64, nb Neighbors, k int) (zones, lengths []uint, err error) {
	if k > MaxFlexibleK {
		return nil, nil, fmt.Errorf("%w: k=%d > %d", ErrFlexibleK, k, MaxFlexibleK)
	}
	knn, err := NearestNeighbors(coords, k)
	if err != nil {
		return nil, nil, err
	}
	if len(nb) != len(coords) {
		return nil, nil, fmt.Errorf("%w: %d neighbour lists for %d locations", ErrNeighborRange, len(nb), len(coords))
	}
	for i, adj := range nb {
		for _, j := range adj {
			if j < 0 || j >= len(nb) {
				return nil, nil, fmt.Errorf("%w: neighbour %d of %d", ErrNeighborRange, j, i)
			}
		}
	}

	var (
		enc    encoder
		subset []int
		queue  []int
	)
	for _, cand := range knn {
		// adj[a] is the bitmask of candidates adjacent to candidate a.
		adj := make([]uint32, len(cand))
		for a := range cand {
			for b := range cand {
				if a != b && nb.Adjacent(cand[a], cand[b]) {
					adj[a] |= 1 << b
				}
			}
		}
		// Bit 0 (the centre) is always set.
		for rest := uint32(0); rest < 1<<(len(cand)-1); rest++ {
			mask := rest<<1 | 1
			if !connected(mask, adj, &queue) {
				continue
			}
			subset = subset[:0]
			for m := mask; m != 0; m &= m - 1 {
				subset = append(subset, cand[bits.TrailingZeros32(m)])
			}
			enc.add(subset)
		}
	}

	return enc.zones, enc.lengths, nil
}

// connected reports whether the candidates in mask form one component,
// by breadth-first search from the centre (bit 0).
func connected(mask uint32, adj []uint32, queue *[]int) bool {
	seen := uint32(1)
	q := append((*queue)[:0], 0)
	for len(q) > 0 {
		a := q[0]
		q = q[1:]
		for next := adj[a] & mask &^ seen; next != 0; next &= next - 1 {
			b := bits.TrailingZeros32(next)
			seen |= 1 << b
			q = append(q, b)
		}
	}
	*queue = q

	return seen == mask
}
