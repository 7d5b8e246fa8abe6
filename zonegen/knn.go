// SPDX-License-Identifier: MIT
package zonegen

import (
	"fmt"
	"math"
	"slices"
)

// NearestNeighbors returns, for every location, the indices of its k
// nearest locations (itself first) by Euclidean distance, ties broken by
// the smaller index.
// Complexity: O(N²·log N) time, O(N·k) memory.
func NearestNeighbors(coords [][]float64, k int) ([][]int, error) {
	if err := validateCoords(coords); err != nil {
		return nil, err
	}
	n := len(coords)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d, N=%d", ErrBadK, k, n)
	}

	out := make([][]int, n)
	order := make([]int, n)
	dist := make([]float64, n)
	for i := range coords {
		for j := range coords {
			order[j] = j
			dist[j] = sqDist(coords[i], coords[j])
		}
		slices.SortFunc(order, func(a, b int) int {
			if dist[a] != dist[b] {
				if dist[a] < dist[b] {
					return -1
				}
				return 1
			}
			// i itself always sorts first at distance 0.
			switch {
			case a == i:
				return -1
			case b == i:
				return 1
			}
			return a - b
		})
		out[i] = slices.Clone(order[:k])
	}

	return out, nil
}

// KNearest builds circular zones: each location with its k-1 nearest
// neighbours, deduplicated.
func KNearest(coords [][]float64, k int) (zones, lengths []uint, err error) {
	knn, err := NearestNeighbors(coords, k)
	if err != nil {
		return nil, nil, err
	}

	var enc encoder
	for _, nn := range knn {
		for size := 1; size <= k; size++ {
			enc.add(nn[:size])
		}
	}

	return enc.zones, enc.lengths, nil
}

func validateCoords(coords [][]float64) error {
	if len(coords) == 0 {
		return ErrNoLocations
	}
	dim := len(coords[0])
	if dim == 0 {
		return ErrDimension
	}
	for i, c := range coords {
		if len(c) != dim {
			return fmt.Errorf("%w: location %d has %d, want %d", ErrDimension, i, len(c), dim)
		}
		for _, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: location %d", ErrNaNInf, i)
			}
		}
	}

	return nil
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}
