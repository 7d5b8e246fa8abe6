// SPDX-License-Identifier: MIT
package zonegen

import (
	"fmt"
	"slices"
)

// Connectivity selects lattice adjacency: orthogonal (Conn4) or including
// diagonals (Conn8).
type Connectivity int

const (
	// Conn4 links N, E, S, W cells.
	Conn4 Connectivity = iota
	// Conn8 also links the four diagonals.
	Conn8
)

var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// Neighbors is a symmetric adjacency list over locations 0..N-1.
// Neighbors[i] is sorted ascending and never contains i.
type Neighbors [][]int

// NewNeighbors builds a symmetric adjacency list for n locations from an
// undirected edge list. Self-loops and duplicate edges are ignored.
func NewNeighbors(n int, edges [][2]int) (Neighbors, error) {
	if n <= 0 {
		return nil, ErrNoLocations
	}
	nb := make(Neighbors, n)
	for i, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, fmt.Errorf("%w: edge %d = (%d, %d), N=%d", ErrNeighborRange, i, a, b, n)
		}
		if a == b {
			continue
		}
		nb[a] = append(nb[a], b)
		nb[b] = append(nb[b], a)
	}
	for i := range nb {
		slices.Sort(nb[i])
		nb[i] = slices.Compact(nb[i])
	}

	return nb, nil
}

// Lattice returns the neighbour relation of a rows×cols raster.
// Complexity: O(rows·cols) time and memory.
func Lattice(rows, cols int, conn Connectivity) (Neighbors, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrLatticeShape, rows, cols)
	}
	offs := offsets4
	if conn == Conn8 {
		offs = offsets8
	}

	nb := make(Neighbors, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id := y*cols + x
			adj := make([]int, 0, len(offs))
			for _, d := range offs {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				adj = append(adj, ny*cols+nx)
			}
			slices.Sort(adj)
			nb[id] = adj
		}
	}

	return nb, nil
}

// Adjacent reports whether a and b are neighbours.
func (nb Neighbors) Adjacent(a, b int) bool {
	_, ok := slices.BinarySearch(nb[a], b)

	return ok
}
