// SPDX-License-Identifier: MIT

// Package zonegen builds candidate zones for a scan from location
// geometry and returns them in the flat (zones, zone_lengths) encoding
// accepted by scan.Input.
//
// Generators:
//
//   - KNearest: for every location, the location itself and its k-1 nearest
//     neighbours (Euclidean, ties broken by index). Circular zones.
//   - Flexible: for every location, each subset of its k nearest neighbours
//     that contains it and is connected under a neighbour relation.
//     Irregularly shaped zones (Tango & Takahashi 2005).
//   - Lattice: the neighbour relation of a rows×cols raster of locations
//     with 4- or 8-connectivity, location id = row*cols + col.
//
// Every generator deduplicates zones (as location sets) and keeps the first
// occurrence, so the output order is deterministic.
package zonegen
