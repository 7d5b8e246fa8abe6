// Package search finds the most likely cluster of one dataset by scoring
// every (zone, duration) pair.
//
// Iteration order is zone index ascending, then duration ascending. A pair
// replaces the current best only when its score is strictly greater, so ties
// resolve to the earliest pair in that order. Significance testing ranks the
// observed maximum against replicate maxima, so this order is part of the
// contract and is covered by tests.
package search
