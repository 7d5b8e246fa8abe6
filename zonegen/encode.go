// SPDX-License-Identifier: MIT
package zonegen

import (
	"slices"
	"strconv"
	"strings"
)

// encoder accumulates distinct zones in the flat encoding.
type encoder struct {
	zones   []uint
	lengths []uint
	seen    map[string]struct{}
	key     []int
}

// add appends zone unless an equal location set was added before.
// zone is not retained.
func (e *encoder) add(zone []int) {
	e.key = append(e.key[:0], zone...)
	slices.Sort(e.key)
	k := setKey(e.key)
	if e.seen == nil {
		e.seen = make(map[string]struct{})
	}
	if _, dup := e.seen[k]; dup {
		return
	}
	e.seen[k] = struct{}{}

	for _, loc := range e.key {
		e.zones = append(e.zones, uint(loc))
	}
	e.lengths = append(e.lengths, uint(len(e.key)))
}

func setKey(sorted []int) string {
	var b strings.Builder
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// Encode flattens zones, given as location lists, into the encoding
// accepted by scan.Input, dropping empty zones and duplicate location sets. Locations
// inside each zone are emitted in ascending order.
func Encode(zones [][]int) (flat, lengths []uint) {
	var enc encoder
	for _, z := range zones {
		if len(z) == 0 {
			continue
		}
		enc.add(z)
	}

	return enc.zones, enc.lengths
}
