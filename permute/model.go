// SPDX-License-Identifier: MIT
package permute

import (
	"fmt"
	"strings"
)

// NullModel selects how replicates are randomized.
type NullModel int

const (
	// RowUniform reassigns each row's cases uniformly over locations.
	RowUniform NullModel = iota
	// RowBaselineWeighted reassigns each row's cases proportionally to baselines.
	RowBaselineWeighted
	// SpaceTime shuffles case time labels (Kulldorff 2005).
	SpaceTime
)

var modelNames = [...]string{
	RowUniform:          "row-uniform",
	RowBaselineWeighted: "row-baseline",
	SpaceTime:           "space-time",
}

// String returns the canonical name used by configuration and the CLI.
func (m NullModel) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("NullModel(%d)", int(m))
	}

	return modelNames[m]
}

// Valid reports whether m is a known model.
func (m NullModel) Valid() bool {
	return m >= 0 && int(m) < len(modelNames)
}

// ParseNullModel maps a canonical name (case-insensitive) to a NullModel.
func ParseNullModel(s string) (NullModel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modelNames {
		if n == name {
			return NullModel(i), nil
		}
	}

	return 0, fmt.Errorf("ParseNullModel(%q): %w", s, ErrUnknownNullModel)
}
