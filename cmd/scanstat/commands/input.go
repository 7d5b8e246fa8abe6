// SPDX-License-Identifier: MIT
package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/scanstat/scan"
	"github.com/katalvlaran/scanstat/zonegen"
)

var (
	// ErrEmptyInput is returned for an input document without counts.
	ErrEmptyInput = errors.New("input has no counts")
	// ErrZoneSource is returned when zones are both listed and requested from --knn,
	// or when --knn lacks the coordinates (and edges for --flexible) it needs.
	ErrZoneSource = errors.New("ambiguous or incomplete zone source")
)

// stdinPath selects standard input as the input file.
const stdinPath = "-"

// document is the input file: the scan input plus optional geometry for
// generating zones.
type document struct {
	scan.Input `yaml:",inline"`

	// Coordinates[i] is the position of location i (any dimension).
	Coordinates [][]float64 `yaml:"coordinates"`
	// Edges lists adjacent location pairs for flexible zones.
	Edges [][2]int `yaml:"edges"`
}

// zoneSpec selects how zones are generated when the document lists none.
type zoneSpec struct {
	knn      int
	flexible bool
}

// readInput loads a YAML or JSON document from path, or from stdin when
// path is "-", and resolves its zones.
func readInput(path string, stdin io.Reader, zs zoneSpec) (scan.Input, error) {
	var (
		raw []byte
		err error
	)
	if path == stdinPath {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return scan.Input{}, fmt.Errorf("read input: %w", err)
	}

	doc, err := decodeInput(raw)
	if err != nil {
		return scan.Input{}, err
	}

	return resolveZones(doc, zs)
}

// decodeInput parses raw; unknown keys are rejected.
func decodeInput(raw []byte) (document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return document{}, ErrEmptyInput
		}
		return document{}, fmt.Errorf("decode input: %w", err)
	}
	if len(doc.Counts) == 0 {
		return document{}, ErrEmptyInput
	}

	return doc, nil
}

func resolveZones(doc document, zs zoneSpec) (scan.Input, error) {
	in := doc.Input
	if zs.knn == 0 {
		return in, nil
	}
	if len(in.Zones) > 0 || len(in.ZoneLengths) > 0 {
		return scan.Input{}, fmt.Errorf("%w: document lists zones and --knn=%d is set", ErrZoneSource, zs.knn)
	}
	if len(doc.Coordinates) == 0 {
		return scan.Input{}, fmt.Errorf("%w: --knn needs coordinates", ErrZoneSource)
	}

	var err error
	if zs.flexible {
		if len(doc.Edges) == 0 {
			return scan.Input{}, fmt.Errorf("%w: --flexible needs edges", ErrZoneSource)
		}
		var nb zonegen.Neighbors
		if nb, err = zonegen.NewNeighbors(len(doc.Coordinates), doc.Edges); err != nil {
			return scan.Input{}, err
		}
		in.Zones, in.ZoneLengths, err = zonegen.Flexible(doc.Coordinates, nb, zs.knn)
	} else {
		in.Zones, in.ZoneLengths, err = zonegen.KNearest(doc.Coordinates, zs.knn)
	}
	if err != nil {
		return scan.Input{}, err
	}

	return in, nil
}
