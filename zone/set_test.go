// SPDX-License-Identifier: MIT
package zone_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scanstat/zone"
)

// TestDecode_Valid checks arena views, sizes and ordering.
func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	s, err := zone.Decode([]uint{0, 1, 1, 2, 3, 4}, []uint{2, 3, 1}, 5)
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	require.Equal(t, 6, s.TotalSize())
	require.Equal(t, 5, s.Locations())
	require.Equal(t, []int{0, 1}, s.Zone(0))
	require.Equal(t, []int{1, 2, 3}, s.Zone(1))
	require.Equal(t, []int{4}, s.Zone(2))
	require.Equal(t, 3, s.Size(1))
}

// TestDecode_EmptyZone keeps zero-length zones in position.
func TestDecode_EmptyZone(t *testing.T) {
	t.Parallel()

	s, err := zone.Decode([]uint{2}, []uint{0, 1, 0}, 3)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	require.Empty(t, s.Zone(0))
	require.Equal(t, []int{2}, s.Zone(1))
	require.Empty(t, s.Zone(2))
}

// TestDecode_ZoneViewIsCapped ensures appending to a view cannot clobber the next zone.
func TestDecode_ZoneViewIsCapped(t *testing.T) {
	t.Parallel()

	s, err := zone.Decode([]uint{0, 1}, []uint{1, 1}, 2)
	require.NoError(t, err)

	z := s.Zone(0)
	_ = append(z, 1)
	require.Equal(t, []int{1}, s.Zone(1))
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		zones   []uint
		lengths []uint
		n       int
		wantErr error
	}{
		{"no locations", []uint{0}, []uint{1}, 0, zone.ErrNoLocations},
		{"lengths too long", []uint{0, 1}, []uint{3}, 2, zone.ErrLengthMismatch},
		{"lengths too short", []uint{0, 1}, []uint{1}, 2, zone.ErrLengthMismatch},
		{"lengths wrap around", []uint{0}, []uint{math.MaxUint, 2}, 1, zone.ErrLengthMismatch},
		{"huge length then zero", []uint{0}, []uint{math.MaxUint, 0}, 1, zone.ErrLengthMismatch},
		{"index equals N", []uint{0, 2}, []uint{2}, 2, zone.ErrLocationOutOfRange},
		{"index far out", []uint{99}, []uint{1}, 4, zone.ErrLocationOutOfRange},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := zone.Decode(tc.zones, tc.lengths, tc.n)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDecode_NoZones(t *testing.T) {
	t.Parallel()

	s, err := zone.Decode(nil, nil, 3)
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
	require.Equal(t, 0, s.TotalSize())
}
