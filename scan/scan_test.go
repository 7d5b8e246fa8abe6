// SPDX-License-Identifier: MIT
package scan_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scanstat/grid"
	"github.com/katalvlaran/scanstat/permute"
	"github.com/katalvlaran/scanstat/scan"
	"github.com/katalvlaran/scanstat/search"
	"github.com/katalvlaran/scanstat/statistic"
	"github.com/katalvlaran/scanstat/zone"
)

// twoByTwo is the 2-location, 2-period dataset with one zone {0}.
func twoByTwo() scan.Input {
	return scan.Input{
		Counts:      [][]int64{{5, 1}, {3, 2}},
		Baselines:   [][]float64{{2, 2}, {2, 2}},
		Zones:       []uint{0},
		ZoneLengths: []uint{1},
	}
}

// randomInput builds a T×N dataset with singleton and pair zones.
func randomInput(seed int64, periods, locations int) scan.Input {
	rng := rand.New(rand.NewSource(seed))
	in := scan.Input{
		Counts:    make([][]int64, periods),
		Baselines: make([][]float64, periods),
	}
	for t := 0; t < periods; t++ {
		in.Counts[t] = make([]int64, locations)
		in.Baselines[t] = make([]float64, locations)
		for loc := 0; loc < locations; loc++ {
			in.Counts[t][loc] = int64(rng.Intn(12))
			in.Baselines[t][loc] = 1 + rng.Float64()*5
		}
	}
	for loc := 0; loc < locations; loc++ {
		in.Zones = append(in.Zones, uint(loc))
		in.ZoneLengths = append(in.ZoneLengths, 1)
	}
	for loc := 0; loc+1 < locations; loc++ {
		in.Zones = append(in.Zones, uint(loc), uint(loc+1))
		in.ZoneLengths = append(in.ZoneLengths, 2)
	}
	return in
}

func TestScan_TwoByTwo(t *testing.T) {
	t.Parallel()

	out, err := scan.Scan(context.Background(), twoByTwo(), scan.WithSeed(1))
	require.NoError(t, err)

	require.Equal(t, 1, out.Observed.Len())
	row := out.Observed.Rows[0]
	want := 5*math.Log(2.5) + math.Log(0.5) - 6*math.Log(1.5)
	assert.Equal(t, 0, row.Zone)
	assert.Equal(t, 1, row.Duration)
	assert.InDelta(t, want, row.Score, 1e-12)
	assert.InDelta(t, 2.5, row.RelRiskIn, 1e-12)
	assert.InDelta(t, 0.5, row.RelRiskOut, 1e-12)

	assert.Equal(t, 0, out.Simulated.Len(), "num_mcsim=0 gives an empty simulated table")
	assert.Equal(t, 0, out.Simulated.Groups())
	assert.Equal(t, uint64(1), out.Seed)
	assert.Equal(t, 2, out.Stats.Windows)
}

// TestScan_Deterministic: identical inputs without replicates are bit-identical.
func TestScan_Deterministic(t *testing.T) {
	t.Parallel()

	in := randomInput(3, 6, 8)
	a, err := scan.Scan(context.Background(), in)
	require.NoError(t, err)
	b, err := scan.Scan(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, a.Observed.Rows, b.Observed.Rows)
	assert.Equal(t, math.Float64bits(a.Observed.Rows[0].Score), math.Float64bits(b.Observed.Rows[0].Score))
}

// TestScan_ReproducibleAcrossWorkers: a fixed seed gives the same simulated table for any pool size.
func TestScan_ReproducibleAcrossWorkers(t *testing.T) {
	t.Parallel()

	in := randomInput(5, 5, 7)
	for _, model := range []permute.NullModel{permute.RowUniform, permute.RowBaselineWeighted, permute.SpaceTime} {
		model := model
		t.Run(model.String(), func(t *testing.T) {
			t.Parallel()
			var ref *scan.Output
			for _, workers := range []int{1, 2, 8} {
				out, err := scan.Scan(context.Background(), in,
					scan.WithNumMCSim(40),
					scan.WithSeed(2024),
					scan.WithWorkers(workers),
					scan.WithNullModel(model),
				)
				require.NoError(t, err)
				require.Equal(t, 40, out.Simulated.Len())
				if ref == nil {
					ref = out
					continue
				}
				assert.Equal(t, ref.Simulated.Rows, out.Simulated.Rows, "workers=%d", workers)
				assert.Equal(t, ref.Observed.Rows, out.Observed.Rows, "workers=%d", workers)
			}
		})
	}
}

// TestScan_HundredReplicatesWithinBound checks row count and the score bound.
func TestScan_HundredReplicatesWithinBound(t *testing.T) {
	t.Parallel()

	in := randomInput(9, 4, 6)
	out, err := scan.Scan(context.Background(), in, scan.WithNumMCSim(100), scan.WithSeed(77))
	require.NoError(t, err)
	require.Equal(t, 100, out.Simulated.Len())
	require.Equal(t, 100, out.Simulated.Groups())
	assert.Equal(t, 100, out.Stats.Replicates)

	g, err := grid.New(in.Counts, in.Baselines)
	require.NoError(t, err)
	bound := statistic.Bound(g.TotalCount(), g.TotalBaseline(), g.MinBaseline())
	for i, s := range out.Simulated.Scores() {
		require.GreaterOrEqual(t, s, 0.0, "replicate %d", i)
		require.LessOrEqual(t, s, bound, "replicate %d", i)
	}
}

// TestScan_ScoresZeroOrPositive: every stored score is 0 or finite and positive.
func TestScan_ScoresZeroOrPositive(t *testing.T) {
	t.Parallel()

	out, err := scan.Scan(context.Background(), randomInput(11, 4, 5),
		scan.WithStoreEverything(true), scan.WithNumMCSim(5), scan.WithSeed(8))
	require.NoError(t, err)

	for _, tbl := range []*scan.Table{out.Observed, out.Simulated} {
		for _, r := range tbl.Rows {
			require.False(t, math.IsNaN(r.Score))
			require.False(t, math.IsInf(r.Score, 0))
			require.GreaterOrEqual(t, r.Score, 0.0)
			if r.RelRiskIn <= r.RelRiskOut {
				require.Equal(t, 0.0, r.Score)
			}
		}
	}
}

// TestScan_AllLocationsZone reports a zero score instead of failing.
func TestScan_AllLocationsZone(t *testing.T) {
	t.Parallel()

	in := scan.Input{
		Counts:      [][]int64{{4, 1}, {2, 2}},
		Baselines:   [][]float64{{1, 1}, {1, 1}},
		Zones:       []uint{0, 1},
		ZoneLengths: []uint{2},
	}
	out, err := scan.Scan(context.Background(), in, scan.WithNumMCSim(3), scan.WithSeed(1))
	require.NoError(t, err)

	row := out.Observed.Rows[0]
	assert.Equal(t, 0.0, row.Score)
	assert.Equal(t, search.NoZone, row.Zone)
	for _, s := range out.Simulated.Scores() {
		assert.Equal(t, 0.0, s)
	}
	assert.Equal(t, out.Stats.Windows, out.Stats.Degenerate)
}

// TestScan_TinyBaselineZone keeps a zone whose baseline is a minute share of
// the total; only the outside gets a rounding tolerance.
func TestScan_TinyBaselineZone(t *testing.T) {
	t.Parallel()

	in := scan.Input{
		Counts:      [][]int64{{5, 10}},
		Baselines:   [][]float64{{1e-9, 1e4}},
		Zones:       []uint{0},
		ZoneLengths: []uint{1},
	}
	out, err := scan.Scan(context.Background(), in)
	require.NoError(t, err)

	row := out.Observed.Rows[0]
	assert.Equal(t, 0, row.Zone)
	assert.Equal(t, 1, row.Duration)
	assert.InDelta(t, 5e9, row.RelRiskIn, 1)
	assert.Greater(t, row.Score, 0.0)
	assert.Zero(t, out.Stats.Degenerate)
}

// TestScan_LargeCounts runs row-model replicates on counts that could not be
// placed case by case.
func TestScan_LargeCounts(t *testing.T) {
	t.Parallel()

	in := scan.Input{
		Counts:      [][]int64{{150_000_000, 50_000_000}, {1_000_000_000, 999_000_000}},
		Baselines:   [][]float64{{1, 1}, {1, 1}},
		Zones:       []uint{0},
		ZoneLengths: []uint{1},
	}
	for _, model := range []permute.NullModel{permute.RowUniform, permute.RowBaselineWeighted} {
		out, err := scan.Scan(context.Background(), in,
			scan.WithNullModel(model), scan.WithNumMCSim(20), scan.WithSeed(8))
		require.NoError(t, err, model.String())
		require.Equal(t, 20, out.Simulated.Len())
		for _, s := range out.Simulated.Scores() {
			require.False(t, math.IsNaN(s) || math.IsInf(s, 0))
		}
		assert.Less(t, out.Simulated.Scores()[0], out.Observed.Rows[0].Score)
	}
}

// TestScan_SpaceTimeCaseLimit rejects inputs the space-time model would have
// to expand beyond the configured case count.
func TestScan_SpaceTimeCaseLimit(t *testing.T) {
	t.Parallel()

	_, err := scan.Scan(context.Background(), twoByTwo(),
		scan.WithNullModel(permute.SpaceTime), scan.WithNumMCSim(2), scan.WithMaxCases(10))
	require.ErrorIs(t, err, scan.ErrValidation)
	require.ErrorIs(t, err, permute.ErrTooManyCases)

	_, err = scan.Scan(context.Background(), twoByTwo(),
		scan.WithNullModel(permute.SpaceTime), scan.WithNumMCSim(2), scan.WithMaxCases(11))
	require.NoError(t, err)

	huge := twoByTwo()
	huge.Counts = [][]int64{{1 << 61, 1}, {0, 0}}
	_, err = scan.Scan(context.Background(), huge,
		scan.WithNullModel(permute.SpaceTime), scan.WithNumMCSim(1), scan.WithSeed(1))
	require.ErrorIs(t, err, scan.ErrValidation)
	require.ErrorIs(t, err, grid.ErrCountOverflow)
}

// TestScan_SinglePeriod collapses durations to 1.
func TestScan_SinglePeriod(t *testing.T) {
	t.Parallel()

	out, err := scan.Scan(context.Background(), randomInput(4, 1, 6),
		scan.WithStoreEverything(true), scan.WithNumMCSim(4), scan.WithSeed(3))
	require.NoError(t, err)
	for _, r := range append(out.Observed.Rows, out.Simulated.Rows...) {
		assert.Equal(t, 1, r.Duration)
	}
}

// TestScan_StoreEverything groups rows per dataset in search order.
func TestScan_StoreEverything(t *testing.T) {
	t.Parallel()

	in := randomInput(6, 3, 4) // 4 singletons + 3 pairs = 7 zones, none degenerate
	out, err := scan.Scan(context.Background(), in,
		scan.WithStoreEverything(true), scan.WithNumMCSim(2), scan.WithSeed(10))
	require.NoError(t, err)

	require.Equal(t, 1, out.Observed.Groups())
	require.Equal(t, 7*3, out.Observed.Len())
	require.Equal(t, 2, out.Simulated.Groups())
	require.Equal(t, 2*7*3, out.Simulated.Len())

	rows := out.Observed.Group(0)
	for i, r := range rows {
		assert.Equal(t, i/3, r.Zone)
		assert.Equal(t, i%3+1, r.Duration)
	}

	plain, err := scan.Scan(context.Background(), in, scan.WithNumMCSim(2), scan.WithSeed(10))
	require.NoError(t, err)
	assert.Equal(t, plain.Observed.Rows[0].Score, out.Observed.MaxScores()[0])
	assert.Equal(t, plain.Simulated.Scores(), out.Simulated.MaxScores())
}

func TestScan_RandomSeedReported(t *testing.T) {
	t.Parallel()

	in := randomInput(2, 3, 4)
	a, err := scan.Scan(context.Background(), in, scan.WithNumMCSim(10))
	require.NoError(t, err)

	b, err := scan.Scan(context.Background(), in, scan.WithNumMCSim(10), scan.WithSeed(a.Seed))
	require.NoError(t, err)
	assert.Equal(t, a.Simulated.Rows, b.Simulated.Rows)
}

func TestScan_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*scan.Input)
		wantErr error
	}{
		{"shape mismatch", func(in *scan.Input) { in.Baselines = [][]float64{{1, 1}} }, grid.ErrShapeMismatch},
		{"zero baseline", func(in *scan.Input) { in.Baselines[1][0] = 0 }, grid.ErrNonPositiveBaseline},
		{"negative count", func(in *scan.Input) { in.Counts[0][1] = -3 }, grid.ErrNegativeCount},
		{"length mismatch", func(in *scan.Input) { in.ZoneLengths = []uint{2} }, zone.ErrLengthMismatch},
		{"wrapping zone lengths", func(in *scan.Input) { in.ZoneLengths = []uint{math.MaxUint, 2} }, zone.ErrLengthMismatch},
		{"index out of range", func(in *scan.Input) { in.Zones = []uint{2} }, zone.ErrLocationOutOfRange},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := twoByTwo()
			tc.mutate(&in)
			out, err := scan.Scan(context.Background(), in)
			require.Nil(t, out)
			require.ErrorIs(t, err, scan.ErrValidation)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestScan_MemoryGuard(t *testing.T) {
	t.Parallel()

	_, err := scan.Scan(context.Background(), twoByTwo(),
		scan.WithNumMCSim(10), scan.WithMaxResultRows(10))
	require.ErrorIs(t, err, scan.ErrMemoryGuard)
	require.ErrorIs(t, err, scan.ErrValidation)

	_, err = scan.Scan(context.Background(), twoByTwo(),
		scan.WithNumMCSim(9), scan.WithMaxResultRows(10))
	require.NoError(t, err)

	// 1 zone × 2 periods × 6 datasets = 12 rows.
	_, err = scan.Scan(context.Background(), twoByTwo(),
		scan.WithStoreEverything(true), scan.WithNumMCSim(5), scan.WithMaxResultRows(9))
	require.ErrorIs(t, err, scan.ErrMemoryGuard)
}

func TestScan_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := scan.Scan(ctx, randomInput(1, 3, 3), scan.WithNumMCSim(50), scan.WithSeed(1))
	require.Nil(t, out)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, scan.ErrValidation)
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { scan.WithNumMCSim(-1) })
	assert.Panics(t, func() { scan.WithWorkers(-1) })
	assert.Panics(t, func() { scan.WithMaxResultRows(0) })
	assert.Panics(t, func() { scan.WithMaxCases(0) })
	assert.Panics(t, func() { scan.WithNullModel(permute.NullModel(7)) })
	assert.Panics(t, func() { scan.WithLogger(nil) })
	assert.Panics(t, func() { scan.WithTracerProvider(nil) })
	assert.Panics(t, func() { scan.WithMetrics(nil) })
}

func TestOutput_PValue(t *testing.T) {
	t.Parallel()

	out, err := scan.Scan(context.Background(), twoByTwo())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.PValue()), "no replicates")

	out, err = scan.Scan(context.Background(), randomInput(12, 4, 6), scan.WithNumMCSim(19), scan.WithSeed(3))
	require.NoError(t, err)
	p := out.PValue()
	assert.GreaterOrEqual(t, p, 1.0/20)
	assert.LessOrEqual(t, p, 1.0)

	obs := out.Observed.Rows[0].Score
	exceed := 0
	for _, s := range out.Simulated.Scores() {
		if s >= obs {
			exceed++
		}
	}
	assert.InDelta(t, float64(1+exceed)/20, p, 1e-15)
}
