// SPDX-License-Identifier: MIT
// Package: scanstat/scan
//
// Purpose:
//   - Validate every precondition before any computation.
//   - Run the observed dataset and num_mcsim replicates as independent units
//     on a bounded worker pool; each worker owns its prefix and permutation
//     buffers, and writes only to its own result slots.
//   - Assemble the two output tables and report logs, spans and metrics.
//
// Determinism:
//   - Unit 0 is the observed data, unit k>0 is replicate k-1 drawn from
//     permute.Stream(seed, k-1). Results are stored by unit index, so the
//     tables do not depend on the worker count or completion order.
//
// Complexity: O((Σ|zone|)·T·(num_mcsim+1)) time for the search plus the
// replicate draws (O(T·N) each, O(T·N + C) for space-time); memory O(T·N) per worker
// plus one row per dataset (or zones·T rows per dataset with StoreEverything).

package scan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/scanstat/aggregate"
	"github.com/katalvlaran/scanstat/grid"
	"github.com/katalvlaran/scanstat/permute"
	"github.com/katalvlaran/scanstat/search"
	"github.com/katalvlaran/scanstat/zone"
)

// Input is the data of one scan. Counts and Baselines are T×N, row 0 the
// most recent period. Zones/ZoneLengths is the flat zone encoding.
type Input struct {
	Counts      [][]int64   `json:"counts" yaml:"counts"`
	Baselines   [][]float64 `json:"baselines" yaml:"baselines"`
	Zones       []uint      `json:"zones" yaml:"zones"`
	ZoneLengths []uint      `json:"zone_lengths" yaml:"zone_lengths"`
}

// Stats summarizes the work done by one call.
type Stats struct {
	Periods    int
	Locations  int
	Zones      int
	Replicates int
	Workers    int
	NullModel  permute.NullModel
	// Windows is the number of (zone, duration) pairs scored over all datasets.
	Windows    int
	Degenerate int
	Elapsed    time.Duration
}

// Output is the result of Scan.
type Output struct {
	// Observed holds the observed MLC, or every valid row with StoreEverything.
	Observed *Table
	// Simulated holds one group per replicate in replicate index order.
	Simulated *Table
	// Seed is the seed actually used, also when it was drawn at random.
	Seed  uint64
	Stats Stats
}

// Scan runs the space-time scan statistic with Monte Carlo replicates.
//
// Errors:
//   - ErrValidation (joined with the grid/zone sentinel) for bad input.
//   - ErrMemoryGuard (also ErrValidation) when the output would be too large.
//   - ErrValidation joined with permute.ErrTooManyCases when the space-time
//     model is asked to relabel more cases than WithMaxCases allows.
//   - context.Canceled / context.DeadlineExceeded, wrapped, when ctx ends
//     before all replicates ran. No partial output is returned.
func Scan(ctx context.Context, in Input, opts ...Option) (*Output, error) {
	o := gatherOptions(opts...)
	start := time.Now()
	log := o.logger.With(zap.String("scan_id", uuid.NewString()))

	ctx, span := o.tracer.Start(ctx, "scan.Scan")
	defer span.End()

	out, err := run(ctx, span, in, o, log)
	elapsed := time.Since(start)
	if err != nil {
		status := statusInvalid
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = statusCanceled
		}
		o.metrics.observe(status, elapsed, Stats{})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("scan failed", zap.Error(err), zap.Duration("elapsed", elapsed))

		return nil, err
	}

	out.Stats.Elapsed = elapsed
	o.metrics.observe(statusOK, elapsed, out.Stats)

	best := out.Observed.Group(0)[0]
	span.SetAttributes(
		attribute.Int("scan.mlc.zone", best.Zone),
		attribute.Int("scan.mlc.duration", best.Duration),
		attribute.Float64("scan.mlc.score", best.Score),
		attribute.Int("scan.windows", out.Stats.Windows),
	)
	log.Info("scan finished",
		zap.Int("mlc_zone", best.Zone),
		zap.Int("mlc_duration", best.Duration),
		zap.Float64("mlc_score", best.Score),
		zap.Int("replicates", out.Stats.Replicates),
		zap.Int("windows", out.Stats.Windows),
		zap.Duration("elapsed", elapsed),
	)

	return out, nil
}

func run(ctx context.Context, span trace.Span, in Input, o options, log *zap.Logger) (*Output, error) {
	// Stage 1 (Validate): grid, zones, memory guard.
	g, err := grid.New(in.Counts, in.Baselines)
	if err != nil {
		return nil, validationErrorf(err)
	}
	zones, err := zone.Decode(in.Zones, in.ZoneLengths, g.Locations())
	if err != nil {
		return nil, validationErrorf(err)
	}
	if err = checkMemory(zones.Len(), g.Periods(), o); err != nil {
		return nil, validationErrorf(err)
	}

	// Stage 2 (Prepare): seed and permutation tables.
	seed := o.seed
	if !o.seeded {
		seed = permute.RandomSeed()
	}
	var perm *permute.Permuter
	if o.numMCSim > 0 {
		if perm, err = permute.New(g, o.nullModel, permute.WithMaxCases(o.maxCases)); err != nil {
			return nil, validationErrorf(err)
		}
	}
	workers := min(o.workers, o.numMCSim+1)

	span.SetAttributes(
		attribute.Int("scan.periods", g.Periods()),
		attribute.Int("scan.locations", g.Locations()),
		attribute.Int("scan.zones", zones.Len()),
		attribute.Int("scan.num_mcsim", o.numMCSim),
		attribute.Int("scan.workers", workers),
		attribute.String("scan.null_model", o.nullModel.String()),
		attribute.String("scan.seed", strconv.FormatUint(seed, 10)),
		attribute.Bool("scan.store_everything", o.storeEverything),
	)
	log.Debug("scan started",
		zap.Int("periods", g.Periods()),
		zap.Int("locations", g.Locations()),
		zap.Int("zones", zones.Len()),
		zap.Int("num_mcsim", o.numMCSim),
		zap.Int("workers", workers),
		zap.Stringer("null_model", o.nullModel),
		zap.Uint64("seed", seed),
	)

	// Stage 3 (Execute): observed + replicates.
	results, err := runUnits(ctx, g, zones, perm, seed, o.numMCSim, workers, o.storeEverything)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opScan, err)
	}

	// Stage 4 (Finalize): tables and stats.
	st := Stats{
		Periods:    g.Periods(),
		Locations:  g.Locations(),
		Zones:      zones.Len(),
		Replicates: o.numMCSim,
		Workers:    workers,
		NullModel:  o.nullModel,
	}
	for _, r := range results {
		st.Windows += r.Evaluated
		st.Degenerate += r.Degenerate
	}

	return &Output{
		Observed:  assemble(results[:1], o.storeEverything),
		Simulated: assemble(results[1:], o.storeEverything),
		Seed:      seed,
		Stats:     st,
	}, nil
}

// checkMemory rejects calls whose output rows would exceed maxResultRows.
func checkMemory(numZones, periods int, o options) error {
	units := uint64(o.numMCSim) + 1
	perUnit := uint64(1)
	if o.storeEverything {
		perUnit = max(uint64(numZones)*uint64(periods), 1)
	}
	limit := uint64(o.maxResultRows)
	if perUnit > limit || units > limit/perUnit {
		return fmt.Errorf("%w: %d datasets x %d rows > %d", ErrMemoryGuard, units, perUnit, limit)
	}

	return nil
}

// runUnits evaluates unit 0 (observed) and units 1..replicates on
// workers goroutines. Cancellation is checked before each unit.
func runUnits(
	ctx context.Context,
	g *grid.Grid,
	zones *zone.Set,
	perm *permute.Permuter,
	seed uint64,
	replicates, workers int,
	storeAll bool,
) ([]search.Result, error) {
	units := replicates + 1
	results := make([]search.Result, units)
	baselines := aggregate.NewBaselines(g)

	var next atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			counts := aggregate.NewCounts(g.Periods(), g.Locations(), g.Counts())
			var ws *permute.Workspace
			if perm != nil {
				ws = perm.NewWorkspace()
			}
			for {
				u := int(next.Add(1) - 1)
				if u >= units {
					return nil
				}
				if err := egCtx.Err(); err != nil {
					return err
				}
				if u == 0 {
					counts.Reset(g.Counts())
				} else {
					counts.Reset(ws.Permute(permute.Stream(seed, u-1)))
				}
				results[u] = search.Maximize(counts, baselines, zones, storeAll)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
