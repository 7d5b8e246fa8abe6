// SPDX-License-Identifier: MIT
// Package: scanstat/scan
//
// options.go: functional options for Scan.
//
// Contract:
//   - Option constructors panic on meaningless values (programmer error).
//   - Scan itself never panics on user data; it returns sentinel errors.
//   - Defaults are deterministic except for the seed, which is drawn at
//     random when not given and reported back in Output.Seed.

package scan

import (
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/scanstat/permute"
)

// Defaults.
const (
	// DefaultNumMCSim is the number of replicates when WithNumMCSim is not used.
	DefaultNumMCSim = 0

	// DefaultMaxResultRows bounds the rows held in memory by one call (2^24).
	DefaultMaxResultRows = 1 << 24

	// DefaultMaxCases bounds the cases a space-time replicate may relabel.
	DefaultMaxCases = permute.DefaultMaxCases

	// DefaultNullModel is the replicate randomization. For parity with the
	// Kulldorff (2005) space-time permutation scan, use permute.SpaceTime
	// ("space-time" in config and on the command line).
	DefaultNullModel = permute.RowUniform

	tracerName = "github.com/katalvlaran/scanstat/scan"
)

const (
	panicNumMCSim      = "scan: WithNumMCSim: n must be >= 0"
	panicWorkers       = "scan: WithWorkers: n must be >= 0"
	panicMaxResultRows = "scan: WithMaxResultRows: n must be > 0"
	panicMaxCases      = "scan: WithMaxCases: n must be > 0"
	panicNullModel     = "scan: WithNullModel: unknown model"
	panicLogger        = "scan: WithLogger(nil)"
	panicTracer        = "scan: WithTracerProvider(nil)"
	panicMetrics       = "scan: WithMetrics(nil)"
)

// Option customizes a Scan call.
type Option func(*options)

type options struct {
	storeEverything bool
	numMCSim        int
	seed            uint64
	seeded          bool
	workers         int // 0 ⇒ GOMAXPROCS
	nullModel       permute.NullModel
	maxResultRows   int
	maxCases        int64
	logger          *zap.Logger
	tracer          trace.Tracer
	metrics         *Metrics
}

func gatherOptions(opts ...Option) options {
	o := options{
		numMCSim:      DefaultNumMCSim,
		nullModel:     DefaultNullModel,
		maxResultRows: DefaultMaxResultRows,
		maxCases:      DefaultMaxCases,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// WithStoreEverything makes both tables carry every evaluated row instead of
// only the MLC of each dataset.
func WithStoreEverything(on bool) Option {
	return func(o *options) { o.storeEverything = on }
}

// WithNumMCSim sets the number of Monte Carlo replicates.
func WithNumMCSim(n int) Option {
	if n < 0 {
		panic(panicNumMCSim)
	}
	return func(o *options) { o.numMCSim = n }
}

// WithSeed fixes the replicate seed; identical seeds give identical tables.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithWorkers bounds the number of concurrent datasets; 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkers)
	}
	return func(o *options) { o.workers = n }
}

// WithNullModel selects the replicate randomization.
func WithNullModel(m permute.NullModel) Option {
	if !m.Valid() {
		panic(panicNullModel)
	}
	return func(o *options) { o.nullModel = m }
}

// WithMaxResultRows sets the memory guard: the most rows a call may hold.
func WithMaxResultRows(n int) Option {
	if n <= 0 {
		panic(panicMaxResultRows)
	}
	return func(o *options) { o.maxResultRows = n }
}

// WithMaxCases caps the total case count accepted by the space-time null
// model, which labels every case individually. Larger inputs fail with
// ErrValidation. The row models are not limited.
func WithMaxCases(n int64) Option {
	if n <= 0 {
		panic(panicMaxCases)
	}
	return func(o *options) { o.maxCases = n }
}

// WithLogger attaches a zap logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}
	return func(o *options) { o.logger = l }
}

// WithTracerProvider sets where spans go. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic(panicTracer)
	}
	return func(o *options) { o.tracer = tp.Tracer(tracerName) }
}

// WithMetrics records call metrics into m.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic(panicMetrics)
	}
	return func(o *options) { o.metrics = m }
}
