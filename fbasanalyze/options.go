package fbasanalyze

import (
	"github.com/rs/zerolog"

	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/solve"
)

// Option configures Analyze, following the functional-options idiom the
// teacher's builder.BuilderOption and dijkstra.Option use throughout.
type Option func(*analyzeConfig)

type analyzeConfig struct {
	sliceCeiling        uint64
	outdegreeZeroPolicy graph.OutdegreeZeroPolicy
	oracle              solve.Oracle
	logger              *zerolog.Logger
}

func defaultAnalyzeConfig() analyzeConfig {
	return analyzeConfig{
		sliceCeiling:        1 << 22,
		outdegreeZeroPolicy: graph.RejectOutdegreeZero,
		oracle:              nil,
		logger:              nil,
	}
}

// WithSliceCeiling caps the number of slices C(outdegree, threshold) any
// single vertex may expand to, per spec.md §7.2's EncodingOverflow guard.
// Zero means unlimited. Default: 1<<22.
func WithSliceCeiling(n uint64) Option {
	return func(c *analyzeConfig) { c.sliceCeiling = n }
}

// WithOutdegreeZeroPolicy selects how the Graph Builder handles a vertex
// with no successors. Default: graph.RejectOutdegreeZero.
func WithOutdegreeZeroPolicy(p graph.OutdegreeZeroPolicy) Option {
	return func(c *analyzeConfig) { c.outdegreeZeroPolicy = p }
}

// WithOracle supplies a pre-configured solve.Oracle instead of the default
// solve.NewGophersatOracle(). Mostly useful for tests, which substitute a
// deterministic fake (spec.md §6 "the core depends only on the abstract
// oracle contract").
func WithOracle(o solve.Oracle) Option {
	return func(c *analyzeConfig) { c.oracle = o }
}

// WithLogger attaches a zerolog.Logger that Analyze and every stage it
// drives will emit Debug events to, via internal/xlog. Default: silent
// (zerolog.Nop()). The logger is installed process-wide and stays in place
// for later Analyze calls that do not pass WithLogger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *analyzeConfig) { c.logger = &logger }
}
