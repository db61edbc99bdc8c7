// Package fbasanalyze is the single public entry point of fbasqi, wiring
// the Graph Builder, Variable Allocator, CNF Encoder, and Solver Driver &
// Witness Decoder into the "one call, one verdict" scheduling model of
// spec.md §5.
package fbasanalyze

import (
	"context"
	"fmt"

	"github.com/quorumsat/fbasqi/cnf"
	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/internal/xlog"
	"github.com/quorumsat/fbasqi/qset"
	"github.com/quorumsat/fbasqi/solve"
	"github.com/quorumsat/fbasqi/varalloc"
)

// Analyze decides whether every pair of quorums derivable from qsets shares
// a validator (spec.md §2's decision procedure), end to end: Build the
// graph, allocate SAT variables, encode the CNF formula, hand it to an
// oracle, and decode the verdict.
//
// A fresh graph.Graph, varalloc.Allocator, and (unless WithOracle supplies
// one) solve.Oracle are constructed per call — spec.md §5's "a fresh
// analyzer is constructed per input", not a long-lived service that
// accumulates state across calls.
func Analyze(ctx context.Context, qsets qset.Map, opts ...Option) (solve.Verdict, error) {
	cfg := defaultAnalyzeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger != nil {
		xlog.Set(*cfg.logger)
	}

	g, err := graph.Build(qsets, graph.WithOutdegreeZeroPolicy(cfg.outdegreeZeroPolicy))
	if err != nil {
		return solve.Verdict{}, err
	}

	alloc, err := varalloc.New(g, cfg.sliceCeiling)
	if err != nil {
		return solve.Verdict{}, err
	}

	oracle := cfg.oracle
	if oracle == nil {
		oracle = solve.NewGophersatOracle()
	}

	if err := cnf.Encode(g, alloc, oracle); err != nil {
		return solve.Verdict{}, fmt.Errorf("fbasanalyze: %w", err)
	}

	verdict, err := solve.Decode(ctx, g, alloc, oracle)
	if err != nil {
		return solve.Verdict{}, err
	}
	return verdict, nil
}
