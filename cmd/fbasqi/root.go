package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quorumsat/fbasqi/cnf"
	"github.com/quorumsat/fbasqi/fbasanalyze"
	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/qset"
	"github.com/quorumsat/fbasqi/solve"
	"github.com/quorumsat/fbasqi/varalloc"
)

type rootFlags struct {
	inputPath       string
	sliceCeiling    uint64
	forbidDegen     bool
	dryRun          bool
	verbose         bool
	solveTimeoutSec int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "fbasqi",
		Short: "Decide FBAS quorum intersection via SAT",
		Long: "fbasqi reads a JSON quorum-set map and decides whether every pair of\n" +
			"quorums derivable from it shares a validator, by reducing the question\n" +
			"to Boolean satisfiability.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.inputPath, "input", "i", "-", "path to a JSON quorum-set map, or - for stdin")
	cmd.Flags().Uint64Var(&flags.sliceCeiling, "slice-ceiling", 1<<22, "reject any vertex whose C(outdegree,threshold) slice count exceeds this (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.forbidDegen, "forbid-degenerate", false, "treat an outdegree-0 vertex as forbidden-membership instead of rejecting the input")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report the vertex and clause counts the encoding would produce, without invoking the solver")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "emit debug-level progress logging to stderr")
	cmd.Flags().IntVar(&flags.solveTimeoutSec, "timeout", 0, "abort the solve after this many seconds (0 = no timeout)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, flags *rootFlags) error {
	r, closeFn, err := openInput(flags.inputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	qsets, err := qset.DecodeJSON(r)
	if err != nil {
		return fmt.Errorf("fbasqi: %w", err)
	}

	policy := graph.RejectOutdegreeZero
	if flags.forbidDegen {
		policy = graph.AllowDegenerateForbidden
	}

	if flags.dryRun {
		return runDryRun(cmd, qsets, flags, policy)
	}

	opts := []fbasanalyze.Option{
		fbasanalyze.WithSliceCeiling(flags.sliceCeiling),
		fbasanalyze.WithOutdegreeZeroPolicy(policy),
	}
	if flags.verbose {
		logger := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
		opts = append(opts, fbasanalyze.WithLogger(logger))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if flags.solveTimeoutSec > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, time.Duration(flags.solveTimeoutSec)*time.Second)
		defer timeoutCancel()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()
	defer signal.Stop(sig)

	verdict, err := fbasanalyze.Analyze(ctx, qsets, opts...)
	if err != nil {
		return fmt.Errorf("fbasqi: %w", err)
	}

	printVerdict(cmd, verdict)
	return nil
}

// runDryRun runs the real Graph Builder, Variable Allocator, and CNF
// Encoder — everything short of handing the formula to a solver — and
// reports the vertex and clause counts that a full run would produce.
// Wrapping the encoder's target in a cnf.CountingSink exercises the actual
// Encode path instead of re-deriving a count from the formula in
// cnf.CountClauses, so the reported clause count is the number of clauses
// Encode really emits.
func runDryRun(cmd *cobra.Command, qsets qset.Map, flags *rootFlags, policy graph.OutdegreeZeroPolicy) error {
	g, err := graph.Build(qsets, graph.WithOutdegreeZeroPolicy(policy))
	if err != nil {
		return fmt.Errorf("fbasqi: %w", err)
	}

	alloc, err := varalloc.New(g, flags.sliceCeiling)
	if err != nil {
		return fmt.Errorf("fbasqi: %w", err)
	}

	sink := &cnf.CountingSink{Sink: discardSink{}}
	if err := cnf.Encode(g, alloc, sink); err != nil {
		return fmt.Errorf("fbasqi: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "vertices: %d (validators: %d)\nvariables: %d\nclauses: %d\n",
		g.NumVertices(), g.NumValidators(), alloc.NumVars(), sink.Count)
	return nil
}

// discardSink is a cnf.ClauseSink that drops every clause, letting a
// cnf.CountingSink tally them without holding the whole formula in memory.
type discardSink struct{}

func (discardSink) AddClause(...cnf.Literal) error { return nil }

func printVerdict(cmd *cobra.Command, v solve.Verdict) {
	out := cmd.OutOrStdout()
	switch v.Kind {
	case solve.Intersects:
		fmt.Fprintln(out, "INTERSECTS")
	case solve.Disjoint:
		fmt.Fprintln(out, "DISJOINT")
		fmt.Fprintf(out, "quorum A: %v\n", v.QuorumA)
		fmt.Fprintf(out, "quorum B: %v\n", v.QuorumB)
	}
}

func openInput(path string) (*os.File, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("fbasqi: %w", err)
	}
	return f, f.Close, nil
}
