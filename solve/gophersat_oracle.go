package solve

import (
	"context"
	"fmt"
	"sync"

	"github.com/crillab/gophersat/solver"
	"golang.org/x/sync/errgroup"

	"github.com/quorumsat/fbasqi/cnf"
	"github.com/quorumsat/fbasqi/internal/xlog"
	"github.com/quorumsat/fbasqi/varalloc"
)

// GophersatOracle is the default Oracle, adapting
// github.com/crillab/gophersat/solver. Each AddClause call becomes one
// solver.PropClause constraint (a plain propositional clause over signed
// variable ids, exactly the shape spec.md §6's oracle contract asks for);
// Solve assembles them into a solver.Problem via solver.ParsePBConstrs and
// runs it to completion.
//
// GophersatOracle is not safe for concurrent AddClause calls, and is meant
// to be used once per analysis (spec.md §5 "a fresh analyzer is constructed
// per input").
type GophersatOracle struct {
	constrs []solver.PBConstr

	mu            sync.Mutex
	model         []bool
	cancel        context.CancelFunc
	pendingCancel bool // Interrupt called before Solve had a cancel func to call
}

// NewGophersatOracle returns an empty oracle ready to receive clauses.
func NewGophersatOracle() *GophersatOracle {
	return &GophersatOracle{}
}

// AddClause implements cnf.ClauseSink.
func (o *GophersatOracle) AddClause(lits ...cnf.Literal) error {
	ints := make([]int, len(lits))
	for i, l := range lits {
		ints[i] = int(l)
	}
	o.constrs = append(o.constrs, solver.PropClause(ints...))
	return nil
}

// Solve runs the accumulated clause set to completion, racing it against
// ctx's cancellation the way rhansen/gomoddepgraph's ResolveSat races
// dependency-surprise computation against its context via errgroup: the
// derived group context is what Solve actually watches, so either the
// caller's ctx or this oracle's own Interrupt can end the wait. On
// cancellation, Solve returns immediately without waiting for the abandoned
// solver goroutine — the underlying gophersat run is left to finish (or not)
// in the background, invisible to the caller.
func (o *GophersatOracle) Solve(ctx context.Context) (Status, error) {
	ctx, cancel := context.WithCancel(ctx)
	o.mu.Lock()
	pending := o.pendingCancel
	o.pendingCancel = false
	o.cancel = cancel
	o.mu.Unlock()
	defer cancel()

	if pending {
		xlog.Get().Debug().Msg("solve: interrupted before Solve started")
		return StatusCancelled, nil
	}

	prob := solver.ParsePBConstrs(o.constrs)
	s := solver.New(prob)

	g, gctx := errgroup.WithContext(ctx)
	type outcome struct {
		status solver.Status
	}
	resultCh := make(chan outcome, 1)

	g.Go(func() error {
		resultCh <- outcome{status: s.Solve()}
		return nil
	})

	select {
	case <-gctx.Done():
		xlog.Get().Debug().Msg("solve: interrupted before a verdict was reached")
		return StatusCancelled, nil
	case r := <-resultCh:
		switch r.status {
		case solver.Sat:
			o.mu.Lock()
			o.model = s.Model()
			o.mu.Unlock()
			return StatusSat, nil
		case solver.Unsat:
			return StatusUnsat, nil
		default:
			return 0, fmt.Errorf("%w: solver returned status %v", ErrOracleFailure, r.status)
		}
	}
}

// Model reports the truth value the solver assigned to v. v is 1-based
// (varalloc.Var's own convention); gophersat's model slice is 0-based, so
// Model subtracts 1.
func (o *GophersatOracle) Model(v varalloc.Var) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	idx := int(v) - 1
	if idx < 0 || idx >= len(o.model) {
		return false
	}
	return o.model[idx]
}

// Interrupt requests that an in-flight Solve return StatusCancelled. It is
// safe to call from any goroutine (spec.md §6's oracle contract: "an
// interrupt hook that is safe to invoke from another thread"). Calling it
// before Solve has started latches the request, so the next Solve call
// returns StatusCancelled immediately instead of running; calling it after
// Solve has already returned a verdict is a no-op.
func (o *GophersatOracle) Interrupt() {
	o.mu.Lock()
	cancel := o.cancel
	if cancel == nil {
		o.pendingCancel = true
	}
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
