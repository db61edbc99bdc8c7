// Package solve submits the CNF Encoder's clauses to a SAT oracle and turns
// the result back into a quorum-intersection verdict (spec.md §4.D): UNSAT
// means the property holds, SAT means the model names two disjoint
// quorums, and an external interrupt yields Cancelled.
package solve

import (
	"context"

	"github.com/quorumsat/fbasqi/cnf"
	"github.com/quorumsat/fbasqi/qset"
	"github.com/quorumsat/fbasqi/varalloc"
)

// Status is the outcome of one Oracle.Solve call.
type Status int

const (
	StatusUnsat Status = iota
	StatusSat
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusUnsat:
		return "UNSAT"
	case StatusSat:
		return "SAT"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Oracle is the outbound SAT contract of spec.md §6: add clauses, solve,
// read the model on SAT, and accept an interrupt safe to call from another
// goroutine.
type Oracle interface {
	cnf.ClauseSink

	// Solve blocks until the solver decides SAT/UNSAT or ctx is cancelled
	// (or Interrupt is called), whichever comes first.
	Solve(ctx context.Context) (Status, error)

	// Model reports the truth value solver assigned to v. Only valid after
	// Solve has returned StatusSat.
	Model(v varalloc.Var) bool

	// Interrupt requests that an in-flight Solve return StatusCancelled. It
	// is safe to call from any goroutine, including before Solve starts (in
	// which case the next Solve call returns StatusCancelled immediately).
	Interrupt()
}

// VerdictKind classifies the outcome fbasanalyze.Analyze reports.
type VerdictKind int

const (
	// Intersects means every pair of quorums in the input FBAS shares a
	// validator (spec.md §8 "Soundness of UNSAT").
	Intersects VerdictKind = iota
	// Disjoint means QuorumA and QuorumB are a witness pair of quorums with
	// no shared validator.
	Disjoint
)

func (k VerdictKind) String() string {
	if k == Intersects {
		return "Intersects"
	}
	return "Disjoint"
}

// Verdict is the decision procedure's output (spec.md §6 "Output —
// verdict"). Cancelled and MalformedGraph are reported as errors instead
// (ErrCancelled, and graph.MalformedGraphError upstream), following Go
// convention of using the error return for exceptional outcomes rather than
// folding every case into one sum type.
type Verdict struct {
	Kind VerdictKind

	// QuorumA, QuorumB are populated only when Kind == Disjoint: two
	// non-empty, pairwise-disjoint sets of validator identities, each
	// satisfying the quorum definition.
	QuorumA []qset.ValidatorID
	QuorumB []qset.ValidatorID
}
