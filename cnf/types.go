// Package cnf emits the clauses that reduce quorum intersection to SAT
// (spec.md §4.C): non-emptiness, disjointness, and quorum-closure with
// Tseitin expansion of slice combinations.
package cnf

import "github.com/quorumsat/fbasqi/varalloc"

// Literal is a signed SAT variable reference: positive means the variable
// must be true, negative means its negation. It mirrors the "list of signed
// variable ids" shape of the solver-oracle contract in spec.md §6.
type Literal int

// Pos returns the positive literal for v.
func Pos(v varalloc.Var) Literal { return Literal(v) }

// Neg returns the negative literal (negation) for v.
func Neg(v varalloc.Var) Literal { return Literal(-v) }

// Var returns the underlying variable of a literal, discarding sign.
func (l Literal) Var() varalloc.Var {
	if l < 0 {
		return varalloc.Var(-l)
	}
	return varalloc.Var(l)
}

// Positive reports whether l is a positive literal.
func (l Literal) Positive() bool { return l > 0 }

// ClauseSink receives clauses one at a time as the encoder produces them,
// so the encoder never has to materialize the full clause database in
// memory (spec.md §9 "Lazy slice enumeration" / §4.C "the encoder is
// expected to... stream clauses to the solver rather than materialize them
// all").
type ClauseSink interface {
	AddClause(lits ...Literal) error
}

// CountingSink is a ClauseSink that forwards every clause to Sink and
// counts clauses as they arrive.
type CountingSink struct {
	Sink  ClauseSink
	Count uint64
}

// AddClause forwards to the wrapped sink and increments Count.
func (c *CountingSink) AddClause(lits ...Literal) error {
	c.Count++
	return c.Sink.AddClause(lits...)
}
