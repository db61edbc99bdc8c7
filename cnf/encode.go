package cnf

import (
	"fmt"

	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/internal/xlog"
	"github.com/quorumsat/fbasqi/varalloc"
)

// Config tunes the encoder. SliceCeiling is not consulted here directly —
// it governs varalloc.New, which alloc must already have been built with —
// but is kept on Config so CountClauses (which runs independently of an
// Allocator) can apply the same ceiling.
type Config struct {
	// SliceCeiling bounds C(outdegree, threshold) per vertex; 0 means
	// unlimited. Default (see DefaultConfig): 1<<22.
	SliceCeiling uint64
}

// DefaultConfig returns the default encoder configuration.
func DefaultConfig() Config {
	return Config{SliceCeiling: 1 << 22}
}

// Encode emits, onto sink, the non-emptiness, disjointness, and
// quorum-closure clause families of spec.md §4.C, for the graph g using the
// variable numbering in alloc. alloc must have been built from the same g
// (callers normally just call varalloc.New(g, cfg.SliceCeiling) immediately
// before Encode).
//
// Clause emission order does not affect correctness (spec.md §5 "Ordering
// guarantees"); Encode emits non-emptiness, then disjointness, then
// quorum-closure vertex by vertex, both labels together per vertex so each
// vertex's slices are enumerated exactly once.
func Encode(g *graph.Graph, alloc *varalloc.Allocator, sink ClauseSink) error {
	if err := encodeNonEmptiness(g, alloc, sink); err != nil {
		return err
	}
	if err := encodeDisjointness(g, alloc, sink); err != nil {
		return err
	}
	for i := 0; i < g.NumVertices(); i++ {
		if err := encodeQuorumClosure(g, alloc, sink, graph.VertexID(i)); err != nil {
			return err
		}
	}
	xlog.Get().Debug().Int("vertices", g.NumVertices()).Msg("cnf: encoding complete")
	return nil
}

// encodeNonEmptiness emits family (i): A_1 ∨ ... ∨ A_N and B_1 ∨ ... ∨ B_N,
// ranging over validators only (spec.md §9 "Validator-only... non-emptiness").
func encodeNonEmptiness(g *graph.Graph, alloc *varalloc.Allocator, sink ClauseSink) error {
	validators := g.Validators()
	aClause := make([]Literal, len(validators))
	bClause := make([]Literal, len(validators))
	for idx, v := range validators {
		aClause[idx] = Pos(alloc.AVar(v))
		bClause[idx] = Pos(alloc.BVar(v))
	}
	if err := sink.AddClause(aClause...); err != nil {
		return fmt.Errorf("cnf: non-emptiness A: %w", err)
	}
	if err := sink.AddClause(bClause...); err != nil {
		return fmt.Errorf("cnf: non-emptiness B: %w", err)
	}
	return nil
}

// encodeDisjointness emits family (ii): ¬A_i ∨ ¬B_i for every validator i
// (spec.md §9 "Disjointness scope" — validators only, never extended to
// quorum-set vertices).
func encodeDisjointness(g *graph.Graph, alloc *varalloc.Allocator, sink ClauseSink) error {
	for _, v := range g.Validators() {
		if err := sink.AddClause(Neg(alloc.AVar(v)), Neg(alloc.BVar(v))); err != nil {
			return fmt.Errorf("cnf: disjointness vertex %d: %w", v, err)
		}
	}
	return nil
}

// encodeQuorumClosure emits family (iii) for vertex i, for both labels at
// once. For an outdegree-0 vertex (spec.md §4.C edge case), the
// "at-least-one-slice" clause degenerates to ¬X_i and no auxiliary clauses
// are emitted.
func encodeQuorumClosure(g *graph.Graph, alloc *varalloc.Allocator, sink ClauseSink, i graph.VertexID) error {
	if g.Outdegree(i) == 0 {
		if err := sink.AddClause(Neg(alloc.AVar(i))); err != nil {
			return fmt.Errorf("cnf: degenerate closure A, vertex %d: %w", i, err)
		}
		if err := sink.AddClause(Neg(alloc.BVar(i))); err != nil {
			return fmt.Errorf("cnf: degenerate closure B, vertex %d: %w", i, err)
		}
		return nil
	}

	t := g.Threshold(i)
	successors := g.Successors(i)
	numSlices := alloc.NumSlices(i)

	aAtLeastOne := make([]Literal, 1, numSlices+1)
	aAtLeastOne[0] = Neg(alloc.AVar(i))
	bAtLeastOne := make([]Literal, 1, numSlices+1)
	bAtLeastOne[0] = Neg(alloc.BVar(i))

	err := enumerateSlices(successors, t, func(j int, members []graph.VertexID) error {
		alphaVar := alloc.AlphaVar(i, j)
		betaVar := alloc.BetaVar(i, j)
		aAtLeastOne = append(aAtLeastOne, Pos(alphaVar))
		bAtLeastOne = append(bAtLeastOne, Pos(betaVar))

		clause3A := make([]Literal, 1, len(members)+1)
		clause3A[0] = Pos(alphaVar)
		clause3B := make([]Literal, 1, len(members)+1)
		clause3B[0] = Pos(betaVar)

		for _, k := range members {
			// "auxiliary implies member": ¬ξ_i^j ∨ X_k
			if err := sink.AddClause(Neg(alphaVar), Pos(alloc.AVar(k))); err != nil {
				return err
			}
			if err := sink.AddClause(Neg(betaVar), Pos(alloc.BVar(k))); err != nil {
				return err
			}
			clause3A = append(clause3A, Neg(alloc.AVar(k)))
			clause3B = append(clause3B, Neg(alloc.BVar(k)))
		}
		// "members imply auxiliary": ξ_i^j ∨ (⋁ ¬X_k)
		if err := sink.AddClause(clause3A...); err != nil {
			return err
		}
		if err := sink.AddClause(clause3B...); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cnf: quorum-closure vertex %d: %w", i, err)
	}

	if err := sink.AddClause(aAtLeastOne...); err != nil {
		return fmt.Errorf("cnf: at-least-one-slice A, vertex %d: %w", i, err)
	}
	if err := sink.AddClause(bAtLeastOne...); err != nil {
		return fmt.Errorf("cnf: at-least-one-slice B, vertex %d: %w", i, err)
	}
	return nil
}
