package solve

import (
	"context"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/internal/xlog"
	"github.com/quorumsat/fbasqi/varalloc"
)

// Decode runs oracle to a verdict over the graph g numbered by alloc.
//
// UNSAT decodes to Verdict{Kind: Intersects} (spec.md §4.D). SAT decodes by
// reading A_i/B_i for validator vertices only (spec.md §9 "Disjointness
// scope" — quorum-set vertices are implementation artifacts of the
// encoding) into QuorumA/QuorumB, then running the self-check spec.md §4.D
// allows the decoder to perform: both sets non-empty, pairwise disjoint,
// and each a quorum of the whole graph (spec.md §3's definition, checked
// over every vertex the model touches, not just validators — a vertex is in
// its label's quorum only if at least Threshold(i) of its successors are
// too, which is exactly "some size-t_i slice is fully contained").
//
// Cancellation is reported as ErrCancelled, never folded into Verdict — see
// the Verdict doc comment.
func Decode(ctx context.Context, g *graph.Graph, alloc *varalloc.Allocator, oracle Oracle) (Verdict, error) {
	status, err := oracle.Solve(ctx)
	if err != nil {
		return Verdict{}, err
	}

	switch status {
	case StatusCancelled:
		return Verdict{}, ErrCancelled
	case StatusUnsat:
		xlog.Get().Debug().Msg("solve: UNSAT — quorum intersection holds")
		return Verdict{Kind: Intersects}, nil
	case StatusSat:
		return decodeModel(g, alloc, oracle)
	default:
		return Verdict{}, fmt.Errorf("%w: unrecognized status %v", ErrOracleFailure, status)
	}
}

func decodeModel(g *graph.Graph, alloc *varalloc.Allocator, oracle Oracle) (Verdict, error) {
	n := g.NumVertices()
	setA := bitset.New(uint(n))
	setB := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		id := graph.VertexID(i)
		if oracle.Model(alloc.AVar(id)) {
			setA.Set(uint(i))
		}
		if oracle.Model(alloc.BVar(id)) {
			setB.Set(uint(i))
		}
	}

	v := Verdict{Kind: Disjoint}
	for _, id := range g.Validators() {
		name, _ := g.ValidatorName(id)
		if setA.Test(uint(id)) {
			v.QuorumA = append(v.QuorumA, name)
		}
		if setB.Test(uint(id)) {
			v.QuorumB = append(v.QuorumB, name)
		}
	}

	if err := selfCheck(g, setA, setB, v); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrInconsistentModel, err)
	}

	xlog.Get().Debug().
		Int("quorum_a_size", len(v.QuorumA)).
		Int("quorum_b_size", len(v.QuorumB)).
		Msg("solve: SAT — witness decoded")

	return v, nil
}

// selfCheck implements the assertion spec.md §4.D allows the decoder to
// make: "the returned sets must satisfy the quorum definition and have
// empty intersection".
func selfCheck(g *graph.Graph, setA, setB *bitset.BitSet, v Verdict) error {
	if len(v.QuorumA) == 0 {
		return fmt.Errorf("quorum A is empty")
	}
	if len(v.QuorumB) == 0 {
		return fmt.Errorf("quorum B is empty")
	}

	seen := make(map[string]struct{}, len(v.QuorumA))
	for _, name := range v.QuorumA {
		seen[string(name)] = struct{}{}
	}
	for _, name := range v.QuorumB {
		if _, ok := seen[string(name)]; ok {
			return fmt.Errorf("validator %q present in both quorums", name)
		}
	}

	if err := checkQuorumClosure(g, setA); err != nil {
		return fmt.Errorf("quorum A: %w", err)
	}
	if err := checkQuorumClosure(g, setB); err != nil {
		return fmt.Errorf("quorum B: %w", err)
	}
	return nil
}

// checkQuorumClosure verifies that every vertex marked in set has at least
// Threshold(i) of its successors also marked — equivalent to "some size-t_i
// slice of i is fully contained in set", since Π_i is every size-t_i subset
// of i's successors, not a restricted list.
func checkQuorumClosure(g *graph.Graph, set *bitset.BitSet) error {
	n := g.NumVertices()
	for i := 0; i < n; i++ {
		if !set.Test(uint(i)) {
			continue
		}
		id := graph.VertexID(i)
		if g.Outdegree(id) == 0 {
			return fmt.Errorf("vertex %d has outdegree 0 but is marked in the quorum", i)
		}
		count := 0
		for _, s := range g.Successors(id) {
			if set.Test(uint(s)) {
				count++
			}
		}
		if count < g.Threshold(id) {
			return fmt.Errorf("vertex %d has only %d/%d successors in the quorum", i, count, g.Threshold(id))
		}
	}
	return nil
}
