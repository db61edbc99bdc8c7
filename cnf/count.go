package cnf

import (
	"fmt"
	"math/big"

	"github.com/quorumsat/fbasqi/graph"
)

// CountClauses returns the number of clauses Encode emits for g. For every
// vertex i, the quorum-closure clause count per label is one
// "at-least-one-slice" clause, Σ_j |s_i^j| "auxiliary implies member"
// clauses, and |Π_i| "members imply auxiliary" clauses; since every slice
// has size t_i, that is 1 + |Π_i|*(t_i + 1). CountClauses adds the 2
// non-emptiness clauses and the N disjointness clauses on top, and doubles
// the quorum-closure term for the two labels A and B.
//
// It does not require a varalloc.Allocator (it only needs slice counts, not
// variable numbering), so callers can budget a solve before committing to
// full encoding.
func CountClauses(g *graph.Graph, cfg Config) (uint64, error) {
	var total uint64 = 2 + uint64(g.NumValidators()) // (i) + (ii)

	for i := 0; i < g.NumVertices(); i++ {
		id := graph.VertexID(i)
		d := g.Outdegree(id)
		if d == 0 {
			total += 2 // ¬X_i for each of A, B
			continue
		}
		t := g.Threshold(id)
		j, err := sliceCount(d, t, cfg.SliceCeiling)
		if err != nil {
			return 0, fmt.Errorf("cnf: vertex %d: %w", i, err)
		}
		perLabel := 1 + j*(t+1)
		total += uint64(2 * perLabel)
	}
	return total, nil
}

// sliceCount mirrors varalloc's own combinatorial check; kept local to cnf
// so CountClauses works without constructing an Allocator.
func sliceCount(d, t int, ceiling uint64) (int, error) {
	c := new(big.Int).Binomial(int64(d), int64(t))
	if ceiling > 0 && c.Cmp(new(big.Int).SetUint64(ceiling)) > 0 {
		return 0, fmt.Errorf("%w: C(%d,%d)=%s > %d", ErrEncodingOverflow, d, t, c.String(), ceiling)
	}
	if !c.IsInt64() {
		return 0, fmt.Errorf("%w: C(%d,%d)=%s overflows int", ErrEncodingOverflow, d, t, c.String())
	}
	return int(c.Int64()), nil
}
