package solve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumsat/fbasqi/cnf"
	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/qset"
	"github.com/quorumsat/fbasqi/solve"
	"github.com/quorumsat/fbasqi/varalloc"
)

// stubOracle is an in-memory solve.Oracle double: it discards every clause
// it receives and returns a fixed status/model, so Decode's own logic can be
// tested without a real SAT run.
type stubOracle struct {
	status solve.Status
	model  map[varalloc.Var]bool
}

func (o *stubOracle) AddClause(lits ...cnf.Literal) error { return nil }

func (o *stubOracle) Solve(context.Context) (solve.Status, error) { return o.status, nil }

func (o *stubOracle) Model(v varalloc.Var) bool { return o.model[v] }

func (o *stubOracle) Interrupt() {}

func buildThreeWayMajority(t *testing.T) (*graph.Graph, *varalloc.Allocator) {
	t.Helper()
	all := []qset.ValidatorID{"v1", "v2", "v3"}
	m := qset.Map{}
	for _, v := range all {
		m[v] = &qset.QuorumSet{Threshold: 2, Validators: all}
	}
	g, err := graph.Build(m)
	require.NoError(t, err)
	alloc, err := varalloc.New(g, 0)
	require.NoError(t, err)
	return g, alloc
}

func buildTwoCliques(t *testing.T) (*graph.Graph, *varalloc.Allocator) {
	t.Helper()
	cliqueA := []qset.ValidatorID{"a1", "a2"}
	cliqueB := []qset.ValidatorID{"b1", "b2"}
	m := qset.Map{}
	for _, v := range cliqueA {
		m[v] = &qset.QuorumSet{Threshold: 2, Validators: cliqueA}
	}
	for _, v := range cliqueB {
		m[v] = &qset.QuorumSet{Threshold: 2, Validators: cliqueB}
	}
	g, err := graph.Build(m)
	require.NoError(t, err)
	alloc, err := varalloc.New(g, 0)
	require.NoError(t, err)
	return g, alloc
}

func TestDecode_UnsatMeansIntersects(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	oracle := &stubOracle{status: solve.StatusUnsat}

	v, err := solve.Decode(context.Background(), g, alloc, oracle)
	require.NoError(t, err)
	assert.Equal(t, solve.Intersects, v.Kind)
	assert.Empty(t, v.QuorumA)
	assert.Empty(t, v.QuorumB)
}

func TestDecode_CancelledReturnsErrCancelled(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	oracle := &stubOracle{status: solve.StatusCancelled}

	_, err := solve.Decode(context.Background(), g, alloc, oracle)
	assert.ErrorIs(t, err, solve.ErrCancelled)
}

func TestDecode_SatDecodesDisjointWitness(t *testing.T) {
	g, alloc := buildTwoCliques(t)

	va1, _ := g.ValidatorVertex("a1")
	va2, _ := g.ValidatorVertex("a2")
	vb1, _ := g.ValidatorVertex("b1")
	vb2, _ := g.ValidatorVertex("b2")
	topA := g.Successors(va1)[0]
	topB := g.Successors(vb1)[0]

	model := map[varalloc.Var]bool{
		alloc.AVar(va1): true, alloc.AVar(va2): true, alloc.AVar(topA): true,
		alloc.BVar(vb1): true, alloc.BVar(vb2): true, alloc.BVar(topB): true,
	}
	oracle := &stubOracle{status: solve.StatusSat, model: model}

	v, err := solve.Decode(context.Background(), g, alloc, oracle)
	require.NoError(t, err)
	assert.Equal(t, solve.Disjoint, v.Kind)
	assert.ElementsMatch(t, []qset.ValidatorID{"a1", "a2"}, v.QuorumA)
	assert.ElementsMatch(t, []qset.ValidatorID{"b1", "b2"}, v.QuorumB)
}

func TestDecode_InconsistentModelRejected(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	v1, _ := g.ValidatorVertex("v1")
	v2, _ := g.ValidatorVertex("v2")
	v3, _ := g.ValidatorVertex("v3")
	top := g.Successors(v1)[0]

	// Only one successor of top marked, yet A_top is asserted true — its
	// threshold of 2 is not met, so the closure self-check must reject this.
	// B is a valid quorum disjoint from A, so neither the emptiness nor the
	// disjointness check fires first.
	model := map[varalloc.Var]bool{
		alloc.AVar(v1): true,
		alloc.AVar(top): true,
		alloc.BVar(v2): true, alloc.BVar(v3): true, alloc.BVar(top): true,
	}
	oracle := &stubOracle{status: solve.StatusSat, model: model}

	_, err := solve.Decode(context.Background(), g, alloc, oracle)
	assert.ErrorIs(t, err, solve.ErrInconsistentModel)
}

func TestDecode_EmptyQuorumRejected(t *testing.T) {
	g, alloc := buildTwoCliques(t)
	// No A_i set at all: QuorumA comes back empty, which must be rejected.
	oracle := &stubOracle{status: solve.StatusSat, model: map[varalloc.Var]bool{}}

	_, err := solve.Decode(context.Background(), g, alloc, oracle)
	assert.ErrorIs(t, err, solve.ErrInconsistentModel)
}

func TestDecode_OverlappingQuorumsRejected(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	v1, _ := g.ValidatorVertex("v1")
	v2, _ := g.ValidatorVertex("v2")
	v3, _ := g.ValidatorVertex("v3")
	top := g.Successors(v1)[0]

	// Same quorum asserted as both A and B: violates disjointness even
	// though each side individually is a valid quorum.
	model := map[varalloc.Var]bool{
		alloc.AVar(v1): true, alloc.AVar(v2): true, alloc.AVar(v3): true, alloc.AVar(top): true,
		alloc.BVar(v1): true, alloc.BVar(v2): true, alloc.BVar(v3): true, alloc.BVar(top): true,
	}
	oracle := &stubOracle{status: solve.StatusSat, model: model}

	_, err := solve.Decode(context.Background(), g, alloc, oracle)
	assert.ErrorIs(t, err, solve.ErrInconsistentModel)
}
