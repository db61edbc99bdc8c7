package cnf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumsat/fbasqi/cnf"
	"github.com/quorumsat/fbasqi/graph"
	"github.com/quorumsat/fbasqi/qset"
	"github.com/quorumsat/fbasqi/varalloc"
)

// recordingSink collects every clause it receives, for assertions.
type recordingSink struct {
	clauses [][]cnf.Literal
}

func (r *recordingSink) AddClause(lits ...cnf.Literal) error {
	cp := make([]cnf.Literal, len(lits))
	copy(cp, lits)
	r.clauses = append(r.clauses, cp)
	return nil
}

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

func TestEncode_ClauseCountMatchesFormula(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	sink := &recordingSink{}
	require.NoError(t, cnf.Encode(g, alloc, sink))

	want, err := cnf.CountClauses(g, cnf.DefaultConfig())
	require.NoError(t, err)
	assert.EqualValues(t, want, len(sink.clauses))
}

func TestEncode_NonEmptinessRangesOverValidatorsOnly(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	sink := &recordingSink{}
	require.NoError(t, cnf.Encode(g, alloc, sink))

	// First clause is the A non-emptiness clause: one literal per validator.
	require.Len(t, sink.clauses[0], g.NumValidators())
	for _, lit := range sink.clauses[0] {
		assert.True(t, lit.Positive())
	}
}

func TestEncode_DisjointnessOneClausePerValidator(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	sink := &recordingSink{}
	require.NoError(t, cnf.Encode(g, alloc, sink))

	// Clauses [2, 2+N) are the disjointness clauses, each of length 2,
	// both literals negative.
	for i := 0; i < g.NumValidators(); i++ {
		clause := sink.clauses[2+i]
		require.Len(t, clause, 2)
		assert.False(t, clause[0].Positive())
		assert.False(t, clause[1].Positive())
	}
}

func TestEncode_OutdegreeZeroForbidsMembership(t *testing.T) {
	m := qset.Map{"v1": {Threshold: 1}}
	g, err := graph.Build(m, graph.WithOutdegreeZeroPolicy(graph.AllowDegenerateForbidden))
	require.NoError(t, err)
	alloc, err := varalloc.New(g, 0)
	require.NoError(t, err)

	sink := &recordingSink{}
	require.NoError(t, cnf.Encode(g, alloc, sink))

	v1, _ := g.ValidatorVertex("v1")
	top := g.Successors(v1)[0]

	var foundA, foundB bool
	for _, clause := range sink.clauses {
		if len(clause) == 1 && clause[0].Var() == alloc.AVar(top) && !clause[0].Positive() {
			foundA = true
		}
		if len(clause) == 1 && clause[0].Var() == alloc.BVar(top) && !clause[0].Positive() {
			foundB = true
		}
	}
	assert.True(t, foundA, "expected forbidding clause for A on the degenerate vertex")
	assert.True(t, foundB, "expected forbidding clause for B on the degenerate vertex")
}

func TestCountClauses_CeilingExceeded(t *testing.T) {
	g, _ := buildThreeWayMajority(t)
	_, err := cnf.CountClauses(g, cnf.Config{SliceCeiling: 1})
	assert.ErrorIs(t, err, cnf.ErrEncodingOverflow)
}

func TestCountingSink_TalliesAndForwards(t *testing.T) {
	g, alloc := buildThreeWayMajority(t)
	inner := &recordingSink{}
	sink := &cnf.CountingSink{Sink: inner}

	require.NoError(t, cnf.Encode(g, alloc, sink))

	want, err := cnf.CountClauses(g, cnf.DefaultConfig())
	require.NoError(t, err)
	assert.EqualValues(t, want, sink.Count)
	assert.Len(t, inner.clauses, int(sink.Count))
}
