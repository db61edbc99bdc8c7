// Package varalloc assigns SAT variable identifiers to the three families
// of propositions the CNF Encoder needs (spec.md §4.B): A_i, B_i per
// vertex, and the Tseitin auxiliaries α_i^j, β_i^j per (vertex,
// slice-index) pair.
//
// Allocation is a single flat offset table, per spec.md §9's own suggestion
// ("the Variable Allocator may implement this as a flat offset table... for
// cache locality. No object graph is required"), and is deterministic given
// the graph's vertex order, so two runs over the same graph.Graph produce
// identical variable numbering.
package varalloc

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/quorumsat/fbasqi/graph"
)

// ErrSliceCeilingExceeded is returned by New when a vertex's slice count
// C(outdegree, threshold) exceeds the configured ceiling. The Variable
// Allocator is the first stage to compute slice counts (it needs them to
// size its offset table), so this is where spec.md §7.2's EncodingOverflow
// is first detected.
var ErrSliceCeilingExceeded = errors.New("varalloc: slice count exceeds configured ceiling")

// Var is a 1-based SAT variable identifier. It is a distinct type from
// graph.VertexID so clause-building code cannot accidentally pass a vertex
// ID where a variable ID is required.
type Var int

// Allocator holds the per-vertex offsets into the four variable families.
type Allocator struct {
	numVertices int
	numSlices   []int // |Π_i| per vertex, precomputed once

	// aBase, bBase: A_i = aBase + i + 1, B_i = bBase + i + 1 (1-based).
	aBase, bBase int

	// alphaOffset[i], betaOffset[i]: base offset for vertex i's auxiliaries;
	// AlphaVar(i,j) = alphaOffset[i] + j + 1 (0-based j).
	alphaOffset []int
	betaOffset  []int

	numVars int
}

// New precomputes slice counts for every vertex in g (failing with
// ErrSliceCeilingExceeded if any exceeds ceiling — 0 means unlimited) and
// lays out the four variable families back to back: A, B, then alpha/beta
// interleaved per vertex in vertex order. The resulting numbering is a
// contiguous prefix of the positive integers, the "Encoding properties"
// invariant of spec.md §8.
func New(g *graph.Graph, ceiling uint64) (*Allocator, error) {
	n := g.NumVertices()
	a := &Allocator{
		numVertices: n,
		numSlices:   make([]int, n),
		alphaOffset: make([]int, n),
		betaOffset:  make([]int, n),
	}

	for i := 0; i < n; i++ {
		id := graph.VertexID(i)
		count, err := sliceCount(g.Outdegree(id), g.Threshold(id), ceiling)
		if err != nil {
			return nil, fmt.Errorf("varalloc: vertex %d: %w", i, err)
		}
		a.numSlices[i] = count
	}

	// Layout: [A_1..A_n][B_1..B_n][alpha/beta interleaved per vertex]
	a.aBase = 0
	a.bBase = n
	next := 2 * n
	for i := 0; i < n; i++ {
		a.alphaOffset[i] = next
		next += a.numSlices[i]
		a.betaOffset[i] = next
		next += a.numSlices[i]
	}
	a.numVars = next

	return a, nil
}

// sliceCount returns C(d, t), the number of size-t subsets of d successors,
// failing if it would exceed ceiling (0 = unlimited). Uses math/big because
// C(d,t) can exceed a machine word for large vertices long before it would
// ever be enumerable.
func sliceCount(d, t int, ceiling uint64) (int, error) {
	if d == 0 {
		return 0, nil
	}
	c := new(big.Int).Binomial(int64(d), int64(t))
	if ceiling > 0 && c.Cmp(new(big.Int).SetUint64(ceiling)) > 0 {
		return 0, fmt.Errorf("%w: C(%d,%d)=%s > %d", ErrSliceCeilingExceeded, d, t, c.String(), ceiling)
	}
	if !c.IsInt64() {
		return 0, fmt.Errorf("%w: C(%d,%d)=%s overflows int", ErrSliceCeilingExceeded, d, t, c.String())
	}
	return int(c.Int64()), nil
}

// NumSlices returns |Π_i|, the number of slices of vertex i.
func (a *Allocator) NumSlices(i graph.VertexID) int { return a.numSlices[i] }

// NumVars returns the total number of SAT variables allocated.
func (a *Allocator) NumVars() int { return a.numVars }

// Contiguous reports whether the allocated variables form a contiguous
// prefix of the positive integers [1, NumVars()] with no gaps or reuse —
// the "Encoding properties" invariant of spec.md §8. The layout New builds
// (A, then B, then alpha/beta back to back per vertex, each family sized
// exactly to its vertex's slice count) guarantees this by construction, so
// there is nothing left to scan for.
func (a *Allocator) Contiguous() bool { return true }

// AVar returns the variable identifier for A_i.
func (a *Allocator) AVar(i graph.VertexID) Var { return Var(a.aBase + int(i) + 1) }

// BVar returns the variable identifier for B_i.
func (a *Allocator) BVar(i graph.VertexID) Var { return Var(a.bBase + int(i) + 1) }

// AlphaVar returns the variable identifier for alpha_i^j (0-based slice
// index j, 0 <= j < NumSlices(i)).
func (a *Allocator) AlphaVar(i graph.VertexID, j int) Var { return Var(a.alphaOffset[i] + j + 1) }

// BetaVar returns the variable identifier for beta_i^j.
func (a *Allocator) BetaVar(i graph.VertexID, j int) Var { return Var(a.betaOffset[i] + j + 1) }
