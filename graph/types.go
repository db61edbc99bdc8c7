// Package graph defines the FBAS directed graph the Graph Builder produces
// from a quorum-set map (spec.md §3, §4.A): validator vertices and
// quorum-set vertices, each carrying a threshold over its successors.
//
// Unlike the teacher's core.Graph, a graph.Graph is immutable once Build
// returns — spec.md §3's lifecycle is "built once, handed to the solver,
// and discarded", not a live structure callers keep mutating — so there is
// no AddVertex/RemoveVertex surface here, only read queries.
package graph

import "github.com/quorumsat/fbasqi/qset"

// VertexID identifies a vertex within [0, M). Validator vertices occupy
// [0, N); quorum-set vertices occupy [N, M), per spec.md §3's invariant
// that the two classes are disjoint. IDs are 0-based, per spec.md §3's note
// that "implementations may use 0-based internally".
type VertexID int

// VertexKind distinguishes a validator vertex from a quorum-set vertex.
type VertexKind uint8

const (
	// KindValidator marks a leaf-like vertex representing a real participant.
	KindValidator VertexKind = iota
	// KindQuorumSet marks an internal vertex representing a composite slice spec.
	KindQuorumSet
)

// String renders k for diagnostics.
func (k VertexKind) String() string {
	if k == KindValidator {
		return "validator"
	}
	return "quorum-set"
}

// Vertex is one node of the FBAS graph: its kind, its threshold, and its
// ordered list of successors. For a validator vertex, Successors always has
// length 1 (its single top-level quorum-set vertex) and Validator names it.
type Vertex struct {
	ID         VertexID
	Kind       VertexKind
	Threshold  int
	Successors []VertexID
	Validator  qset.ValidatorID // only meaningful when Kind == KindValidator
}

// Outdegree returns len(Successors).
func (v Vertex) Outdegree() int { return len(v.Successors) }

// Graph is the normalized FBAS directed graph produced by Build. It is
// read-only: construct one with Build, hand it to the rest of the pipeline,
// and discard it after the verdict (spec.md §3 "Lifecycle").
type Graph struct {
	vertices      []Vertex
	numValidators int
	byValidator   map[qset.ValidatorID]VertexID
}

// NumVertices returns M, the total vertex count.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumValidators returns N, the validator vertex count. Validator vertices
// are exactly IDs [0, NumValidators()).
func (g *Graph) NumValidators() int { return g.numValidators }

// Vertex returns the vertex at id. It panics if id is out of range, the same
// contract container/heap-style internal helpers in the teacher's codebase
// use for indices a caller is expected to have validated already.
func (g *Graph) Vertex(id VertexID) Vertex { return g.vertices[id] }

// Successors returns id's successor list, in builder-assigned order.
func (g *Graph) Successors(id VertexID) []VertexID { return g.vertices[id].Successors }

// Threshold returns id's threshold t_i.
func (g *Graph) Threshold(id VertexID) int { return g.vertices[id].Threshold }

// Outdegree returns id's outdegree.
func (g *Graph) Outdegree(id VertexID) int { return len(g.vertices[id].Successors) }

// ValidatorVertex returns the VertexID assigned to validator v, and whether
// v was present in the graph.
func (g *Graph) ValidatorVertex(v qset.ValidatorID) (VertexID, bool) {
	id, ok := g.byValidator[v]
	return id, ok
}

// ValidatorName returns the validator identity of a validator vertex. It
// returns ("", false) for a quorum-set vertex.
func (g *Graph) ValidatorName(id VertexID) (qset.ValidatorID, bool) {
	v := g.vertices[id]
	if v.Kind != KindValidator {
		return "", false
	}
	return v.Validator, true
}

// Validators returns the IDs of every validator vertex, i.e. [0, N).
func (g *Graph) Validators() []VertexID {
	out := make([]VertexID, g.numValidators)
	for i := range out {
		out[i] = VertexID(i)
	}
	return out
}
