package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/quorumsat/fbasqi/internal/xlog"
	"github.com/quorumsat/fbasqi/qset"
)

// Build parses qsets into a normalized FBAS graph (spec.md §4.A).
//
// Validator vertices are assigned IDs [0, N) in lexicographic order of
// their ValidatorID, so allocation is deterministic given the input map —
// spec.md §4.B requires this to aid reproducibility of witnesses.
// Quorum-set vertices are resolved depth-first (validators processed in
// that same lexicographic order) and assigned IDs [N, M) in post-order, so a
// quorum set's inner sets receive their IDs before it does; structurally-identical subtrees collapse to one vertex when
// WithStructuralHashConsing is enabled (the default).
//
// Errors:
//   - *MalformedGraphError wrapping ErrUnknownValidator, ErrThresholdOutOfRange,
//     ErrDegenerateVertex, or ErrCycle.
func Build(qsets qset.Map, opts ...Option) (*Graph, error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	names := make([]qset.ValidatorID, 0, len(qsets))
	for v := range qsets {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	b := &builder{
		cfg:       cfg,
		input:     qsets,
		byValName: make(map[qset.ValidatorID]VertexID, len(names)),
		hashCons:  make(map[string]VertexID),
	}

	// Pass 1: every validator mentioned anywhere must have its own entry.
	for _, name := range names {
		if err := b.checkReferences(name, qsets[name]); err != nil {
			return nil, malformed(name, err)
		}
	}

	// Pass 2: assign validator vertex IDs up front, in deterministic order.
	for _, name := range names {
		id := VertexID(len(b.vertices))
		b.vertices = append(b.vertices, Vertex{ID: id, Kind: KindValidator, Threshold: 1, Validator: name})
		b.byValName[name] = id
	}
	b.numValidators = len(b.vertices)

	// Pass 3: resolve each validator's top-level quorum-set tree, filling in
	// its single successor edge.
	for _, name := range names {
		top, err := b.resolve(qsets[name], map[*qset.QuorumSet]bool{})
		if err != nil {
			return nil, malformed(name, err)
		}
		valID := b.byValName[name]
		b.vertices[valID].Successors = []VertexID{top}
	}

	if cfg.requireAcyclic {
		if err := detectCycle(b.vertices); err != nil {
			return nil, malformed("", err)
		}
	}

	xlog.Get().Debug().
		Int("validators", b.numValidators).
		Int("vertices", len(b.vertices)).
		Msg("graph: built FBAS graph")

	return &Graph{vertices: b.vertices, numValidators: b.numValidators, byValidator: b.byValName}, nil
}

type builder struct {
	cfg           buildConfig
	input         qset.Map
	vertices      []Vertex
	numValidators int
	byValName     map[qset.ValidatorID]VertexID
	hashCons      map[string]VertexID // canonical key -> vertex id, when cfg.hashCons
}

// checkReferences walks q and fails if it names a validator absent from the
// input map (ErrUnknownValidator).
func (b *builder) checkReferences(root qset.ValidatorID, q *qset.QuorumSet) error {
	if q == nil {
		return nil
	}
	for _, v := range q.Validators {
		if _, ok := b.input[v]; !ok {
			return fmt.Errorf("%w: %q (referenced from %q)", ErrUnknownValidator, v, root)
		}
	}
	for _, inner := range q.InnerSets {
		if err := b.checkReferences(root, inner); err != nil {
			return err
		}
	}
	return nil
}

// resolve assigns (or reuses, under hash-consing) a quorum-set vertex for q,
// recursively resolving its inner sets first. onStack detects a genuine
// pointer cycle within the raw QuorumSet tree itself, which is always
// rejected — it is a malformed structure, not a legitimate validator
// cross-reference (those are resolved by direct lookup in byValName, not
// recursion).
func (b *builder) resolve(q *qset.QuorumSet, onStack map[*qset.QuorumSet]bool) (VertexID, error) {
	if onStack[q] {
		return 0, ErrCycle
	}
	onStack[q] = true
	defer delete(onStack, q)

	successors := make([]VertexID, 0, len(q.Validators)+len(q.InnerSets))
	for _, v := range q.Validators {
		successors = append(successors, b.byValName[v])
	}
	for _, inner := range q.InnerSets {
		id, err := b.resolve(inner, onStack)
		if err != nil {
			return 0, err
		}
		successors = append(successors, id)
	}

	threshold := q.Threshold
	if threshold < 1 {
		return 0, fmt.Errorf("%w: threshold %d < 1", ErrThresholdOutOfRange, threshold)
	}
	outdegree := len(successors)
	if outdegree == 0 {
		switch b.cfg.outdegreeZeroPolicy {
		case AllowDegenerateForbidden:
			threshold = 0
		default:
			return 0, ErrDegenerateVertex
		}
	} else if threshold > outdegree {
		return 0, fmt.Errorf("%w: threshold %d > outdegree %d", ErrThresholdOutOfRange, threshold, outdegree)
	}

	if b.cfg.hashCons {
		key := canonicalKey(threshold, successors)
		if id, ok := b.hashCons[key]; ok {
			return id, nil
		}
		id := VertexID(len(b.vertices))
		b.vertices = append(b.vertices, Vertex{ID: id, Kind: KindQuorumSet, Threshold: threshold, Successors: successors})
		b.hashCons[key] = id
		return id, nil
	}

	id := VertexID(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{ID: id, Kind: KindQuorumSet, Threshold: threshold, Successors: successors})
	return id, nil
}

// canonicalKey builds a structural-equality key for hash-consing: two
// quorum-set vertices are the same vertex iff they have the same threshold
// and the same successor vertex IDs in the same order. Because successors
// are resolved bottom-up, this is a post-order structural hash — two
// pointer-distinct but structurally-identical subtrees collapse
// transitively.
func canonicalKey(threshold int, successors []VertexID) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(threshold))
	for _, s := range successors {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(int(s)))
	}
	return sb.String()
}

// detectCycle runs an iterative DFS cycle check over the assembled vertex
// graph (validators and quorum sets together), for WithRequireAcyclic.
func detectCycle(vertices []Vertex) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]uint8, len(vertices))

	var visit func(id VertexID) error
	visit = func(id VertexID) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return ErrCycle
		}
		state[id] = visiting
		for _, succ := range vertices[id].Successors {
			if err := visit(succ); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for i := range vertices {
		if err := visit(VertexID(i)); err != nil {
			return err
		}
	}
	return nil
}
