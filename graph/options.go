package graph

// OutdegreeZeroPolicy resolves spec.md §9's open question on outdegree-0
// vertices. Two defensible policies exist; implementations must pick one
// and test it, per the spec.
type OutdegreeZeroPolicy uint8

const (
	// RejectOutdegreeZero fails Build with ErrDegenerateVertex as soon as an
	// outdegree-0 vertex is encountered. This is the default (see
	// DESIGN.md's Open Question decisions for the rationale).
	RejectOutdegreeZero OutdegreeZeroPolicy = iota

	// AllowDegenerateForbidden accepts an outdegree-0 vertex and lets the
	// CNF Encoder forbid its membership (emitting ¬X_i, per spec.md §4.C's
	// edge-case note) instead of rejecting the graph outright.
	AllowDegenerateForbidden
)

// Option configures Build, following the functional-options idiom the
// teacher's core and builder packages use throughout.
type Option func(*buildConfig)

type buildConfig struct {
	outdegreeZeroPolicy OutdegreeZeroPolicy
	hashCons            bool
	requireAcyclic      bool
}

func defaultBuildConfig() buildConfig {
	return buildConfig{
		outdegreeZeroPolicy: RejectOutdegreeZero,
		hashCons:            true,
		requireAcyclic:      false,
	}
}

// WithOutdegreeZeroPolicy selects how Build handles a vertex with no
// successors. Default: RejectOutdegreeZero.
func WithOutdegreeZeroPolicy(p OutdegreeZeroPolicy) Option {
	return func(c *buildConfig) { c.outdegreeZeroPolicy = p }
}

// WithStructuralHashConsing toggles de-duplication of structurally-identical
// quorum-set subtrees into a single vertex (spec.md §9). Default: true.
// Disable it to keep one vertex per occurrence instead, e.g. to preserve a
// 1:1 correspondence with positions in the original input.
func WithStructuralHashConsing(enabled bool) Option {
	return func(c *buildConfig) { c.hashCons = enabled }
}

// WithRequireAcyclic rejects the graph with ErrCycle if the assembled vertex
// graph (including validator cross-references) contains a cycle. Default:
// off — spec.md §3 notes "the encoding does not require acyclicity", and
// real FBAS configurations routinely have validators reference each other.
func WithRequireAcyclic() Option {
	return func(c *buildConfig) { c.requireAcyclic = true }
}
