package graph

import (
	"errors"
	"fmt"

	"github.com/quorumsat/fbasqi/qset"
)

// Sentinel errors a caller can test for with errors.Is against the error
// MalformedGraphError wraps.
var (
	// ErrUnknownValidator indicates a quorum set named a validator that has
	// no top-level entry of its own in the input map.
	ErrUnknownValidator = errors.New("graph: quorum set references unknown validator")

	// ErrThresholdOutOfRange indicates a vertex's threshold violates
	// 1 <= t_i <= outdegree(i).
	ErrThresholdOutOfRange = errors.New("graph: threshold out of range")

	// ErrCycle indicates a structural cycle was found, either in the raw
	// quorum-set tree (always rejected — it cannot be a well-founded
	// specification) or, when WithRequireAcyclic is set, in the assembled
	// vertex graph.
	ErrCycle = errors.New("graph: cycle detected")

	// ErrDegenerateVertex indicates an outdegree-0 vertex was rejected under
	// the default RejectOutdegreeZero policy (spec.md §9 open question).
	ErrDegenerateVertex = errors.New("graph: degenerate outdegree-0 vertex")
)

// MalformedGraphError is the single error type Build returns on any failure,
// wrapping one of the sentinels above plus the validator/vertex context that
// triggered it — the teacher's builder package "wrap once at the API
// boundary" idiom (see builder.BuildGraph in the retrieval pack).
type MalformedGraphError struct {
	Validator qset.ValidatorID // the top-level validator whose tree triggered the failure, if any
	Err       error
}

func (e *MalformedGraphError) Error() string {
	if e.Validator != "" {
		return fmt.Sprintf("graph: malformed input rooted at validator %q: %v", e.Validator, e.Err)
	}
	return fmt.Sprintf("graph: malformed input: %v", e.Err)
}

func (e *MalformedGraphError) Unwrap() error { return e.Err }

func malformed(validator qset.ValidatorID, err error) *MalformedGraphError {
	return &MalformedGraphError{Validator: validator, Err: err}
}
