// Package qset defines the quorum-set specification tree that a validator
// publishes, and the two ingest paths described at the interface level:
// an XDR path (wire format owned by the embedding consensus node) and a
// JSON path for offline testing.
//
// A QuorumSet is a tree: a threshold plus a list of inner validators and a
// list of nested inner quorum sets. Nothing in this package knows about SAT,
// CNF, or graphs — it is pure data plus decoding.
package qset

import "errors"

// Sentinel errors returned while decoding a quorum-set map.
var (
	// ErrMalformedJSON indicates the JSON ingest path could not parse its input
	// into the quorum-set schema.
	ErrMalformedJSON = errors.New("qset: malformed JSON quorum-set map")

	// ErrNilXDRDecoder indicates DecodeXDR was called with a nil XDRDecoder.
	ErrNilXDRDecoder = errors.New("qset: nil XDR decoder")

	// ErrMismatchedArrays indicates the XDR decoder's two parallel arrays
	// (validator_list, quorum_set_list) had different lengths.
	ErrMismatchedArrays = errors.New("qset: validator_list and quorum_set_list have different lengths")
)

// ValidatorID identifies a validator by its published identity (e.g. a
// strkey-encoded public key). fbasqi treats it as an opaque comparable value.
type ValidatorID string

// QuorumSet is a threshold condition over a mix of validators and nested
// quorum sets: it is satisfied when at least Threshold of
// (len(Validators) + len(InnerSets)) children are satisfied.
type QuorumSet struct {
	// Threshold is the number of children (validators + inner sets) that
	// must be present/satisfied for this quorum set to be satisfied.
	Threshold int

	// Validators lists the inner validators directly named by this slice.
	Validators []ValidatorID

	// InnerSets lists nested quorum-set specifications.
	InnerSets []*QuorumSet
}

// childCount returns the total number of immediate children (validators
// plus inner sets), i.e. the outdegree this QuorumSet will contribute to
// the FBAS graph vertex built from it.
func (q *QuorumSet) childCount() int {
	if q == nil {
		return 0
	}
	return len(q.Validators) + len(q.InnerSets)
}

// Map is the top-level input to the Graph Builder: a mapping from validator
// identity to that validator's own top-level quorum-set specification.
type Map map[ValidatorID]*QuorumSet
