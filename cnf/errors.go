package cnf

import "github.com/quorumsat/fbasqi/varalloc"

// ErrEncodingOverflow is spec.md §7.2's EncodingOverflow kind: a vertex's
// combinatorial slice count exceeded the configured ceiling. It is the same
// sentinel varalloc.New returns (the Variable Allocator is the stage that
// first computes slice counts, to size its offset table) — re-exported here
// under the name the rest of the pipeline's error table (SPEC_FULL.md §7)
// expects.
var ErrEncodingOverflow = varalloc.ErrSliceCeilingExceeded
