package solve

import "errors"

// Sentinel errors for the Solver Driver & Witness Decoder, per spec.md §7.
var (
	// ErrOracleFailure indicates the SAT oracle itself returned an error or
	// an unrecognized status.
	ErrOracleFailure = errors.New("solve: oracle failure")

	// ErrInconsistentModel indicates the decoder's self-check rejected a
	// SAT model: per spec.md §7, "a model that the decoder's self-check
	// rejects" is a bug that must surface, never be silently retried.
	ErrInconsistentModel = errors.New("solve: inconsistent model")

	// ErrCancelled indicates an external interrupt was observed before the
	// oracle reached a verdict.
	ErrCancelled = errors.New("solve: cancelled")
)
