// Package fbasqi decides whether a Federated Byzantine Agreement System
// configuration enjoys quorum intersection — by compiling it to a Boolean
// satisfiability problem and asking a SAT solver whether two disjoint
// quorums can coexist.
//
// 🚀 What is fbasqi?
//
//	A small, library-first decision procedure that turns an FBAS quorum-set
//	map into a CNF formula and back into a verdict:
//
//	  • Graph Builder   — normalizes validators & nested quorum-sets into a
//	                       directed graph, hash-consing identical slice specs
//	  • Variable Allocator — flat offset table for A_i, B_i, and the Tseitin
//	                       auxiliaries the encoder needs
//	  • CNF Encoder     — streams non-emptiness, disjointness, and
//	                       quorum-closure clauses without materializing
//	                       C(d,t) slices in memory
//	  • Solver Driver   — hands the formula to github.com/crillab/gophersat
//	                       and decodes its model back into a witness pair
//
// ✨ Why fbasqi?
//
//   - UNSAT means proven safe — every pair of quorums is shown to
//     intersect, not merely "none found by sampling"
//   - SAT comes with a witness — two concrete, disjoint, self-checked
//     quorums, not just "yes it's broken"
//   - Library first — context.Context cancellation throughout, a single
//     Analyze entry point; the only package-level state is the debug
//     logger installed through fbasanalyze.WithLogger
//
// Under the hood, everything is organized under focused subpackages:
//
//	qset/         — quorum-set tree, JSON/XDR ingest
//	graph/        — Graph Builder
//	varalloc/     — Variable Allocator
//	cnf/          — CNF Encoder
//	solve/        — Solver Driver & Witness Decoder
//	fbasanalyze/  — the single public Analyze entry point
//	cmd/fbasqi/   — a thin CLI over the JSON ingest path
//
// Quick example:
//
//	verdict, err := fbasanalyze.Analyze(ctx, qsets)
//	if err != nil { ... }
//	switch verdict.Kind {
//	case solve.Intersects:
//		// every quorum pair shares a validator
//	case solve.Disjoint:
//		// verdict.QuorumA, verdict.QuorumB are a witness
//	}
package fbasqi
