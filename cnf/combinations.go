package cnf

import "github.com/quorumsat/fbasqi/graph"

// enumerateSlices calls yield once per size-t combination of successors, in
// lexicographic order of index, without ever materializing more than one
// combination at a time — the lazy iteration spec.md §9 calls for
// ("clauses must be streamed to the solver rather than materialized").
// yield receives the 0-based slice index j (matching
// varalloc.Allocator's AlphaVar/BetaVar indexing) and the slice's members.
//
// The members slice passed to yield is reused across iterations; yield must
// not retain it past its call.
func enumerateSlices(successors []graph.VertexID, t int, yield func(j int, members []graph.VertexID) error) error {
	d := len(successors)
	if d == 0 || t <= 0 || t > d {
		return nil
	}

	idx := make([]int, t)
	for i := range idx {
		idx[i] = i
	}
	members := make([]graph.VertexID, t)

	j := 0
	for {
		for i, p := range idx {
			members[i] = successors[p]
		}
		if err := yield(j, members); err != nil {
			return err
		}
		j++

		// Find the rightmost index that can still be advanced.
		i := t - 1
		for i >= 0 && idx[i] == i+d-t {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for k := i + 1; k < t; k++ {
			idx[k] = idx[k-1] + 1
		}
	}
}
