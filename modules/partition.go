// SPDX-License-Identifier: MIT

package modules

import (
	"fmt"

	"github.com/katalvlaran/connectome/matrix"
)

// Partition assigns one community label to each node (index = node).
// Labels are arbitrary integers: only equality within one Partition is
// meaningful, never magnitude or equality across partitions.
type Partition []int

// Canonical returns a relabeled copy in which labels are 0..k-1, numbered by
// first appearance. Two partitions describe the same grouping iff their
// canonical forms are equal.
// Complexity: O(n).
func (p Partition) Canonical() Partition {
	out := make(Partition, len(p))
	seen := make(map[int]int, len(p))
	for i, l := range p {
		c, ok := seen[l]
		if !ok {
			c = len(seen)
			seen[l] = c
		}
		out[i] = c
	}

	return out
}

// SameAs reports whether p and q group nodes identically, up to relabeling.
// Complexity: O(n).
func (p Partition) SameAs(q Partition) bool {
	if len(p) != len(q) {
		return false
	}
	fwd := make(map[int]int, len(p))
	bwd := make(map[int]int, len(p))
	for i := range p {
		if l, ok := fwd[p[i]]; ok && l != q[i] {
			return false
		}
		if l, ok := bwd[q[i]]; ok && l != p[i] {
			return false
		}
		fwd[p[i]] = q[i]
		bwd[q[i]] = p[i]
	}

	return true
}

// Count returns the number of distinct modules.
func (p Partition) Count() int {
	seen := make(map[int]struct{}, len(p))
	for _, l := range p {
		seen[l] = struct{}{}
	}

	return len(seen)
}

// Modules returns the 0-based node index set of every module, ordered by the
// first node of each module. These are the ModuleIndexSets consumed by the
// aggregate package.
func (p Partition) Modules() [][]int {
	canon := p.Canonical()
	out := make([][]int, canon.Count())
	for i, l := range canon {
		out[l] = append(out[l], i)
	}

	return out
}

// Members returns the nodes carrying label, in ascending order.
// An unknown label yields an empty set.
func (p Partition) Members(label int) []int {
	var out []int
	for i, l := range p {
		if l == label {
			out = append(out, i)
		}
	}

	return out
}

// CoAssignment returns the N×N matrix with 1 where nodes i and j share a
// module and 0 elsewhere (diagonal 1).
// Complexity: O(n²).
func (p Partition) CoAssignment() (*matrix.Dense, error) {
	n := len(p)
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Partition.CoAssignment: %w", err)
	}
	for _, members := range p.Modules() {
		for _, i := range members {
			row := out.RawRowView(i)
			for _, j := range members {
				row[j] = 1
			}
		}
	}

	return out, nil
}

// unanimous reports whether every partition in parts equals the first one up
// to relabeling.
func unanimous(parts []Partition) bool {
	for k := 1; k < len(parts); k++ {
		if !parts[0].SameAs(parts[k]) {
			return false
		}
	}

	return true
}

// singletons returns the partition that puts every node in its own module.
func singletons(n int) Partition {
	p := make(Partition, n)
	for i := range p {
		p[i] = i
	}

	return p
}
