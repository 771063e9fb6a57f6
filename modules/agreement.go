// SPDX-License-Identifier: MIT

package modules

import (
	"fmt"

	"github.com/katalvlaran/connectome/matrix"
)

const opAgreement = "Agreement"

// Agreement returns the N×N matrix whose (i,j) entry is the fraction of
// partitions in which nodes i and j share a label. The result is symmetric,
// lies in [0,1] and has a unit diagonal.
//
// Errors: ErrInvalidParameter for an empty stack, ErrShapeMismatch when the
// partitions differ in length or are empty.
//
// Complexity: O(len(parts) · Σ|module|²) ≤ O(len(parts) · N²).
func Agreement(parts []Partition) (*matrix.Dense, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%s: no partitions: %w", opAgreement, ErrInvalidParameter)
	}
	n := len(parts[0])
	for k, p := range parts {
		if len(p) != n || n == 0 {
			return nil, fmt.Errorf("%s: partition %d has length %d, want %d: %w",
				opAgreement, k, len(p), n, ErrShapeMismatch)
		}
	}

	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAgreement, err)
	}
	// Accumulate raw co-assignment counts, then scale once.
	for _, p := range parts {
		for _, members := range p.Modules() {
			for _, i := range members {
				row := out.RawRowView(i)
				for _, j := range members {
					row[j]++
				}
			}
		}
	}
	runs := float64(len(parts))
	for i := 0; i < n; i++ {
		row := out.RawRowView(i)
		for j := range row {
			row[j] /= runs
		}
	}

	return out, nil
}
