// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense APSP (Floyd–Warshall) with deterministic loop order, used to turn a
//     binary adjacency matrix into hop-count distances for characteristic
//     path length.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.

package matrix

import (
	"fmt"
	"math"
)

const (
	opFloydWarshall   = "FloydWarshall"
	opBinaryDistances = "BinaryDistances"
)

// BinaryDistances returns the shortest hop-count between every node pair of
// the graph whose edges are the non-zero off-diagonal entries of adj.
// Unreachable pairs are +Inf; the diagonal is 0. adj is not modified.
//
// Complexity: O(n³) time, O(n²) memory.
func BinaryDistances(adj Matrix) (*Dense, error) {
	if err := ValidateSquare(adj); err != nil {
		return nil, matrixErrorf(opBinaryDistances, err)
	}
	src, err := asDense(adj)
	if err != nil {
		return nil, matrixErrorf(opBinaryDistances, err)
	}

	n := src.r
	dist := &Dense{r: n, c: n, data: make([]float64, n*n)}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case i == j:
				dist.data[i*n+j] = 0
			case src.data[i*n+j] != 0:
				dist.data[i*n+j] = 1
			default:
				dist.data[i*n+j] = math.Inf(1)
			}
		}
	}
	floydWarshallInPlace(dist)

	return dist, nil
}

// floydWarshallInPlace runs APSP closure on a square *Dense in-place.
//
// Loop order is fixed (k → i → j) for deterministic accumulation.
// Time: O(n^3); Extra space: O(1).
func floydWarshallInPlace(d *Dense) {
	n := d.r
	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	data := d.data

	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) { // i cannot reach k
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] { // strict improvement only
					data[baseI+j] = cand
				}
			}
		}
	}
}

// FloydWarshall computes all-pairs shortest paths in-place on m.
//
// Contract:
//   - m must be square (n×n).
//   - +Inf denotes "no edge" off-diagonal; the diagonal MUST be 0.
//
// Complexity: Time O(n^3), Extra space O(1) for *Dense.
func FloydWarshall(m Matrix) error {
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opFloydWarshall, err)
	}
	if d, ok := m.(*Dense); ok {
		floydWarshallInPlace(d)
		return nil
	}

	// Interface fallback: stage through a Dense copy and write back.
	d, err := asDense(m)
	if err != nil {
		return matrixErrorf(opFloydWarshall, err)
	}
	floydWarshallInPlace(d)
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if err = m.Set(i, j, d.data[i*n+j]); err != nil {
				return fmt.Errorf("%s: write-back: %w", opFloydWarshall, err)
			}
		}
	}

	return nil
}
