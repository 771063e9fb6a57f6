// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Elementwise transforms used by the consensus pipeline and cohort helpers:
//     max-abs normalization, thresholding with diagonal suppression, and
//     non-zero counting.
//   - Every transform returns a fresh *Dense; inputs are never mutated.
//
// Determinism:
//   - Single row-major pass over the flat buffer; no randomness.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opNormalizeMaxAbs = "NormalizeMaxAbs"
	opThreshold       = "Threshold"
	opCountNonZero    = "CountNonZero"
	opApply           = "Apply"
)

// NormalizeMaxAbs divides every entry by max|m[i,j]| so the largest magnitude
// becomes 1. An all-zero matrix has nothing to scale by and yields
// ErrNumericalDegeneracy, as does any non-finite result.
//
// For an agreement matrix of co-assignment fractions the maximum is already 1
// (the diagonal), so this is an identity and never a second division by the
// run count.
//
// Complexity: O(r*c).
func NormalizeMaxAbs(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNormalizeMaxAbs, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opNormalizeMaxAbs, err)
	}

	var maxAbs float64
	for _, v := range d.data {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 || math.IsNaN(maxAbs) || math.IsInf(maxAbs, 0) {
		return nil, matrixErrorf(opNormalizeMaxAbs, ErrNumericalDegeneracy)
	}

	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data))}
	for k, v := range d.data {
		out.data[k] = v / maxAbs
	}

	return out, nil
}

// Threshold keeps entries ≥ tau and zeroes the rest. When zeroDiagonal is
// true the diagonal of the (square) result is cleared as well.
//
// Complexity: O(r*c).
func Threshold(m Matrix, tau float64, zeroDiagonal bool) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opThreshold, err)
	}
	if math.IsNaN(tau) {
		return nil, matrixErrorf(opThreshold, ErrInvalidParameter)
	}
	if zeroDiagonal {
		if err := ValidateSquare(m); err != nil {
			return nil, matrixErrorf(opThreshold, err)
		}
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opThreshold, err)
	}

	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data))}
	for k, v := range d.data {
		if v >= tau {
			out.data[k] = v
		}
	}
	if zeroDiagonal {
		for i := 0; i < out.r; i++ {
			out.data[i*out.c+i] = 0
		}
	}

	return out, nil
}

// CountNonZero returns the number of entries different from zero.
// NaN counts as non-zero, matching numpy's count_nonzero.
func CountNonZero(m Matrix) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opCountNonZero, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opCountNonZero, err)
	}
	var n int
	for _, v := range d.data {
		if v != 0 {
			n++
		}
	}

	return n, nil
}

// Apply returns a fresh matrix with f applied to every entry; f receives the
// row and column so callers can combine several same-shape operands.
// The first error returned by f aborts the pass.
func Apply(m Matrix, f func(i, j int, v float64) (float64, error)) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data))}
	for k, v := range d.data {
		if out.data[k], err = f(k/d.c, k%d.c, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}
