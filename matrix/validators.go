// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for input checks used by
//     detection, aggregation and cohort transforms.
//   - Return sentinel errors tagged with the validator name so call sites can
//     wrap uniformly.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.
//   - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//   - Composite checks follow a fixed sequence: NotNil → Square → Finite → NonNegative.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("ValidateSameShape: %dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return fmt.Errorf("ValidateSquare: %dx%d: %w", m.Rows(), m.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf entry, reporting the first offender
// in row-major order.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	return scan(m, "ValidateFinite", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}
		return nil
	})
}

// ValidateNonNegative rejects negative entries (NaN is left to ValidateFinite).
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	return scan(m, "ValidateNonNegative", func(v float64) error {
		if v < 0 {
			return ErrNegativeWeight
		}
		return nil
	})
}

// ValidateIndices checks that every index lies in [0, n).
func ValidateIndices(idx []int, n int) error {
	for k, i := range idx {
		if i < 0 || i >= n {
			return fmt.Errorf("ValidateIndices: position %d: index %d not in [0,%d): %w",
				k, i, n, ErrOutOfRange)
		}
	}

	return nil
}

// IsSymmetric reports whether the square matrix m equals its transpose
// within eps. Non-square or nil matrices are reported as not symmetric.
// Complexity: O(n²/2).
func IsSymmetric(m Matrix, eps float64) bool {
	if ValidateSquare(m) != nil {
		return false
	}
	d, err := asDense(m)
	if err != nil {
		return false
	}
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(d.data[i*n+j]-d.data[j*n+i]) > eps {
				return false
			}
		}
	}

	return true
}

// scan applies check to every element in row-major order and tags the first
// failure with its coordinates.
func scan(m Matrix, tag string, check func(float64) error) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	d, err := asDense(m)
	if err != nil {
		return validatorErrorf(tag, err)
	}
	for k, v := range d.data {
		if err = check(v); err != nil {
			return fmt.Errorf("%s: (%d,%d)=%g: %w", tag, k/d.c, k%d.c, v, err)
		}
	}

	return nil
}
