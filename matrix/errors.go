// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set shared by every analysis package.
// This file defines ONLY package-level sentinel errors. The modules,
// aggregate, baseline and cohort packages re-export these sentinels under
// their own names, so errors.Is matches regardless of which package a caller
// imports.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping across logs.
// Call sites wrap with matrixErrorf(op, ErrX); callers use errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> NaN/Inf -> sign -> parameters -> index -> numeric degeneracy.

var (
	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrDimensionMismatch signals a shape problem: a non-square connectivity
	// matrix, operands of different shape, or a partition whose length differs
	// from the node count.
	ErrDimensionMismatch = errors.New("matrix: shape mismatch")

	// ErrOutOfRange indicates that an index (row, column or node) is outside [0, N).
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegativeWeight signals a negative connection strength where the
	// consuming algorithm requires non-negative weights.
	ErrNegativeWeight = errors.New("matrix: negative weight")

	// ErrInvalidParameter covers scalar parameter violations (iterations < 1,
	// gamma <= 0, empty module for a normalized statistic, ...).
	ErrInvalidParameter = errors.New("matrix: invalid parameter")

	// ErrNumericalDegeneracy signals that a computation produced NaN/Inf or
	// had nothing to normalize by (e.g., an all-zero agreement matrix).
	ErrNumericalDegeneracy = errors.New("matrix: numerical degeneracy")
)

// Domain aliases. They name the same sentinels in the vocabulary of the
// connectome packages; errors.Is(err, ErrShapeMismatch) and
// errors.Is(err, ErrDimensionMismatch) are interchangeable.
var (
	ErrShapeMismatch   = ErrDimensionMismatch
	ErrIndexOutOfRange = ErrOutOfRange
)

// matrixErrorf wraps err with an operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
