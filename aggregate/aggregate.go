// SPDX-License-Identifier: MIT
// Package aggregate reduces the connectivity between two node sets ("modules")
// to a single statistic or a flat list of values.
//
// Module index sets are 0-based node indices into the connectivity matrix.
// The rows of the selected block come from module1 and the columns from
// module2; the sets may overlap, and module1 == module2 measures intra-module
// strength.
package aggregate

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/connectome/matrix"
)

// Error kinds, shared with the matrix package.
var (
	ErrShapeMismatch     = matrix.ErrShapeMismatch
	ErrIndexOutOfRange   = matrix.ErrIndexOutOfRange
	ErrInvalidParameter  = matrix.ErrInvalidParameter
	ErrInvalidDimensions = matrix.ErrInvalidDimensions
)

// Mode selects the reduction applied to the module1×module2 block.
type Mode int

const (
	// Sum is the total connection strength between the two sets.
	Sum Mode = iota
	// Values is the block flattened row-major, for distributional analysis.
	Values
	// MeanLength is sum / (len(module1) + len(module2)).
	MeanLength
)

// String returns the CLI spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Sum:
		return "sum"
	case Values:
		return "values"
	case MeanLength:
		return "mean-length"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String (case-insensitive; "mean_length"
// is accepted too).
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "sum":
		return Sum, nil
	case "values":
		return Values, nil
	case "mean-length":
		return MeanLength, nil
	}

	return 0, fmt.Errorf("aggregate: unknown mode %q: %w", s, ErrInvalidParameter)
}

// Statistic is the outcome of Aggregate. Scalar is set for Sum and
// MeanLength, Values for the Values mode.
type Statistic struct {
	Mode   Mode
	Scalar float64
	Values []float64
}

// Aggregate selects rows module1 × columns module2 of connectivity and
// reduces them according to mode.
//
// Edge cases: an empty module gives Sum 0 and an empty Values slice;
// MeanLength with an empty module fails with ErrInvalidParameter.
// Errors: ErrShapeMismatch (non-square), ErrIndexOutOfRange, ErrInvalidParameter.
func Aggregate(connectivity matrix.Matrix, module1, module2 []int, mode Mode) (Statistic, error) {
	switch mode {
	case Sum, Values, MeanLength:
	default:
		return Statistic{}, fmt.Errorf("Aggregate: %v: %w", mode, ErrInvalidParameter)
	}
	sel, err := selectBlock(connectivity, module1, module2)
	if err != nil {
		return Statistic{}, fmt.Errorf("Aggregate(%v): %w", mode, err)
	}

	out := Statistic{Mode: mode}
	switch mode {
	case Sum:
		out.Scalar = floats.Sum(sel.Values)
	case Values:
		out.Values = sel.Values
	case MeanLength:
		// NOTE: literal reference normalization; it divides by the number of
		// nodes in both sets, not by the number of node pairs.
		if len(module1) == 0 || len(module2) == 0 {
			return Statistic{}, fmt.Errorf("Aggregate(%v): empty module: %w", mode, ErrInvalidParameter)
		}
		out.Scalar = floats.Sum(sel.Values) / float64(len(module1)+len(module2))
	}

	return out, nil
}

// SumStrength is Aggregate(..., Sum).Scalar.
func SumStrength(connectivity matrix.Matrix, module1, module2 []int) (float64, error) {
	s, err := Aggregate(connectivity, module1, module2, Sum)
	return s.Scalar, err
}

// ValueList is Aggregate(..., Values).Values; never nil on success.
func ValueList(connectivity matrix.Matrix, module1, module2 []int) ([]float64, error) {
	s, err := Aggregate(connectivity, module1, module2, Values)
	return s.Values, err
}

// MeanLengthOf is Aggregate(..., MeanLength).Scalar.
func MeanLengthOf(connectivity matrix.Matrix, module1, module2 []int) (float64, error) {
	s, err := Aggregate(connectivity, module1, module2, MeanLength)
	return s.Scalar, err
}

// Block returns the module1×module2 sub-matrix of connectivity.
// Errors: ErrShapeMismatch, ErrIndexOutOfRange, and ErrInvalidDimensions for
// an empty module.
func Block(connectivity matrix.Matrix, module1, module2 []int) (*matrix.Dense, error) {
	sel, err := selectBlock(connectivity, module1, module2)
	if err != nil {
		return nil, fmt.Errorf("Block: %w", err)
	}
	d, err := sel.Dense()
	if err != nil {
		return nil, fmt.Errorf("Block: %w", err)
	}

	return d, nil
}

func selectBlock(connectivity matrix.Matrix, module1, module2 []int) (matrix.Selection, error) {
	if err := matrix.ValidateSquare(connectivity); err != nil {
		return matrix.Selection{}, err
	}

	return matrix.Select(connectivity, module1, module2)
}

// FromOneBased converts 1-based region numbers into 0-based module indices.
// Any value < 1 is ErrIndexOutOfRange; the upper bound is checked later
// against the matrix.
func FromOneBased(idx []int) ([]int, error) {
	out := make([]int, len(idx))
	for k, v := range idx {
		if v < 1 {
			return nil, fmt.Errorf("FromOneBased: position %d: %d < 1: %w", k, v, ErrIndexOutOfRange)
		}
		out[k] = v - 1
	}

	return out, nil
}
