// Package cohort holds population-level helpers for a set of subject
// connectomes: the mean edge count of a cohort, per-edge control
// distributions and the tanh z-transform of a subject against them.
//
// All inputs are validated up front and never mutated.
package cohort

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/connectome/matrix"
)

// Sentinels shared with the matrix package.
var (
	ErrShapeMismatch       = matrix.ErrShapeMismatch
	ErrInvalidParameter    = matrix.ErrInvalidParameter
	ErrNaNInf              = matrix.ErrNaNInf
	ErrNumericalDegeneracy = matrix.ErrNumericalDegeneracy
)

// MeanEdgeCount returns the mean number of undirected edges per subject:
// non-zero entries divided by two, averaged over the cohort.
func MeanEdgeCount(subjects []matrix.Matrix) (float64, error) {
	if len(subjects) == 0 {
		return 0, fmt.Errorf("MeanEdgeCount: no subjects: %w", ErrInvalidParameter)
	}
	counts := make([]float64, len(subjects))
	for s, m := range subjects {
		nz, err := matrix.CountNonZero(m)
		if err != nil {
			return 0, fmt.Errorf("MeanEdgeCount: subject %d: %w", s, err)
		}
		counts[s] = float64(nz) / 2
	}

	return stat.Mean(counts, nil), nil
}

// ControlDistribution returns the elementwise mean and sample standard
// deviation across control subjects. At least two controls of identical
// shape are required.
func ControlDistribution(controls []matrix.Matrix) (mean, std *matrix.Dense, err error) {
	if len(controls) < 2 {
		return nil, nil, fmt.Errorf("ControlDistribution: %d controls, need ≥ 2: %w",
			len(controls), ErrInvalidParameter)
	}
	for s, m := range controls {
		if err = matrix.ValidateNotNil(m); err != nil {
			return nil, nil, fmt.Errorf("ControlDistribution: subject %d: %w", s, err)
		}
		if err = matrix.ValidateSameShape(controls[0], m); err != nil {
			return nil, nil, fmt.Errorf("ControlDistribution: subject %d: %w", s, err)
		}
		if err = matrix.ValidateFinite(m); err != nil {
			return nil, nil, fmt.Errorf("ControlDistribution: subject %d: %w", s, err)
		}
	}

	r, c := controls[0].Rows(), controls[0].Cols()
	if mean, err = matrix.NewDense(r, c); err != nil {
		return nil, nil, fmt.Errorf("ControlDistribution: %w", err)
	}
	if std, err = matrix.NewDense(r, c); err != nil {
		return nil, nil, fmt.Errorf("ControlDistribution: %w", err)
	}

	sample := make([]float64, len(controls))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			for s, m := range controls {
				sample[s], _ = m.At(i, j)
			}
			mu, sd := stat.MeanStdDev(sample, nil)
			_ = mean.Set(i, j, mu)
			_ = std.Set(i, j, sd)
		}
	}

	return mean, std, nil
}

// TanhTransform returns tanh((mean − x) / std) elementwise for a subject x
// against a control mean and standard deviation. Where std is 0 and x equals
// the mean the result is 0; std 0 with any deviation is
// ErrNumericalDegeneracy.
func TanhTransform(subject, controlMean, controlStd matrix.Matrix) (*matrix.Dense, error) {
	for _, m := range []matrix.Matrix{subject, controlMean, controlStd} {
		if err := matrix.ValidateNotNil(m); err != nil {
			return nil, fmt.Errorf("TanhTransform: %w", err)
		}
	}
	if err := matrix.ValidateSameShape(subject, controlMean); err != nil {
		return nil, fmt.Errorf("TanhTransform: mean: %w", err)
	}
	if err := matrix.ValidateSameShape(subject, controlStd); err != nil {
		return nil, fmt.Errorf("TanhTransform: std: %w", err)
	}
	for _, m := range []matrix.Matrix{subject, controlMean, controlStd} {
		if err := matrix.ValidateFinite(m); err != nil {
			return nil, fmt.Errorf("TanhTransform: %w", err)
		}
	}

	out, err := matrix.Apply(subject, func(i, j int, x float64) (float64, error) {
		mu, _ := controlMean.At(i, j)
		sd, _ := controlStd.At(i, j)
		dev := mu - x
		switch {
		case sd < 0:
			return 0, fmt.Errorf("(%d,%d): std=%g: %w", i, j, sd, ErrInvalidParameter)
		case sd == 0 && dev == 0:
			return 0, nil
		case sd == 0:
			return 0, fmt.Errorf("(%d,%d): zero std, deviation %g: %w", i, j, dev, ErrNumericalDegeneracy)
		}
		z := math.Tanh(dev / sd)
		if math.IsNaN(z) {
			return 0, fmt.Errorf("(%d,%d): %w", i, j, ErrNumericalDegeneracy)
		}
		return z, nil
	})
	if err != nil {
		return nil, fmt.Errorf("TanhTransform: %w", err)
	}

	return out, nil
}
