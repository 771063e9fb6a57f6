// SPDX-License-Identifier: MIT

package modules

import (
	"errors"

	"github.com/katalvlaran/connectome/matrix"
)

// Error kinds surfaced by Detect and its helpers. The shared kinds alias the
// matrix sentinels so errors.Is works across packages.
var (
	// ErrShapeMismatch: non-square connectivity, or partitions of unequal length.
	ErrShapeMismatch = matrix.ErrShapeMismatch

	// ErrInvalidParameter: iterations < 1, gamma <= 0, bad threshold/reps/workers,
	// or input entries the detector cannot accept (NaN/Inf, negative weights).
	ErrInvalidParameter = matrix.ErrInvalidParameter

	// ErrNaNInf: a NaN or ±Inf entry in the connectivity matrix.
	ErrNaNInf = matrix.ErrNaNInf

	// ErrNegativeWeight: Louvain modularity here requires non-negative weights.
	ErrNegativeWeight = matrix.ErrNegativeWeight

	// ErrIndexOutOfRange: a label lookup outside the partition.
	ErrIndexOutOfRange = matrix.ErrIndexOutOfRange

	// ErrNumericalDegeneracy: agreement normalization produced nothing usable.
	ErrNumericalDegeneracy = matrix.ErrNumericalDegeneracy
)

// ErrNoConsensus is returned when consensus re-clustering does not settle on
// a single partition within the configured round budget.
var ErrNoConsensus = errors.New("modules: consensus did not converge")
