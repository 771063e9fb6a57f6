// SPDX-License-Identifier: MIT

package aggregate

import (
	"fmt"

	"github.com/katalvlaran/connectome/matrix"
)

// BetweenModules evaluates a scalar mode (Sum or MeanLength) for every
// ordered pair of module index sets and returns the k×k result, where entry
// (a,b) reduces rows modules[a] × columns modules[b]. The diagonal holds the
// intra-module statistic.
//
// modules typically comes from modules.Partition.Modules().
func BetweenModules(connectivity matrix.Matrix, modules [][]int, mode Mode) (*matrix.Dense, error) {
	if mode == Values {
		return nil, fmt.Errorf("BetweenModules: %v is not a scalar mode: %w", mode, ErrInvalidParameter)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("BetweenModules: no modules: %w", ErrInvalidParameter)
	}

	k := len(modules)
	out, err := matrix.NewDense(k, k)
	if err != nil {
		return nil, fmt.Errorf("BetweenModules: %w", err)
	}
	var a, b int
	for a = 0; a < k; a++ {
		for b = 0; b < k; b++ {
			s, err := Aggregate(connectivity, modules[a], modules[b], mode)
			if err != nil {
				return nil, fmt.Errorf("BetweenModules(%d,%d): %w", a, b, err)
			}
			if err = out.Set(a, b, s.Scalar); err != nil {
				return nil, fmt.Errorf("BetweenModules: %w", err)
			}
		}
	}

	return out, nil
}
