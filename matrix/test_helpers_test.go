// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for validators and kernels.
//   • Force the interface fallback paths alongside the *Dense fast paths.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions, so
// kernels take their interface fallback instead of the *Dense fast path.
type hide struct{ matrix.Matrix }

// MustRows builds a *Dense from literal rows or fails the test.
func MustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// CompareExact asserts that m equals want element by element.
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			got, err := m.At(i, j)
			require.NoError(t, err)
			require.Equalf(t, want[i][j], got, "at (%d,%d)", i, j)
		}
	}
}
