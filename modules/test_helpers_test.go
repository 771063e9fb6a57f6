package modules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/matrix"
	"github.com/katalvlaran/connectome/modules"
)

// planted builds a symmetric block matrix: weight in inside each block,
// weight out between consecutive blocks' first nodes, zero diagonal.
// It returns the matrix and the ground-truth partition.
func planted(t *testing.T, sizes []int, in, out float64) (*matrix.Dense, modules.Partition) {
	t.Helper()
	n := 0
	for _, s := range sizes {
		n += s
	}
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)

	truth := make(modules.Partition, 0, n)
	firsts := make([]int, 0, len(sizes))
	start := 0
	for b, s := range sizes {
		firsts = append(firsts, start)
		for i := start; i < start+s; i++ {
			truth = append(truth, b)
			for j := start; j < start+s; j++ {
				if i != j {
					require.NoError(t, m.Set(i, j, in))
				}
			}
		}
		start += s
	}
	for k := 1; k < len(firsts); k++ {
		a, b := firsts[k-1], firsts[k]
		require.NoError(t, m.Set(a, b, out))
		require.NoError(t, m.Set(b, a, out))
	}

	return m, truth
}

// fromRows is a require-wrapped matrix.NewFromRows.
func fromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

// modularity is the weighted undirected Newman Q of p at resolution gamma,
// with strengths and total weight taken over the full matrix, diagonal
// included.
func modularity(m *matrix.Dense, p modules.Partition, gamma float64) float64 {
	n := m.Rows()
	k := make([]float64, n)
	var s float64
	for i := 0; i < n; i++ {
		for _, w := range m.RawRowView(i) {
			k[i] += w
		}
		s += k[i]
	}

	var q float64
	for i := 0; i < n; i++ {
		row := m.RawRowView(i)
		for j := 0; j < n; j++ {
			if p[i] == p[j] {
				q += row[j] - gamma*k[i]*k[j]/s
			}
		}
	}

	return q / s
}
