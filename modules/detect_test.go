package modules_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/connectome/matrix"
	"github.com/katalvlaran/connectome/modules"
)

// TestDetect_SingleIteration verifies iterations=1 returns one partition and
// uses it verbatim as the consensus.
func TestDetect_SingleIteration(t *testing.T) {
	t.Parallel()
	conn, _ := planted(t, []int{4, 4}, 1, 0.1)

	res, err := modules.Detect(conn, 1.0, 1, modules.WithSeed(3))
	require.NoError(t, err)
	require.Len(t, res.Partitions, 1)
	require.Len(t, res.Quality, 1)
	assert.Equal(t, res.Partitions[0], res.Consensus.Partition)
	assert.Equal(t, 0, res.Consensus.Rounds)
	assert.Equal(t, 8, res.Consensus.Matrix.Rows())
	assert.Equal(t, 8, res.Consensus.Matrix.Cols())
}

// TestDetect_RecoversPlantedModules checks a well-separated block graph is
// recovered exactly, up to relabeling.
func TestDetect_RecoversPlantedModules(t *testing.T) {
	t.Parallel()
	conn, truth := planted(t, []int{5, 5, 5}, 1, 0.05)

	res, err := modules.Detect(conn, 1.0, 50, modules.WithSeed(11), modules.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.True(t, res.Consensus.Partition.SameAs(truth), "got %v want %v", res.Consensus.Partition, truth)
	assert.Equal(t, 3, res.Consensus.Partition.Count())
	assert.GreaterOrEqual(t, res.Consensus.Rounds, 1)
	for _, q := range res.Quality {
		assert.Greater(t, q, 0.0, "planted modules must give positive modularity")
	}
}

// TestDetect_StableAcrossRepeats runs detection twice with different seeds
// and expects the same node equivalence classes.
func TestDetect_StableAcrossRepeats(t *testing.T) {
	t.Parallel()
	conn, _ := planted(t, []int{6, 4, 5}, 2, 0.1)

	a, err := modules.Detect(conn, 1.0, 100, modules.WithSeed(1))
	require.NoError(t, err)
	b, err := modules.Detect(conn, 1.0, 100, modules.WithSeed(99))
	require.NoError(t, err)
	assert.True(t, a.Consensus.Partition.SameAs(b.Consensus.Partition))
}

// TestDetect_WorkerCountIsDeterministic asserts scheduling does not leak into results.
func TestDetect_WorkerCountIsDeterministic(t *testing.T) {
	t.Parallel()
	conn, _ := planted(t, []int{4, 4, 4}, 1, 0.3)

	serial, err := modules.Detect(conn, 1.0, 20, modules.WithSeed(5), modules.WithWorkers(1))
	require.NoError(t, err)
	parallel, err := modules.Detect(conn, 1.0, 20, modules.WithSeed(5), modules.WithWorkers(8))
	require.NoError(t, err)

	assert.Equal(t, serial.Partitions, parallel.Partitions)
	assert.Equal(t, serial.Quality, parallel.Quality)
	assert.Equal(t, serial.Consensus.Partition, parallel.Consensus.Partition)
}

// TestDetect_IsolatedNodesAreSingletons ensures zero-degree nodes never join a module.
func TestDetect_IsolatedNodesAreSingletons(t *testing.T) {
	t.Parallel()
	conn := fromRows(t, [][]float64{
		{0, 1, 1, 0, 0},
		{1, 0, 1, 0, 0},
		{1, 1, 0, 0, 0},
		{0, 0, 0, 5, 0}, // self-loop only, no neighbours
		{0, 0, 0, 0, 0},
	})

	res, err := modules.Detect(conn, 1.0, 10, modules.WithSeed(2))
	require.NoError(t, err)
	p := res.Consensus.Partition
	assert.Equal(t, p[0], p[1])
	assert.Equal(t, p[1], p[2])
	assert.Len(t, p.Members(p[3]), 1)
	assert.Len(t, p.Members(p[4]), 1)
	assert.NotEqual(t, p[3], p[4])

	v, err := conn.At(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v, "diagonal must be preserved")
}

// TestDetect_DiagonalCountsTowardsQuality checks that self-strength enters
// node strengths and Q exactly as W_ii, while the input is left untouched.
func TestDetect_DiagonalCountsTowardsQuality(t *testing.T) {
	t.Parallel()
	bare, truth := planted(t, []int{3, 3}, 1, 1)
	self := bare.Clone().(*matrix.Dense)
	for i := 0; i < self.Rows(); i++ {
		require.NoError(t, self.Set(i, i, 1))
	}

	tests := []struct {
		name   string
		conn   *matrix.Dense
		atTrue float64 // Q of the two planted blocks
	}{
		{"zero diagonal", bare, 5.0 / 14},
		{"unit diagonal", self, 0.4},
	}
	quality := make([][]float64, len(tests))
	for k, tc := range tests {
		res, err := modules.Detect(tc.conn, 1.0, 5, modules.WithSeed(3))
		require.NoError(t, err, tc.name)
		quality[k] = res.Quality

		found := 0
		for i, p := range res.Partitions {
			assert.InDelta(t, modularity(tc.conn, p, 1), res.Quality[i], 1e-12, "%s run %d", tc.name, i)
			if p.SameAs(truth) {
				assert.InDelta(t, tc.atTrue, res.Quality[i], 1e-12, "%s run %d", tc.name, i)
				found++
			}
		}
		assert.Positive(t, found, tc.name)
	}
	assert.NotEqual(t, quality[0], quality[1])

	v, err := self.At(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "diagonal must be preserved")
}

// TestLouvain_SelfLoopsOnly keeps every node apart but still scores the diagonal.
func TestLouvain_SelfLoopsOnly(t *testing.T) {
	t.Parallel()
	conn := fromRows(t, [][]float64{{2, 0}, {0, 2}})

	p, q, err := modules.Louvain(conn, 1.0, rand.NewPCG(1, 2))
	require.NoError(t, err)
	assert.Equal(t, modules.Partition{0, 1}, p)
	assert.InDelta(t, 0.5, q, 1e-12)
}

// TestDetect_AllZero yields all singletons without error.
func TestDetect_AllZero(t *testing.T) {
	t.Parallel()
	conn, err := matrix.NewDense(4, 4)
	require.NoError(t, err)

	res, err := modules.Detect(conn, 1.0, 5)
	require.NoError(t, err)
	assert.Equal(t, modules.Partition{0, 1, 2, 3}, res.Consensus.Partition)
	for _, q := range res.Quality {
		assert.Equal(t, 0.0, q)
	}
}

// TestDetect_Directed accepts asymmetric input.
func TestDetect_Directed(t *testing.T) {
	t.Parallel()
	conn := fromRows(t, [][]float64{
		{0, 2, 2, 0, 0, 0},
		{2, 0, 2, 0, 0, 0},
		{1, 2, 0, 0.1, 0, 0},
		{0, 0, 0, 0, 2, 2},
		{0, 0, 0, 2, 0, 2},
		{0, 0, 0, 2, 1, 0},
	})

	res, err := modules.Detect(conn, 1.0, 20, modules.WithSeed(4))
	require.NoError(t, err)
	assert.Len(t, res.Consensus.Partition, 6)
	assert.True(t, res.Consensus.Partition.SameAs(modules.Partition{0, 0, 0, 1, 1, 1}))
}

// TestDetect_Errors covers the validation ladder.
func TestDetect_Errors(t *testing.T) {
	t.Parallel()
	ok, _ := planted(t, []int{3, 3}, 1, 0.1)
	nonSquare, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	withNaN := fromRows(t, [][]float64{{0, math.NaN()}, {1, 0}})
	negative := fromRows(t, [][]float64{{0, -1}, {-1, 0}})

	tests := []struct {
		name  string
		conn  matrix.Matrix
		gamma float64
		iters int
		opts  []modules.Option
		want  []error
	}{
		{"nil", nil, 1, 1, nil, []error{matrix.ErrNilMatrix}},
		{"non-square", nonSquare, 1, 1, nil, []error{modules.ErrShapeMismatch}},
		{"nan", withNaN, 1, 1, nil, []error{modules.ErrInvalidParameter, modules.ErrNaNInf}},
		{"negative", negative, 1, 1, nil, []error{modules.ErrInvalidParameter, modules.ErrNegativeWeight}},
		{"gamma zero", ok, 0, 1, nil, []error{modules.ErrInvalidParameter}},
		{"gamma nan", ok, math.NaN(), 1, nil, []error{modules.ErrInvalidParameter}},
		{"iterations zero", ok, 1, 0, nil, []error{modules.ErrInvalidParameter}},
		{"workers zero", ok, 1, 1, []modules.Option{modules.WithWorkers(0)}, []error{modules.ErrInvalidParameter}},
		{"threshold > 1", ok, 1, 1, []modules.Option{modules.WithThreshold(1.5)}, []error{modules.ErrInvalidParameter}},
		{"reps zero", ok, 1, 1, []modules.Option{modules.WithReps(0)}, []error{modules.ErrInvalidParameter}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := modules.Detect(tc.conn, tc.gamma, tc.iters, tc.opts...)
			require.Error(t, err)
			assert.Nil(t, res)
			for _, want := range tc.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

// TestLouvain_Single exercises the one-run entry point.
func TestLouvain_Single(t *testing.T) {
	t.Parallel()
	conn, truth := planted(t, []int{4, 4}, 1, 0.01)

	p, q, err := modules.Louvain(conn, 1.0, nil)
	require.ErrorIs(t, err, modules.ErrInvalidParameter)
	assert.Nil(t, p)
	assert.Zero(t, q)

	p, q, err = modules.Louvain(conn, 1.0, rand.NewPCG(1, 2))
	require.NoError(t, err)
	assert.True(t, p.SameAs(truth))
	assert.Greater(t, q, 0.0)
}
