package aggregate_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/aggregate"
	"github.com/katalvlaran/connectome/matrix"
)

func triangle(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows([][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	require.NoError(t, err)
	return m
}

// TestAggregate_WorkedExample: module1=[0], module2=[1,2] ⇒ Sum 3, Values [1,2].
func TestAggregate_WorkedExample(t *testing.T) {
	t.Parallel()
	m := triangle(t)

	sum, err := aggregate.Aggregate(m, []int{0}, []int{1, 2}, aggregate.Sum)
	require.NoError(t, err)
	assert.Equal(t, 3.0, sum.Scalar)

	vals, err := aggregate.Aggregate(m, []int{0}, []int{1, 2}, aggregate.Values)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vals.Values)

	ml, err := aggregate.MeanLengthOf(m, []int{0}, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, ml, "3 / (1 + 2)")
}

// TestAggregate_RowMajorAndOverlap checks ordering and self-module queries.
func TestAggregate_RowMajorAndOverlap(t *testing.T) {
	t.Parallel()
	m := triangle(t)

	vals, err := aggregate.ValueList(m, []int{2, 1}, []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 1, 3}, vals)

	intra, err := aggregate.SumStrength(m, []int{1, 2}, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 6.0, intra)
}

// TestAggregate_AllNodesEqualsTotal: module1 = module2 = all nodes ⇒ matrix total.
func TestAggregate_AllNodesEqualsTotal(t *testing.T) {
	t.Parallel()
	m := triangle(t)
	total, err := matrix.Total(m)
	require.NoError(t, err)

	sum, err := aggregate.SumStrength(m, []int{0, 1, 2}, []int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, total, sum)
}

// TestBlock keeps the row order of module1 and the column order of module2.
func TestBlock(t *testing.T) {
	t.Parallel()
	m := triangle(t)

	b, err := aggregate.Block(m, []int{2, 1}, []int{0, 2})
	require.NoError(t, err)
	require.Equal(t, 2, b.Rows())
	require.Equal(t, 2, b.Cols())
	for i, want := range [][]float64{{2, 0}, {1, 3}} {
		got, err := b.Row(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = aggregate.Block(m, nil, []int{0})
	assert.ErrorIs(t, err, aggregate.ErrInvalidDimensions)
	_, err = aggregate.Block(m, []int{0}, []int{3})
	assert.ErrorIs(t, err, aggregate.ErrIndexOutOfRange)
}

// TestAggregate_EmptyModules covers the documented empty-set behaviour.
func TestAggregate_EmptyModules(t *testing.T) {
	t.Parallel()
	m := triangle(t)

	sum, err := aggregate.SumStrength(m, nil, []int{0})
	require.NoError(t, err)
	assert.Zero(t, sum)

	vals, err := aggregate.ValueList(m, []int{}, []int{0, 1})
	require.NoError(t, err)
	assert.NotNil(t, vals)
	assert.Empty(t, vals)

	_, err = aggregate.MeanLengthOf(m, []int{}, []int{0, 1})
	assert.ErrorIs(t, err, aggregate.ErrInvalidParameter)
	_, err = aggregate.MeanLengthOf(m, []int{0}, nil)
	assert.ErrorIs(t, err, aggregate.ErrInvalidParameter)
}

// TestAggregate_Errors covers bounds, shape and mode validation.
func TestAggregate_Errors(t *testing.T) {
	t.Parallel()
	m := triangle(t)
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	for _, mode := range []aggregate.Mode{aggregate.Sum, aggregate.Values, aggregate.MeanLength} {
		_, err = aggregate.Aggregate(m, []int{0, 3}, []int{1}, mode)
		assert.ErrorIs(t, err, aggregate.ErrIndexOutOfRange, mode.String())
		_, err = aggregate.Aggregate(m, []int{0}, []int{-1}, mode)
		assert.ErrorIs(t, err, aggregate.ErrIndexOutOfRange, mode.String())
		_, err = aggregate.Aggregate(rect, []int{0}, []int{1}, mode)
		assert.ErrorIs(t, err, aggregate.ErrShapeMismatch, mode.String())
	}
	_, err = aggregate.Aggregate(m, []int{0}, []int{1}, aggregate.Mode(42))
	assert.ErrorIs(t, err, aggregate.ErrInvalidParameter)
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	for _, mode := range []aggregate.Mode{aggregate.Sum, aggregate.Values, aggregate.MeanLength} {
		got, err := aggregate.ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	got, err := aggregate.ParseMode(" Mean_Length ")
	require.NoError(t, err)
	assert.Equal(t, aggregate.MeanLength, got)
	_, err = aggregate.ParseMode("median")
	assert.ErrorIs(t, err, aggregate.ErrInvalidParameter)
}

func TestFromOneBased(t *testing.T) {
	t.Parallel()
	idx, err := aggregate.FromOneBased([]int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, idx)
	_, err = aggregate.FromOneBased([]int{2, 0})
	assert.ErrorIs(t, err, aggregate.ErrIndexOutOfRange)
}

// TestAggregate_SumMatchesValues: Sum equals the sum of Values for any
// in-range module pair of an integer-weighted matrix.
func TestAggregate_SumMatchesValues(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	const n = 6
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.NoError(t, m.Set(i, j, float64((i*7+j*3)%5)))
		}
	}
	index := gen.IntRange(0, n-1)

	properties.Property("sum equals sum of values", prop.ForAll(
		func(m1, m2 []int) bool {
			s, err := aggregate.SumStrength(m, m1, m2)
			if err != nil {
				return false
			}
			v, err := aggregate.ValueList(m, m1, m2)
			if err != nil || len(v) != len(m1)*len(m2) {
				return false
			}
			var total float64
			for _, x := range v {
				total += x
			}
			return total == s
		},
		gen.SliceOf(index),
		gen.SliceOf(index),
	))

	properties.Property("out-of-range index always fails", prop.ForAll(
		func(m1 []int, bad int) bool {
			_, err := aggregate.SumStrength(m, append(m1, bad), []int{0})
			return err != nil
		},
		gen.SliceOf(index),
		gen.IntRange(n, 3*n),
	))

	properties.TestingRun(t)
}
