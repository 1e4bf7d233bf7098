// Package linop_test contains unit tests for the Diagonal operator.
package linop_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nbc/linop"
	"github.com/katalvlaran/nbc/ndarray"
)

const roundTripTol = 1e-5

func TestDiagonal_Construction(t *testing.T) {
	t.Parallel()

	op, err := linop.NewDiagonal(ndarray.FromVector([]float64{1.5, -0.5}))
	require.NoError(t, err)
	assert.Equal(t, 2, op.Dim())
	assert.Equal(t, 0, op.BatchShape().Rank())
	assert.True(t, ndarray.Shape{2, 2}.Equal(op.Shape()))

	_, err = linop.NewDiagonal(nil)
	assert.True(t, errors.Is(err, linop.ErrNilOperand))
	_, err = linop.NewDiagonal(ndarray.Scalar(3))
	assert.True(t, errors.Is(err, linop.ErrInvalidShape), "rank-0 parameter has no diagonal axis")
}

func TestDiagonal_ToDense(t *testing.T) {
	t.Parallel()

	op, err := linop.NewDiagonal(ndarray.FromVector([]float64{1.5, -0.5}))
	require.NoError(t, err)

	want, err := ndarray.FromMatrix([][]float64{{1.5, 0}, {0, -0.5}})
	require.NoError(t, err)
	assert.True(t, want.Equal(op.ToDense(), 0))
}

func TestDiagonal_MatVecAndRoundTrip(t *testing.T) {
	t.Parallel()

	op, err := linop.NewDiagonal(ndarray.FromVector([]float64{1.5, -0.5}))
	require.NoError(t, err)

	x := ndarray.FromVector([]float64{1, 1})
	y, err := op.MatVec(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -0.5}, y.Data())

	// inverse(forward(x)) == x within floating tolerance.
	back, err := op.Solve(y)
	require.NoError(t, err)
	assert.True(t, x.Equal(back, roundTripTol))
}

func TestDiagonal_LogAbsDet(t *testing.T) {
	t.Parallel()

	op, err := linop.NewDiagonal(ndarray.FromVector([]float64{1.5, -0.5}))
	require.NoError(t, err)

	ld, err := op.LogAbsDet()
	require.NoError(t, err)
	assert.Equal(t, 0, ld.Rank(), "unbatched operator yields a scalar log-det")
	v, err := ld.Item()
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1.5)+math.Log(0.5), v, roundTripTol)
}

func TestDiagonal_BatchBroadcasting(t *testing.T) {
	t.Parallel()

	const s, n = 10, 2
	// Operator batch shape (2): two diagonal 2×2 matrices.
	diag, err := ndarray.New(ndarray.Shape{2, n}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	op, err := linop.NewDiagonal(diag)
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{2}.Equal(op.BatchShape()))

	// (n,) input → (2, n) output.
	y, err := op.MatVec(ndarray.FromVector([]float64{1, 1}))
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{2, n}.Equal(y.Shape()))
	assert.Equal(t, []float64{1, 2, 3, 4}, y.Data())

	// (s, 1, n) input → (s, 2, n) output, literal shapes for s=10, n=2.
	xs, err := ndarray.Zeros(ndarray.Shape{s, 1, n})
	require.NoError(t, err)
	y, err = op.MatVec(xs)
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{s, 2, n}.Equal(y.Shape()))
}

func TestDiagonal_SingularSolve(t *testing.T) {
	t.Parallel()

	op, err := linop.NewDiagonal(ndarray.FromVector([]float64{1.0, 0.0}))
	require.NoError(t, err)

	_, err = op.Solve(ndarray.FromVector([]float64{1, 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, linop.ErrSingular))

	_, err = op.LogAbsDet()
	assert.True(t, errors.Is(err, linop.ErrSingular), "log-det must fail loudly, not return -Inf")
}

func TestDiagonal_EpsilonPolicy(t *testing.T) {
	t.Parallel()

	tiny := ndarray.FromVector([]float64{1e-12})
	// Under the default tolerance 1e-9 this entry counts as zero.
	op, err := linop.NewDiagonal(tiny)
	require.NoError(t, err)
	_, err = op.Solve(ndarray.FromVector([]float64{1}))
	assert.True(t, errors.Is(err, linop.ErrSingular))

	// An explicit zero tolerance admits it.
	op, err = linop.NewDiagonal(tiny, linop.WithEpsilon(0))
	require.NoError(t, err)
	_, err = op.Solve(ndarray.FromVector([]float64{1}))
	assert.NoError(t, err)

	assert.Panics(t, func() { linop.WithEpsilon(-1) }, "negative tolerance is a programmer error")
	assert.Panics(t, func() { linop.WithEpsilon(math.NaN()) })
}

func TestDiagonal_ZeroSizedBatch(t *testing.T) {
	t.Parallel()

	diag, err := ndarray.Zeros(ndarray.Shape{0, 3})
	require.NoError(t, err)
	op, err := linop.NewDiagonal(diag)
	require.NoError(t, err)

	y, err := op.MatVec(ndarray.FromVector([]float64{1, 2, 3}))
	require.NoError(t, err, "a zero-sized batch is valid and must propagate")
	assert.True(t, ndarray.Shape{0, 3}.Equal(y.Shape()))
	assert.Equal(t, 0, y.Size())

	x, err := op.Solve(ndarray.FromVector([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 0, x.Size())

	ld, err := op.LogAbsDet()
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{0}.Equal(ld.Shape()))
}
