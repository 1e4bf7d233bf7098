// Package linop_test contains unit tests for the FullMatrix operator.
package linop_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nbc/linop"
	"github.com/katalvlaran/nbc/ndarray"
)

func fullOp(t *testing.T, rows [][]float64, opts ...linop.Option) *linop.FullMatrix {
	t.Helper()
	m, err := ndarray.FromMatrix(rows)
	require.NoError(t, err)
	op, err := linop.NewFullMatrix(m, opts...)
	require.NoError(t, err)

	return op
}

func TestFullMatrix_MatVecAgainstExplicitProduct(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{0.5, 1.5}, {1.5, 0.5}}
	op := fullOp(t, rows)

	// Fixed seed: the test is deterministic run to run.
	rng := rand.New(rand.NewSource(12345))
	var trial, i, j int
	var acc float64
	for trial = 0; trial < 5; trial++ {
		xv := []float64{rng.NormFloat64(), rng.NormFloat64()}
		y, err := op.MatVec(ndarray.FromVector(xv))
		require.NoError(t, err)

		got := y.Data()
		for i = 0; i < 2; i++ {
			acc = 0
			for j = 0; j < 2; j++ {
				acc += rows[i][j] * xv[j]
			}
			if math.Abs(got[i]-acc) > roundTripTol {
				t.Fatalf("trial %d row %d: MatVec gave %v, explicit product gives %v", trial, i, got[i], acc)
			}
		}
	}
}

func TestFullMatrix_SolveRoundTrip(t *testing.T) {
	t.Parallel()

	op := fullOp(t, [][]float64{{0.5, 1.5}, {1.5, 0.5}})
	x := ndarray.FromVector([]float64{0.3, -1.7})

	y, err := op.MatVec(x)
	require.NoError(t, err)
	back, err := op.Solve(y)
	require.NoError(t, err)
	assert.True(t, x.Equal(back, roundTripTol))
}

func TestFullMatrix_PivotingHandlesZeroLeadingEntry(t *testing.T) {
	t.Parallel()

	// A permutation matrix: elimination without row exchanges would die on
	// the zero in position (0,0); partial pivoting must sail through.
	op := fullOp(t, [][]float64{{0, 1}, {1, 0}})

	x, err := op.Solve(ndarray.FromVector([]float64{3, 4}))
	require.NoError(t, err)
	assert.True(t, ndarray.FromVector([]float64{4, 3}).Equal(x, roundTripTol))

	ld, err := op.LogAbsDet()
	require.NoError(t, err)
	v, err := ld.Item()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v, roundTripTol, "|det| of a permutation is 1")
}

func TestFullMatrix_LogAbsDet(t *testing.T) {
	t.Parallel()

	op := fullOp(t, [][]float64{{0.5, 1.5}, {1.5, 0.5}})
	ld, err := op.LogAbsDet()
	require.NoError(t, err)
	v, err := ld.Item()
	require.NoError(t, err)
	// det = 0.25 - 2.25 = -2; log|det| = log 2.
	assert.InDelta(t, math.Log(2), v, roundTripTol)
}

func TestFullMatrix_SingularFailures(t *testing.T) {
	t.Parallel()

	// Two identical rows: rank deficient.
	op := fullOp(t, [][]float64{{1, 2}, {1, 2}})

	_, err := op.LogAbsDet()
	require.Error(t, err)
	assert.True(t, errors.Is(err, linop.ErrSingular))

	_, err = op.Solve(ndarray.FromVector([]float64{1, 1}))
	assert.True(t, errors.Is(err, linop.ErrSingular))
}

func TestFullMatrix_ShapeMismatchAndBroadcastErrors(t *testing.T) {
	t.Parallel()

	op := fullOp(t, [][]float64{{1, 0}, {0, 1}})

	// Trailing axis must equal n.
	_, err := op.MatVec(ndarray.FromVector([]float64{1, 2, 3}))
	assert.True(t, errors.Is(err, linop.ErrShapeMismatch))
	_, err = op.Solve(ndarray.Scalar(1))
	assert.True(t, errors.Is(err, linop.ErrShapeMismatch), "a scalar has no event axis")
	_, err = op.MatVec(nil)
	assert.True(t, errors.Is(err, linop.ErrNilOperand))

	// Irreconcilable leading axes surface the broadcaster's sentinel.
	batched, err := ndarray.New(ndarray.Shape{3, 2, 2}, make([]float64, 12))
	require.NoError(t, err)
	bop, err := linop.NewFullMatrix(batched)
	require.NoError(t, err)
	xs, err := ndarray.Zeros(ndarray.Shape{4, 2})
	require.NoError(t, err)
	_, err = bop.MatVec(xs)
	assert.True(t, errors.Is(err, ndarray.ErrIncompatibleShapes))
}

func TestFullMatrix_BatchBroadcastingShapes(t *testing.T) {
	t.Parallel()

	const s, n = 10, 2
	data := []float64{
		1, 0, 0, 1, // I
		0, 1, 1, 0, // swap
	}
	m, err := ndarray.New(ndarray.Shape{2, n, n}, data)
	require.NoError(t, err)
	op, err := linop.NewFullMatrix(m)
	require.NoError(t, err)

	// (n,) → (2, n)
	y, err := op.MatVec(ndarray.FromVector([]float64{5, 6}))
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{2, n}.Equal(y.Shape()))
	assert.Equal(t, []float64{5, 6, 6, 5}, y.Data())

	// (s, 1, n) → (s, 2, n)
	xs, err := ndarray.Zeros(ndarray.Shape{s, 1, n})
	require.NoError(t, err)
	y, err = op.MatVec(xs)
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{s, 2, n}.Equal(y.Shape()))

	// Solve shares the identical broadcasting contract.
	x, err := op.Solve(ndarray.FromVector([]float64{5, 6}))
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{2, n}.Equal(x.Shape()))
	assert.Equal(t, []float64{5, 6, 6, 5}, x.Data())
}

func TestFullMatrix_ToDenseRoundTrip(t *testing.T) {
	t.Parallel()

	src, err := ndarray.FromMatrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	op, err := linop.NewFullMatrix(src)
	require.NoError(t, err)
	assert.True(t, src.Equal(op.ToDense(), 0))
}
