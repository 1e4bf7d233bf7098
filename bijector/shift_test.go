// Package bijector_test contains unit tests for the Shift bijector.
package bijector_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nbc/bijector"
	"github.com/katalvlaran/nbc/linop"
	"github.com/katalvlaran/nbc/ndarray"
)

func TestNewShift_Validation(t *testing.T) {
	t.Parallel()

	_, err := bijector.NewShift(nil)
	assert.True(t, errors.Is(err, bijector.ErrNilInput))

	_, err = bijector.NewShift(ndarray.Scalar(1))
	assert.True(t, errors.Is(err, ndarray.ErrInvalidShape), "a scalar loc has no event axis")

	s, err := bijector.NewShift(ndarray.FromVector([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Dim())
}

func TestShift_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := bijector.NewShift(ndarray.FromVector([]float64{10, -20}))
	require.NoError(t, err)

	x := ndarray.FromVector([]float64{1, 2})
	y, err := s.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, -18}, y.Data())

	back, err := s.Inverse(y)
	require.NoError(t, err)
	assert.True(t, x.Equal(back, tol))
}

func TestShift_LogDetIsZero(t *testing.T) {
	t.Parallel()

	s, err := bijector.NewShift(ndarray.FromVector([]float64{10, -20}))
	require.NoError(t, err)

	// Unbatched: scalar zero.
	ld, err := s.ForwardLogDetJacobian(ndarray.FromVector([]float64{1, 2}))
	require.NoError(t, err)
	v, err := ld.Item()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	// Batched: zeros stretched to the input's batch shape.
	xs, err := ndarray.Zeros(ndarray.Shape{4, 2})
	require.NoError(t, err)
	ld, err = s.ForwardLogDetJacobian(xs)
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{4}.Equal(ld.Shape()))
	for _, got := range ld.Data() {
		assert.Equal(t, 0.0, got)
	}

	inv, err := s.InverseLogDetJacobian(xs)
	require.NoError(t, err)
	assert.True(t, ld.Equal(inv, 0))
}

func TestShift_BatchedLoc(t *testing.T) {
	t.Parallel()

	// Two shifts of ℝ², batch shape (2).
	loc, err := ndarray.New(ndarray.Shape{2, 2}, []float64{1, 1, -1, -1})
	require.NoError(t, err)
	s, err := bijector.NewShift(loc)
	require.NoError(t, err)

	y, err := s.Forward(ndarray.FromVector([]float64{5, 6}))
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{2, 2}.Equal(y.Shape()))
	assert.Equal(t, []float64{6, 7, 4, 5}, y.Data())

	ld, err := s.ForwardLogDetJacobian(ndarray.FromVector([]float64{5, 6}))
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{2}.Equal(ld.Shape()), "loc's own batch participates in the result shape")
}

func TestShift_EventAxisMismatch(t *testing.T) {
	t.Parallel()

	s, err := bijector.NewShift(ndarray.FromVector([]float64{1, 2}))
	require.NoError(t, err)

	_, err = s.Forward(ndarray.FromVector([]float64{1, 2, 3}))
	assert.True(t, errors.Is(err, linop.ErrShapeMismatch))
	_, err = s.Inverse(ndarray.Scalar(1))
	assert.True(t, errors.Is(err, linop.ErrShapeMismatch))
}
