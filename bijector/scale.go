// SPDX-License-Identifier: MIT
// Package bijector — Scale: a linear transform backed by a linop.Operator.
//
// Purpose:
//   - Provide thin, well-documented entry points over the operator kernels.
//   - Avoid any logic duplication — Forward/Inverse delegate to the canonical
//     MatVec/Solve implementations and inherit their broadcasting and error
//     contracts verbatim.

package bijector

import (
	"fmt"

	"github.com/katalvlaran/nbc/linop"
	"github.com/katalvlaran/nbc/ndarray"
)

// Scale transforms event vectors by one batched square linear operator:
// y = A·x. Its domain and codomain dimensionality both equal the operator's
// matrix size n.
type Scale struct {
	op linop.Operator // shared, read-only after construction
}

// NewScale wraps an operator as a bijector.
// Errors: ErrNilOperator.
func NewScale(op linop.Operator) (*Scale, error) {
	if op == nil {
		return nil, linopErrorfTag("NewScale", ErrNilOperator)
	}

	return &Scale{op: op}, nil
}

// ScaleDiag builds a Scale over a Diagonal operator in one call.
// Errors: propagated from linop.NewDiagonal.
func ScaleDiag(diag *ndarray.NDArray, opts ...linop.Option) (*Scale, error) {
	op, err := linop.NewDiagonal(diag, opts...)
	if err != nil {
		return nil, linopErrorfTag("ScaleDiag", err)
	}

	return &Scale{op: op}, nil
}

// ScaleTriL builds a Scale over a LowerTriangular operator in one call.
// Errors: propagated from linop.NewLowerTriangular.
func ScaleTriL(m *ndarray.NDArray, opts ...linop.Option) (*Scale, error) {
	op, err := linop.NewLowerTriangular(m, opts...)
	if err != nil {
		return nil, linopErrorfTag("ScaleTriL", err)
	}

	return &Scale{op: op}, nil
}

// ScaleMatrix builds a Scale over a FullMatrix operator in one call.
// Errors: propagated from linop.NewFullMatrix.
func ScaleMatrix(m *ndarray.NDArray, opts ...linop.Option) (*Scale, error) {
	op, err := linop.NewFullMatrix(m, opts...)
	if err != nil {
		return nil, linopErrorfTag("ScaleMatrix", err)
	}

	return &Scale{op: op}, nil
}

// linopErrorfTag wraps err with an operation tag, preserving errors.Is.
func linopErrorfTag(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Operator returns the backing operator.
func (s *Scale) Operator() linop.Operator { return s.op }

// Forward computes y = A·x with the operator's broadcasting/error contract.
func (s *Scale) Forward(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	return s.op.MatVec(x)
}

// Inverse computes x = A⁻¹·y with the operator's broadcasting/error contract.
// Errors include linop.ErrSingular for a numerically non-invertible operator.
func (s *Scale) Inverse(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	return s.op.Solve(y)
}

// ForwardLogDetJacobian returns log|det A| broadcast against x's leading
// (non-event) axes. A linear map's Jacobian is constant in x, so the values
// do not depend on x's content — only the batch shape does, which keeps the
// result composable with non-linear bijectors' pointwise terms.
// Errors: ErrNilInput, linop.ErrShapeMismatch (trailing axis ≠ n),
// ndarray.ErrIncompatibleShapes, linop.ErrSingular.
func (s *Scale) ForwardLogDetJacobian(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	batch, err := s.batchWith(x)
	if err != nil {
		return nil, linopErrorfTag("ForwardLogDetJacobian", err)
	}
	ld, err := s.op.LogAbsDet()
	if err != nil {
		return nil, linopErrorfTag("ForwardLogDetJacobian", err)
	}
	out, err := ndarray.BroadcastTo(ld, batch)
	if err != nil {
		return nil, linopErrorfTag("ForwardLogDetJacobian", err)
	}

	return out, nil
}

// InverseLogDetJacobian returns -log|det A| broadcast against y's leading
// axes: the inverse map's determinant is the reciprocal.
// Errors: same contract as ForwardLogDetJacobian.
func (s *Scale) InverseLogDetJacobian(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	fwd, err := s.ForwardLogDetJacobian(y)
	if err != nil {
		return nil, err
	}

	return negate(fwd), nil
}

// batchWith validates x as a batch of length-n events and reconciles the
// operator's batch shape with x's leading axes.
func (s *Scale) batchWith(x *ndarray.NDArray) (ndarray.Shape, error) {
	lead, err := leadingAxes(x, s.op.Dim())
	if err != nil {
		return nil, err
	}

	return ndarray.BroadcastShapes(s.op.BatchShape(), lead)
}

// leadingAxes validates the event axis and strips it off.
// Errors: ErrNilInput, linop.ErrShapeMismatch.
func leadingAxes(x *ndarray.NDArray, n int) (ndarray.Shape, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	shape := x.Shape()
	if len(shape) < 1 {
		return nil, fmt.Errorf("input is a scalar, need a trailing event axis of size %d: %w",
			n, linop.ErrShapeMismatch)
	}
	if got := shape[len(shape)-1]; got != n {
		return nil, fmt.Errorf("trailing axis is %d, event size is %d: %w", got, n, linop.ErrShapeMismatch)
	}

	return shape[:len(shape)-1], nil
}

var _ Bijector = (*Scale)(nil)
