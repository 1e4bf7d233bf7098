// SPDX-License-Identifier: MIT
// Package bijector — Shift: a pure translation.
//
// A shift's Jacobian is the identity, so its log-det term is identically
// zero; it exists mostly as the trivial stage of composite transforms
// (loc + scale·x) and as the base case of the additive log-det invariant.

package bijector

import (
	"github.com/katalvlaran/nbc/ndarray"
)

// Shift translates event vectors: y = x + loc. The trailing axis of loc is
// the event size n; any leading axes form the shift's own batch shape and
// broadcast against the input's leading axes.
type Shift struct {
	loc *ndarray.NDArray // read-only after construction
	n   int              // event size, trailing axis of loc
}

// NewShift builds a Shift from its translation vector (rank ≥ 1).
// Errors: ErrNilInput (nil loc), ndarray.ErrInvalidShape (rank 0 — there is
// no event axis to read the size from).
func NewShift(loc *ndarray.NDArray) (*Shift, error) {
	if loc == nil {
		return nil, linopErrorfTag("NewShift", ErrNilInput)
	}
	shape := loc.Shape()
	if len(shape) < 1 {
		return nil, linopErrorfTag("NewShift", ndarray.ErrInvalidShape)
	}

	return &Shift{loc: loc, n: shape[len(shape)-1]}, nil
}

// Dim returns the event size n.
func (s *Shift) Dim() int { return s.n }

// Forward computes y = x + loc under the broadcast rule.
// Errors: ErrNilInput, linop.ErrShapeMismatch, ndarray.ErrIncompatibleShapes.
func (s *Shift) Forward(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	if _, err := leadingAxes(x, s.n); err != nil {
		return nil, linopErrorfTag("Forward", err)
	}

	return ndarray.Add(x, s.loc)
}

// Inverse computes x = y - loc under the broadcast rule.
// Errors: same contract as Forward.
func (s *Shift) Inverse(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	if _, err := leadingAxes(y, s.n); err != nil {
		return nil, linopErrorfTag("Inverse", err)
	}

	return ndarray.Sub(y, s.loc)
}

// ForwardLogDetJacobian returns zeros of the reconciled batch shape: a
// translation's Jacobian is the identity, log|det I| = 0.
// Errors: ErrNilInput, linop.ErrShapeMismatch, ndarray.ErrIncompatibleShapes.
func (s *Shift) ForwardLogDetJacobian(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := leadingAxes(x, s.n)
	if err != nil {
		return nil, linopErrorfTag("ForwardLogDetJacobian", err)
	}
	locShape := s.loc.Shape()
	batch, err := ndarray.BroadcastShapes(locShape[:len(locShape)-1], lead)
	if err != nil {
		return nil, linopErrorfTag("ForwardLogDetJacobian", err)
	}
	out, err := ndarray.Zeros(batch)
	if err != nil {
		return nil, linopErrorfTag("ForwardLogDetJacobian", err)
	}

	return out, nil
}

// InverseLogDetJacobian returns zeros as well: -0 = 0.
// Errors: same contract as ForwardLogDetJacobian.
func (s *Shift) InverseLogDetJacobian(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	return s.ForwardLogDetJacobian(y)
}

var _ Bijector = (*Shift)(nil)
