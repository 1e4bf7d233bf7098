// SPDX-License-Identifier: MIT
// Package bijector: sentinel error set (unified, consistent).
// Call-time numeric and shape failures are NOT redefined here: Forward/Inverse
// delegate to linop and ndarray, whose sentinels (linop.ErrShapeMismatch,
// linop.ErrSingular, ndarray.ErrIncompatibleShapes) propagate wrapped and
// still match via errors.Is. Only construction-time conditions specific to
// this package get their own sentinels.

package bijector

import "errors"

var (
	// ErrNilOperator indicates that a nil linop.Operator was passed to NewScale.
	ErrNilOperator = errors.New("bijector: nil linear operator")

	// ErrNilBijector indicates that a nil stage was passed to NewChain.
	ErrNilBijector = errors.New("bijector: nil chain stage")

	// ErrNilInput indicates that a nil *ndarray.NDArray was passed to a
	// transform method.
	ErrNilInput = errors.New("bijector: nil input array")
)
