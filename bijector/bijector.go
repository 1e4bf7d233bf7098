// SPDX-License-Identifier: MIT
// Package bijector — the shared transform contract.

package bijector

import (
	"github.com/katalvlaran/nbc/ndarray"
)

// Bijector is an invertible transform of batched event vectors.
//
// Forward and Inverse are exact mutual inverses up to floating tolerance:
// Inverse(Forward(x)) == x for every well-conditioned transform. The log-det
// methods return the log-absolute-determinant of the transform's Jacobian,
// broadcast to the input's leading (batch) axes so that composition with
// non-constant-Jacobian transforms stays shape-correct.
type Bijector interface {
	// Forward maps x through the transform.
	Forward(x *ndarray.NDArray) (*ndarray.NDArray, error)
	// Inverse maps y back through the transform.
	Inverse(y *ndarray.NDArray) (*ndarray.NDArray, error)
	// ForwardLogDetJacobian returns log|det J(x)| per batch element.
	ForwardLogDetJacobian(x *ndarray.NDArray) (*ndarray.NDArray, error)
	// InverseLogDetJacobian returns log|det J⁻¹(y)| per batch element; for
	// any bijector this is the negated forward term at the matching point.
	InverseLogDetJacobian(y *ndarray.NDArray) (*ndarray.NDArray, error)
}

// negate returns a fresh array with every element sign-flipped.
func negate(a *ndarray.NDArray) *ndarray.NDArray {
	out, err := ndarray.BroadcastApply(func(v []float64) float64 { return -v[0] }, a)
	if err != nil {
		// A single non-nil input cannot fail to broadcast with itself.
		panic("bijector: internal negation failure: " + err.Error())
	}

	return out
}
