// SPDX-License-Identifier: MIT
// Package bijector — Chain: ordered composition of bijectors.
//
// Purpose:
//   - Compose transforms with the standard convention: the LAST stage of the
//     list is applied first on the forward pass, so NewChain(outer, inner)
//     reads like function composition outer∘inner.
//   - Keep the additive log-det invariant: the Jacobian of a composition is
//     the product of the stage Jacobians, so the log-det of the chain is the
//     broadcast SUM of the stage log-dets, each evaluated at the point the
//     stage actually sees.

package bijector

import (
	"github.com/katalvlaran/nbc/ndarray"
)

// Chain is an immutable ordered composition of bijectors. An empty chain is
// the identity transform.
type Chain struct {
	stages []Bijector // outermost first; stages[len-1] is applied first
}

// NewChain composes the given stages, outermost first.
// Errors: ErrNilBijector (some stage is nil).
func NewChain(stages ...Bijector) (*Chain, error) {
	for _, b := range stages {
		if b == nil {
			return nil, linopErrorfTag("NewChain", ErrNilBijector)
		}
	}
	cp := make([]Bijector, len(stages))
	copy(cp, stages)

	return &Chain{stages: cp}, nil
}

// Forward applies the stages inner-first: for NewChain(T2, T1) the result is
// T2.Forward(T1.Forward(x)).
func (c *Chain) Forward(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	cur := x
	var err error
	for i := len(c.stages) - 1; i >= 0; i-- {
		if cur, err = c.stages[i].Forward(cur); err != nil {
			return nil, linopErrorfTag("Forward", err)
		}
	}

	return cur, nil
}

// Inverse reverses the order and inverts each stage: for NewChain(T2, T1)
// the result is T1.Inverse(T2.Inverse(y)).
func (c *Chain) Inverse(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	cur := y
	var err error
	for i := 0; i < len(c.stages); i++ {
		if cur, err = c.stages[i].Inverse(cur); err != nil {
			return nil, linopErrorfTag("Inverse", err)
		}
	}

	return cur, nil
}

// ForwardLogDetJacobian accumulates the stage terms along the forward pass,
// broadcasting as it sums. An empty chain contributes a scalar zero, which
// broadcasts against any batch shape.
func (c *Chain) ForwardLogDetJacobian(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	total := ndarray.Scalar(0)
	cur := x
	var ld *ndarray.NDArray
	var err error
	for i := len(c.stages) - 1; i >= 0; i-- {
		// Each stage's term is evaluated at the point that stage receives.
		if ld, err = c.stages[i].ForwardLogDetJacobian(cur); err != nil {
			return nil, linopErrorfTag("ForwardLogDetJacobian", err)
		}
		if total, err = ndarray.Add(total, ld); err != nil {
			return nil, linopErrorfTag("ForwardLogDetJacobian", err)
		}
		if i > 0 { // the last stage's output feeds nothing further
			if cur, err = c.stages[i].Forward(cur); err != nil {
				return nil, linopErrorfTag("ForwardLogDetJacobian", err)
			}
		}
	}

	return total, nil
}

// InverseLogDetJacobian is the negated forward term along the inverse pass:
// log|det J⁻¹| summed stage by stage equals minus the forward sum.
func (c *Chain) InverseLogDetJacobian(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	total := ndarray.Scalar(0)
	cur := y
	var ld *ndarray.NDArray
	var err error
	for i := 0; i < len(c.stages); i++ {
		if ld, err = c.stages[i].InverseLogDetJacobian(cur); err != nil {
			return nil, linopErrorfTag("InverseLogDetJacobian", err)
		}
		if total, err = ndarray.Add(total, ld); err != nil {
			return nil, linopErrorfTag("InverseLogDetJacobian", err)
		}
		if i < len(c.stages)-1 {
			if cur, err = c.stages[i].Inverse(cur); err != nil {
				return nil, linopErrorfTag("InverseLogDetJacobian", err)
			}
		}
	}

	return total, nil
}

var _ Bijector = (*Chain)(nil)
