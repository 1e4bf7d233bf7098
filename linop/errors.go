// SPDX-License-Identifier: MIT
// Package linop: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the linop
// package. All operations MUST return these sentinels and tests MUST check them
// via errors.Is. No operation should panic on user-triggered error conditions.
// Panics are reserved for programmer errors in option constructors.

package linop

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "linop: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary — callers will still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// construction shape errors -> nil arguments -> call-time event-axis mismatch
// -> batch broadcasting failures (ndarray.ErrIncompatibleShapes, propagated)
// -> numeric singularity.

var (
	// ErrInvalidShape is returned at construction time when an operator's
	// parameter array cannot describe a batch of square matrices: wrong rank,
	// or mismatched trailing dimensions. Never deferred to call time.
	ErrInvalidShape = errors.New("linop: invalid operator shape")

	// ErrShapeMismatch is returned at call time when an input's trailing
	// (event) axis does not equal the operator's matrix size n, or the input
	// has no event axis at all.
	ErrShapeMismatch = errors.New("linop: event axis does not match operator size")

	// ErrSingular is returned by Solve and LogAbsDet when the operator is
	// numerically non-invertible within the configured epsilon: a diagonal
	// entry of a Diagonal/LowerTriangular operator, or an elimination pivot
	// of a FullMatrix operator, has magnitude ≤ ε. Failure is always signaled
	// eagerly — never a silent -Inf or NaN result.
	ErrSingular = errors.New("linop: singular operator")

	// ErrNilOperand indicates that a nil *ndarray.NDArray was supplied where
	// an operator parameter or input vector batch was required.
	ErrNilOperand = errors.New("linop: nil operand")
)
