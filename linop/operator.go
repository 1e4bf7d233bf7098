// SPDX-License-Identifier: MIT
// Package linop — the shared operator contract.
//
// Purpose:
//   - Declare the capability set every structured operator exposes.
//   - Seal the variant set: the contract is a closed sum over Diagonal,
//     LowerTriangular and FullMatrix, so the interface carries an unexported
//     marker method that only in-package types can implement.

package linop

import (
	"fmt"

	"github.com/katalvlaran/nbc/ndarray"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMatVec    = "MatVec"
	opSolve     = "Solve"
	opLogAbsDet = "LogAbsDet"
)

// linopErrorf wraps err with an operation tag, preserving the original error
// via %w. Use only when err != nil; callers still match with errors.Is.
func linopErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Operator is a batch of square, invertible linear maps over ℝⁿ.
//
// An operator owns its parameters (copied at construction) and is immutable:
// every method returns fresh values and may be called concurrently.
//
// The variant set is closed — Diagonal, LowerTriangular, FullMatrix — and
// each variant implements the full capability set:
//
//	ToDense   — materialize Bshape+[n,n], zero-filling off-structure entries
//	MatVec    — y = A·x, batched, broadcasting Bshape against x's leading axes
//	Solve     — x = A⁻¹·y, same broadcasting contract, ErrSingular when A is
//	            numerically non-invertible within the configured ε
//	LogAbsDet — log|det A| per batch element, shape Bshape
type Operator interface {
	// BatchShape returns the leading (batch) axes of the operator parameters.
	BatchShape() ndarray.Shape
	// Dim returns the matrix size n: the operator maps ℝⁿ → ℝⁿ.
	Dim() int
	// Shape returns BatchShape + [n, n], the shape ToDense materializes.
	Shape() ndarray.Shape
	// ToDense materializes the full batched matrix.
	ToDense() *ndarray.NDArray
	// MatVec applies the batched matrix-vector product to x (trailing axis n).
	MatVec(x *ndarray.NDArray) (*ndarray.NDArray, error)
	// Solve applies the batched inverse map to y (trailing axis n).
	Solve(y *ndarray.NDArray) (*ndarray.NDArray, error)
	// LogAbsDet returns log|det| per batch element, of shape BatchShape.
	LogAbsDet() (*ndarray.NDArray, error)

	// isOperator seals the variant set to this package.
	isOperator()
}

// operatorShape assembles BatchShape + [n, n] for the Shape() accessors.
func operatorShape(batch ndarray.Shape, n int) ndarray.Shape {
	out := make(ndarray.Shape, 0, len(batch)+2)
	out = append(out, batch...)
	out = append(out, n, n)

	return out
}

// mustArray wraps ndarray constructors whose inputs this package has already
// validated; a failure there is a programmer error, not a runtime condition.
func mustArray(a *ndarray.NDArray, err error) *ndarray.NDArray {
	if err != nil {
		panic(fmt.Sprintf("linop: internal shape bookkeeping violated: %v", err))
	}

	return a
}
