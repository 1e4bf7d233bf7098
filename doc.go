// Package nbc is your in-memory toolkit for NumPy-style broadcasting and
// batched square linear transformations — from raw shape algebra to
// change-of-variables bijectors.
//
// 🚀 What is nbc?
//
//	A small, deterministic, pure-Go library that brings together:
//		• Shape algebra: right-aligned broadcasting with typed failures
//		• NDArray: an immutable dense row-major float64 array value type
//		• Structured operators: Diagonal, LowerTriangular and FullMatrix
//		  square maps with batched MatVec/Solve/LogAbsDet
//		• Bijectors: Scale, Shift and Chain with exact inverses and
//		  additive log-determinants for density transforms
//
// ✨ Why choose nbc?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – eager validation, sentinel errors, in-code docs
//   - Pure Go – no cgo, no hidden deps
//   - Deterministic – fixed loop orders, no global state, no randomness
//
// Under the hood, everything is organized under three subpackages:
//
//	ndarray/  — Shape & NDArray value types + the broadcasting engine
//	linop/    — structured square linear operators, batched over leading axes
//	bijector/ — forward/inverse transforms & log-det-Jacobian composition
//
// Quick example (batched diagonal scale):
//
//	op, _ := linop.NewDiagonal(ndarray.FromVector([]float64{1.5, -0.5}))
//	b, _ := bijector.NewScale(op)
//	y, _ := b.Forward(ndarray.FromVector([]float64{1, 1})) // → (1.5, -0.5)
//
// All operations are pure and safe for unrestricted concurrent use.
package nbc
