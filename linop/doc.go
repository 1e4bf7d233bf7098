// Package linop offers structured square linear operators, batched over
// leading axes, for change-of-variables computations.
//
// The linop package provides:
//
//   - A closed variant set — Diagonal, LowerTriangular and FullMatrix —
//     behind the Operator interface. The set is sealed: the capability
//     contract (ToDense, MatVec, Solve, LogAbsDet) is exhaustive over these
//     three structures and external packages cannot add variants.
//   - Batched application: an operator carries a batch shape (all leading
//     axes of its parameters); MatVec and Solve reconcile that batch with
//     the input's leading axes under the ndarray broadcasting rule.
//   - Eager validation: non-square parameters fail at construction with
//     ErrInvalidShape; event-axis mismatches fail with ErrShapeMismatch;
//     numeric singularity fails with ErrSingular, never a silent NaN.
//
// Operators are immutable after construction and safe for unrestricted
// concurrent use.
package linop
