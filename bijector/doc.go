// Package bijector offers invertible transforms of batched vectors together
// with the log-absolute-determinant-of-Jacobian terms needed to rescale
// probability densities under a change of variables.
//
// The bijector package provides:
//
//   - Scale, a linear transform backed by one linop.Operator: Forward is the
//     batched matrix-vector product, Inverse the batched solve, and the
//     log-det-Jacobian the operator's log|det| broadcast to the input's
//     batch shape (a linear map's Jacobian is constant in x).
//   - Shift, a pure translation: exact inverse by subtraction and an
//     identically-zero log-det-Jacobian.
//   - Chain, a composite applied inner-first whose log-det-Jacobian is the
//     SUM of its stages' terms (the Jacobian of a composition is the product
//     of the Jacobians; log turns the product into a sum).
//
// Bijectors are immutable after construction, hold no internal state, and
// are safe for unrestricted concurrent use.
package bijector
