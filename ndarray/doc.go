// Package ndarray offers immutable dense float64 arrays and the broadcasting
// engine used by the linop and bijector packages.
//
// The ndarray package provides:
//
//   - Shape, an ordered list of non-negative axis sizes (outermost first),
//     with the usual Rank/Size/Equal helpers.
//   - NDArray, a dense row-major float64 array that is never mutated after
//     construction; every operation returns a fresh array.
//   - BroadcastShapes, the right-aligned NumPy-style shape reconciliation
//     algorithm with typed failures naming the offending axis.
//   - BroadcastApply and the Add/Sub/Mul wrappers, which combine arrays
//     elementwise via clamped (stride-0) indexing — numerically identical to
//     physical replication, without ever materializing a replicated copy.
//
// Arrays are value-like: unrestricted aliasing and concurrent use are safe.
//
// See the examples in this package for usage patterns.
package ndarray
