// SPDX-License-Identifier: MIT
// Package ndarray: broadcasting engine.
//
// Purpose:
//   - Reconcile the shapes of two or more arrays under the right-aligned
//     broadcasting rule and combine them elementwise.
//   - Guarantee stretch-then-apply ≡ index-with-clamping: the numeric result
//     equals explicit replication of size-1 axes, but no replica is ever
//     materialized — size-1 axes are walked with stride 0 instead.
//
// Determinism & Performance:
//   - Fixed flat loop order 0..size-1 over the output.
//   - One offset recomputation per input per position, O(rank) each.
//   - No hidden allocations beyond the output and O(rank) stride tables.
//
// AI-Hints:
//   - Prefer the binary Add/Sub/Mul wrappers: equal-shape operands hit a
//     single flat-loop fast path with no index arithmetic at all.
//   - Reuse broadcast results rather than re-broadcasting inside hot loops.

package ndarray

import "fmt"

// broadcastOne folds one input size into the current result size at one axis.
// Rule: 1 stretches to anything; a result of 1 adopts the input; equal sizes
// agree; anything else is a conflict. Zero sizes combine only with 0 and 1.
// Returns the new size and whether the pair is compatible.
func broadcastOne(result, in int) (int, bool) {
	switch {
	case in == 1:
		return result, true
	case result == 1:
		return in, true
	case result == in:
		return result, true
	default:
		return 0, false
	}
}

// BroadcastShapes computes the broadcast of all given shapes, or fails.
// Stage 1 (Align): right-align all shapes; shorter shapes are conceptually
// padded on the left with size-1 axes (no physical padding occurs).
// Stage 2 (Fold): per aligned axis, fold every input size via broadcastOne;
// a conflict fails with ErrIncompatibleShapes naming the offending axis
// (counted from the trailing axis, since alignment is right-anchored) and
// the two conflicting sizes.
// Output rank = the maximum input rank.
// Complexity: O(len(shapes) * maxRank). Space: O(maxRank).
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	// Determine the output rank.
	maxRank := 0
	for _, s := range shapes {
		if len(s) > maxRank {
			maxRank = len(s)
		}
	}
	out := make(Shape, maxRank)

	// Walk axes from the trailing side; axis k counts 0,1,2,... from the right.
	var k, size, in int
	var ok bool
	for k = 0; k < maxRank; k++ {
		size = 1 // identity under broadcastOne
		for _, s := range shapes {
			if k >= len(s) {
				continue // conceptual left-padding with 1
			}
			in = s[len(s)-1-k]
			size, ok = broadcastOne(size, in)
			if !ok {
				return nil, fmt.Errorf("BroadcastShapes: axis %d from the right: sizes %d and %d: %w",
					k, size, in, ErrIncompatibleShapes)
			}
		}
		out[maxRank-1-k] = size
	}

	return out, nil
}

// broadcastStrides computes per-axis strides for reading an array of shape
// `in` as if it had been replicated up to shape `out` (len(out) ≥ len(in),
// shapes already reconciled). Axes that are left-padded or of size 1 get
// stride 0, which is exactly the clamped-indexing trick: every output
// position along such an axis reads the same input element.
// Complexity: O(rank).
func broadcastStrides(in, out Shape) []int {
	strides := make([]int, len(out))
	orig := in.rowMajorStrides()
	offset := len(out) - len(in)
	for i := range out {
		j := i - offset
		switch {
		case j < 0: // conceptually padded axis
			strides[i] = 0
		case in[j] == 1 && out[i] > 1: // stretched axis
			strides[i] = 0
		default: // material axis, use the contiguous stride
			strides[i] = orig[j]
		}
	}

	return strides
}

// advanceOffsets walks one step of a row-major odometer over shape `out`,
// updating idx in place and each input offset via its stride table.
// Returns false once the odometer wraps past the last position.
// Complexity: O(rank) amortized O(1) per step.
func advanceOffsets(out Shape, idx []int, offsets []int, strides [][]int) bool {
	// Increment trailing axis first; carry leftwards on wrap.
	for ax := len(out) - 1; ax >= 0; ax-- {
		idx[ax]++
		if idx[ax] < out[ax] {
			// Move every input forward along this axis.
			for a := range offsets {
				offsets[a] += strides[a][ax]
			}

			return true
		}
		// Wrap: rewind this axis on every input, carry to the next axis.
		idx[ax] = 0
		for a := range offsets {
			offsets[a] -= strides[a][ax] * (out[ax] - 1)
		}
	}

	return false
}

// BroadcastApply broadcasts all inputs to their common shape and applies op
// positionwise, returning a fresh array of the broadcast shape.
//
// The vals slice passed to op holds one value per input, in argument order;
// it is reused between positions and must not be retained.
//
// Contract: the result is numerically identical to physically replicating
// every size-1 axis and applying op to the replicas, but no replica is built:
// inputs are walked with stride-0 offsets over stretched axes.
//
// Errors: ErrNilArray (no inputs, or a nil input),
// ErrIncompatibleShapes (shape reconciliation failed).
// Complexity: Time O(size * inputs * 1) via the odometer walk, Space O(size).
func BroadcastApply(op func(vals []float64) float64, arrays ...*NDArray) (*NDArray, error) {
	// Validate presence of operands.
	if len(arrays) == 0 {
		return nil, fmt.Errorf("BroadcastApply: no input arrays: %w", ErrNilArray)
	}
	shapes := make([]Shape, len(arrays))
	for i, a := range arrays {
		if err := validateNotNil(a); err != nil {
			return nil, fmt.Errorf("BroadcastApply: input %d: %w", i, err)
		}
		shapes[i] = a.shape
	}

	// Reconcile shapes once, up front.
	outShape, err := BroadcastShapes(shapes...)
	if err != nil {
		return nil, fmt.Errorf("BroadcastApply: %w", err)
	}
	out := &NDArray{shape: outShape, data: make([]float64, outShape.Size())}
	if len(out.data) == 0 {
		return out, nil // empty result: nothing to compute, by contract not an error
	}

	// Precompute clamped stride tables, one per input.
	strides := make([][]int, len(arrays))
	for i, a := range arrays {
		strides[i] = broadcastStrides(a.shape, outShape)
	}

	// Odometer state: current multi-index and per-input flat offsets.
	idx := make([]int, len(outShape))
	offsets := make([]int, len(arrays))
	vals := make([]float64, len(arrays))

	// Fixed flat order 0..size-1 over the output.
	for pos := 0; ; pos++ {
		for a, arr := range arrays {
			vals[a] = arr.data[offsets[a]]
		}
		out.data[pos] = op(vals)
		if !advanceOffsets(outShape, idx, offsets, strides) {
			break
		}
	}

	return out, nil
}

// applyBinary runs a two-operand broadcast with an equal-shape fast path.
// Internal helper for Add/Sub/Mul to share validation and the hot loop.
func applyBinary(opTag string, a, b *NDArray, op func(x, y float64) float64) (*NDArray, error) {
	if err := validateNotNil(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opTag, err)
	}
	if err := validateNotNil(b); err != nil {
		return nil, fmt.Errorf("%s: %w", opTag, err)
	}

	// Fast-path: identical shapes need no index arithmetic at all.
	if a.shape.Equal(b.shape) {
		out := &NDArray{shape: a.shape.Clone(), data: make([]float64, len(a.data))}
		for i := range a.data {
			out.data[i] = op(a.data[i], b.data[i])
		}

		return out, nil
	}

	// Fallback: full broadcast walk.
	out, err := BroadcastApply(func(v []float64) float64 { return op(v[0], v[1]) }, a, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTag, err)
	}

	return out, nil
}

// Add returns the elementwise broadcast sum a + b.
// Errors: ErrNilArray, ErrIncompatibleShapes.
// Complexity: O(size of the broadcast result).
func Add(a, b *NDArray) (*NDArray, error) {
	return applyBinary("Add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns the elementwise broadcast difference a - b.
// Errors: ErrNilArray, ErrIncompatibleShapes.
// Complexity: O(size of the broadcast result).
func Sub(a, b *NDArray) (*NDArray, error) {
	return applyBinary("Sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise broadcast product a * b.
// Errors: ErrNilArray, ErrIncompatibleShapes.
// Complexity: O(size of the broadcast result).
func Mul(a, b *NDArray) (*NDArray, error) {
	return applyBinary("Mul", a, b, func(x, y float64) float64 { return x * y })
}

// BroadcastTo materializes a stretched to the given target shape.
// The target must be reachable from a's shape under the broadcast rule with
// no axis of a being stretched beyond the target (i.e. broadcast(a, target)
// must equal target exactly).
// Errors: ErrNilArray, ErrIncompatibleShapes (unreachable target).
// Complexity: O(target size).
func BroadcastTo(a *NDArray, target Shape) (*NDArray, error) {
	if err := validateNotNil(a); err != nil {
		return nil, fmt.Errorf("BroadcastTo: %w", err)
	}
	combined, err := BroadcastShapes(a.shape, target)
	if err != nil {
		return nil, fmt.Errorf("BroadcastTo: %w", err)
	}
	if !combined.Equal(target) {
		return nil, fmt.Errorf("BroadcastTo: shape %v does not broadcast to %v: %w",
			a.shape, target, ErrIncompatibleShapes)
	}

	out := &NDArray{shape: target.Clone(), data: make([]float64, target.Size())}
	if len(out.data) == 0 {
		return out, nil
	}

	// Clamped walk over the target, reading a through stride-0 axes.
	strides := [][]int{broadcastStrides(a.shape, target)}
	idx := make([]int, len(target))
	offsets := make([]int, 1)
	for pos := 0; ; pos++ {
		out.data[pos] = a.data[offsets[0]]
		if !advanceOffsets(target, idx, offsets, strides) {
			break
		}
	}

	return out, nil
}
