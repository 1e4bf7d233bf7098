// SPDX-License-Identifier: MIT
// Package linop: shared batch-broadcast plumbing.
//
// Purpose:
//   - Reconcile an operator's batch shape with an input's leading axes and
//     walk every broadcast batch position exactly once, handing each variant
//     kernel a pair of flat BLOCK indices: which parameter block (one
//     diagonal, or one n×n matrix) and which input block (one length-n
//     vector) the position reads. Stretched axes advance with stride 0, so
//     no parameter or input block is ever replicated.
//
// Determinism & Performance:
//   - Fixed flat order 0..batchSize-1; O(rank) odometer step per position.
//   - Stride tables are O(rank); no other allocations.
//
// AI-Hints:
//   - Kernels receive block indices, not offsets: multiply by the variant's
//     block length (n or n*n) before slicing into the flat parameter data.

package linop

import (
	"fmt"

	"github.com/katalvlaran/nbc/ndarray"
)

// splitEvent validates x as a batch of length-n event vectors and returns
// its leading (batch) axes.
// Stage 1 (Validate): x non-nil, rank ≥ 1, trailing axis == n.
// Stage 2 (Finalize): return every axis before the trailing one.
// Errors: ErrNilOperand, ErrShapeMismatch.
// Complexity: O(rank).
func splitEvent(x *ndarray.NDArray, n int) (ndarray.Shape, error) {
	if x == nil {
		return nil, ErrNilOperand
	}
	shape := x.Shape()
	if len(shape) < 1 {
		return nil, fmt.Errorf("input is a scalar, need a trailing event axis of size %d: %w", n, ErrShapeMismatch)
	}
	if got := shape[len(shape)-1]; got != n {
		return nil, fmt.Errorf("trailing axis is %d, operator size is %d: %w", got, n, ErrShapeMismatch)
	}

	return shape[:len(shape)-1], nil
}

// rowMajorSizes computes contiguous row-major strides for a batch shape,
// measured in blocks (the trailing event axes are outside this shape).
func rowMajorSizes(s ndarray.Shape) []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}

	return strides
}

// clampedStrides maps an already-reconciled batch shape `in` onto the
// broadcast shape `out`: left-padded and stretched (size-1) axes get stride
// 0, every other axis keeps its contiguous block stride.
func clampedStrides(in, out ndarray.Shape) []int {
	strides := make([]int, len(out))
	orig := rowMajorSizes(in)
	offset := len(out) - len(in)
	for i := range out {
		j := i - offset
		switch {
		case j < 0:
			strides[i] = 0
		case in[j] == 1 && out[i] > 1:
			strides[i] = 0
		default:
			strides[i] = orig[j]
		}
	}

	return strides
}

// walkPairs walks the precomputed broadcast batch (the result of
// ndarray.BroadcastShapes(opBatch, lead)) and invokes fn once per batch
// position, in fixed flat order, with the position index plus the clamped
// parameter-block and input-block indices.
//
// A zero-sized batch is valid: fn is never invoked.
//
// Errors: whatever fn returns (propagated verbatim, walk aborted).
// Complexity: Time O(batchSize * rank), Space O(rank).
func walkPairs(batch, opBatch, lead ndarray.Shape, fn func(pos, opBlock, xBlock int) error) error {
	if batch.Size() == 0 {
		return nil // empty batch propagates to an empty output
	}

	opStrides := clampedStrides(opBatch, batch)
	xStrides := clampedStrides(lead, batch)
	idx := make([]int, len(batch))
	opBlock, xBlock := 0, 0

	for pos := 0; ; pos++ {
		if err := fn(pos, opBlock, xBlock); err != nil {
			return err
		}
		// Row-major odometer step: bump the trailing axis, carry leftwards.
		advanced := false
		for ax := len(batch) - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < batch[ax] {
				opBlock += opStrides[ax]
				xBlock += xStrides[ax]
				advanced = true
				break
			}
			idx[ax] = 0
			opBlock -= opStrides[ax] * (batch[ax] - 1)
			xBlock -= xStrides[ax] * (batch[ax] - 1)
		}
		if !advanced {
			return nil
		}
	}
}

// appendEvent assembles batch + [n] for MatVec/Solve outputs.
func appendEvent(batch ndarray.Shape, n int) ndarray.Shape {
	out := make(ndarray.Shape, 0, len(batch)+1)
	out = append(out, batch...)
	out = append(out, n)

	return out
}
