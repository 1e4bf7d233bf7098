// SPDX-License-Identifier: MIT
// Package ndarray: Shape value type.
//
// Purpose:
//   - Represent array extents as an ordered list of non-negative axis sizes,
//     outermost (slowest-varying) first.
//   - Keep all shape arithmetic (size, strides, equality) in one place so the
//     broadcast engine and the NDArray container never duplicate it.
//
// Determinism & Performance:
//   - All helpers are pure, deterministic and allocate at most one slice.

package ndarray

import (
	"fmt"
	"strings"
)

// Shape is an ordered sequence of non-negative axis sizes, outermost first.
// A zero-length Shape describes a scalar. An axis of size 0 describes an
// empty array and is legal everywhere (it broadcasts only against 0 and 1).
type Shape []int

// NewShape validates the given sizes and returns them as a fresh Shape.
// Stage 1 (Validate): every size must be ≥ 0.
// Stage 2 (Finalize): copy into a new slice so callers cannot alias it.
// Errors: ErrInvalidShape (negative axis size).
// Complexity: O(rank).
func NewShape(sizes ...int) (Shape, error) {
	// Reject negative extents before any allocation is observable.
	for i, s := range sizes {
		if s < 0 {
			return nil, fmt.Errorf("NewShape: axis %d has negative size %d: %w", i, s, ErrInvalidShape)
		}
	}
	// Copy defensively; the variadic backing array belongs to the caller.
	out := make(Shape, len(sizes))
	copy(out, sizes)

	return out, nil
}

// Rank returns the number of axes.
// Complexity: O(1).
func (s Shape) Rank() int { return len(s) }

// Size returns the total number of elements: the product of all axis sizes.
// A scalar (rank 0) has size 1; any zero axis yields size 0.
// Complexity: O(rank).
func (s Shape) Size() int {
	size := 1
	for _, v := range s {
		size *= v // any 0 axis collapses the product to 0
	}

	return size
}

// Clone returns an independent copy of the shape.
// Complexity: O(rank).
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)

	return out
}

// Equal reports whether two shapes have identical rank and axis sizes.
// Complexity: O(rank).
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer, e.g. "(2×3×4)" or "()" for a scalar.
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = fmt.Sprintf("%d", v)
	}

	return "(" + strings.Join(parts, "×") + ")"
}

// validate re-checks an already constructed shape (used by NDArray ingestion
// where the Shape may come from user code rather than NewShape).
// Errors: ErrInvalidShape.
// Complexity: O(rank).
func (s Shape) validate() error {
	for i, v := range s {
		if v < 0 {
			return fmt.Errorf("axis %d has negative size %d: %w", i, v, ErrInvalidShape)
		}
	}

	return nil
}

// rowMajorStrides computes contiguous row-major strides for the shape.
// stride[rank-1] == 1; stride[i] == stride[i+1] * s[i+1].
// Zero axes produce well-defined (unused) strides.
// Complexity: O(rank).
func (s Shape) rowMajorStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	// Walk trailing→leading so each stride is the size of the block behind it.
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}

	return strides
}
