// SPDX-License-Identifier: MIT
// Package ndarray: NDArray container.
// NDArray is a concrete, row-major, immutable array of float64 values,
// storing elements in a flat slice for performance and cache friendliness.

package ndarray

import (
	"fmt"
	"math"
)

// arrayErrorf wraps an underlying error with constructor/accessor context.
func arrayErrorf(method string, err error) error {
	return fmt.Errorf("NDArray.%s: %w", method, err)
}

// NDArray is a dense, rectangular, multi-dimensional array of float64 values.
// shape holds the axis sizes (outermost first) and data holds shape.Size()
// elements in row-major order.
//
// NDArray values are logically immutable: no method mutates the receiver, and
// both shape and data are copied on construction, so unrestricted aliasing
// and concurrent use are safe.
type NDArray struct {
	shape Shape     // axis sizes, outermost first
	data  []float64 // flat backing storage, length == shape.Size()
}

// New builds an NDArray from a shape and flat row-major data.
// Stage 1 (Validate): shape axes ≥ 0 and len(data) == shape.Size().
// Stage 2 (Prepare): copy shape and data (the NDArray owns its storage).
// Stage 3 (Finalize): return the array or ErrInvalidShape.
// Complexity: O(size) time and memory for the copy.
func New(shape Shape, data []float64) (*NDArray, error) {
	// Validate axis extents.
	if err := shape.validate(); err != nil {
		return nil, arrayErrorf("New", err)
	}
	// Validate that the declared extent matches the payload.
	if shape.Size() != len(data) {
		return nil, fmt.Errorf("NDArray.New: shape %v implies %d elements, data holds %d: %w",
			shape, shape.Size(), len(data), ErrInvalidShape)
	}
	// Copy both shape and data so later caller-side writes cannot leak in.
	cp := make([]float64, len(data))
	copy(cp, data)

	return &NDArray{shape: shape.Clone(), data: cp}, nil
}

// Zeros returns a zero-filled array of the given shape.
// Errors: ErrInvalidShape (negative axis).
// Complexity: O(size).
func Zeros(shape Shape) (*NDArray, error) {
	if err := shape.validate(); err != nil {
		return nil, arrayErrorf("Zeros", err)
	}

	return &NDArray{shape: shape.Clone(), data: make([]float64, shape.Size())}, nil
}

// Full returns an array of the given shape with every element set to v.
// Errors: ErrInvalidShape (negative axis).
// Complexity: O(size).
func Full(shape Shape, v float64) (*NDArray, error) {
	out, err := Zeros(shape)
	if err != nil {
		return nil, arrayErrorf("Full", err)
	}
	for i := range out.data {
		out.data[i] = v
	}

	return out, nil
}

// Scalar wraps a single float64 as a rank-0 array.
// Complexity: O(1).
func Scalar(v float64) *NDArray {
	return &NDArray{shape: Shape{}, data: []float64{v}}
}

// FromVector wraps a copy of the given slice as a rank-1 array.
// A nil or empty slice yields a valid empty vector of shape (0).
// Complexity: O(n).
func FromVector(v []float64) *NDArray {
	cp := make([]float64, len(v))
	copy(cp, v)

	return &NDArray{shape: Shape{len(v)}, data: cp}
}

// FromMatrix flattens a rectangular [][]float64 into a rank-2 array.
// Stage 1 (Validate): all rows must share one length (ragged ⇒ ErrInvalidShape).
// Stage 2 (Execute): copy rows into a single flat row-major buffer.
// Complexity: O(r*c).
func FromMatrix(rows [][]float64) (*NDArray, error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	data := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NDArray.FromMatrix: row %d has %d columns, row 0 has %d: %w",
				i, len(row), c, ErrInvalidShape)
		}
		data = append(data, row...)
	}

	return &NDArray{shape: Shape{r, c}, data: data}, nil
}

// Shape returns a copy of the array's shape.
// Complexity: O(rank).
func (a *NDArray) Shape() Shape { return a.shape.Clone() }

// Rank returns the number of axes.
func (a *NDArray) Rank() int { return len(a.shape) }

// Size returns the total number of elements.
func (a *NDArray) Size() int { return len(a.data) }

// At retrieves the element at the given multi-index (one index per axis).
// Errors: ErrIndexOutOfBounds (wrong arity or out-of-range index).
// Complexity: O(rank).
func (a *NDArray) At(idx ...int) (float64, error) {
	off, err := a.offsetOf(idx)
	if err != nil {
		return 0, err
	}

	return a.data[off], nil
}

// offsetOf computes the flat row-major offset for a multi-index, or fails
// with ErrIndexOutOfBounds. Arity must equal the rank exactly.
// Complexity: O(rank).
func (a *NDArray) offsetOf(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("NDArray.At: got %d indices for rank %d: %w",
			len(idx), len(a.shape), ErrIndexOutOfBounds)
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			return 0, fmt.Errorf("NDArray.At: index %d out of range [0,%d) on axis %d: %w",
				v, a.shape[i], i, ErrIndexOutOfBounds)
		}
		off = off*a.shape[i] + v // Horner accumulation over row-major axes
	}

	return off, nil
}

// Item returns the single element of a size-1 array (any rank).
// Errors: ErrNotScalar when Size() != 1.
// Complexity: O(1).
func (a *NDArray) Item() (float64, error) {
	if len(a.data) != 1 {
		return 0, fmt.Errorf("NDArray.Item: size %d: %w", len(a.data), ErrNotScalar)
	}

	return a.data[0], nil
}

// Data returns a copy of the flat row-major backing data.
// The copy keeps the receiver immutable under any caller-side mutation.
// Complexity: O(size).
func (a *NDArray) Data() []float64 {
	cp := make([]float64, len(a.data))
	copy(cp, a.data)

	return cp
}

// Equal reports whether two arrays share a shape and agree elementwise
// within absolute tolerance tol. NaNs never compare equal.
// Complexity: O(size).
func (a *NDArray) Equal(other *NDArray, tol float64) bool {
	if other == nil || !a.shape.Equal(other.shape) {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-other.data[i]) > tol {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for easy debugging: shape plus flat data.
func (a *NDArray) String() string {
	return fmt.Sprintf("NDArray%s%v", a.shape, a.data)
}

// validateNotNil ensures the array reference is non-nil.
// Returns ErrNilArray if a == nil. Complexity: O(1).
func validateNotNil(a *NDArray) error {
	if a == nil {
		return ErrNilArray
	}

	return nil
}
