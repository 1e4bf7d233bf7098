// SPDX-License-Identifier: MIT
// Package ndarray: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the ndarray
// package. All operations MUST return these sentinels and tests MUST check them
// via errors.Is. No operation should panic on user-triggered error conditions.

package ndarray

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "ndarray: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary — callers will still use errors.Is to match.

var (
	// ErrInvalidShape is returned when a requested shape is invalid (negative
	// axis size) or when supplied data does not match the declared shape.
	// Constructors must validate before allocation.
	ErrInvalidShape = errors.New("ndarray: invalid shape")

	// ErrIncompatibleShapes indicates that two or more shapes cannot be
	// broadcast together: after right-alignment some axis holds two distinct
	// sizes that are both different from 1. The wrapping context names the
	// offending axis (counted from the trailing axis) and the conflicting sizes.
	ErrIncompatibleShapes = errors.New("ndarray: incompatible shapes for broadcasting")

	// ErrIndexOutOfBounds indicates that a multi-index is outside the valid
	// range of its array. Public accessors (At) MUST return this, not panic.
	ErrIndexOutOfBounds = errors.New("ndarray: index out of bounds")

	// ErrNilArray indicates that a nil *NDArray (receiver or argument) was used.
	ErrNilArray = errors.New("ndarray: nil array")

	// ErrNotScalar is returned by Item when the array holds more than one element.
	ErrNotScalar = errors.New("ndarray: array is not a scalar")
)
