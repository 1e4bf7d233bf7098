// SPDX-License-Identifier: MIT

// Package linop: functional configuration for operator numeric policy.
// This file defines:
//   - Option / options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each knob impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Reusability: options fields are unexported; public APIs consume ...Option.

package linop

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon is the non-negative absolute tolerance used to detect
	// numeric singularity: a diagonal entry or elimination pivot whose
	// magnitude is ≤ ε makes Solve/LogAbsDet fail with ErrSingular.
	//
	// The source material leaves this bound open; 1e-9 is chosen as a
	// conservative float64 default, and callers with ill-scaled data can
	// widen it per operator via WithEpsilon.
	DefaultEpsilon = 1e-9
)

// Option mutates the internal options state during construction.
type Option func(*options)

// options carries the gathered numeric policy for one operator.
type options struct {
	eps float64 // singularity tolerance, ≥ 0, finite
}

// WithEpsilon overrides the singularity tolerance for one operator.
// Panics if eps is negative or not finite (programmer error, not a runtime
// condition — an invalid tolerance can never be a valid request).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic("linop: WithEpsilon requires a finite, non-negative tolerance")
	}

	return func(o *options) { o.eps = eps }
}

// gatherOptions applies opts over the documented defaults.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) options {
	o := options{eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
