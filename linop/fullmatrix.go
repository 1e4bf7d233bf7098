// SPDX-License-Identifier: MIT
// Package linop: FullMatrix operator.
//
// A FullMatrix operator stores an arbitrary dense (…, n, n) parameter array.
// MatVec is a plain dense product; Solve and LogAbsDet share the partially
// pivoted LU kernel in lu.go. Each parameter block is factored at most once
// per call, however many broadcast positions read it.

package linop

import (
	"fmt"

	"github.com/katalvlaran/nbc/ndarray"
)

// FullMatrix is a batch of dense n×n matrices.
type FullMatrix struct {
	mat   []float64     // flat parameter blocks, Bshape.Size() * n*n entries
	batch ndarray.Shape // leading axes of the parameter array
	n     int           // matrix size
	eps   float64       // singularity tolerance for elimination pivots
}

// NewFullMatrix builds a FullMatrix operator from a batched square matrix.
// Non-square trailing dims are a construction-time error, never deferred to
// call time.
// Errors: ErrNilOperand, ErrInvalidShape (rank < 2, or trailing dims differ).
// Complexity: O(size of m).
func NewFullMatrix(m *ndarray.NDArray, opts ...Option) (*FullMatrix, error) {
	batch, n, data, err := squareParams("NewFullMatrix", m)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	return &FullMatrix{mat: data, batch: batch, n: n, eps: o.eps}, nil
}

func (f *FullMatrix) isOperator() {}

// BatchShape returns the operator's leading (batch) axes.
func (f *FullMatrix) BatchShape() ndarray.Shape { return f.batch.Clone() }

// Dim returns the matrix size n.
func (f *FullMatrix) Dim() int { return f.n }

// Shape returns BatchShape + [n, n].
func (f *FullMatrix) Shape() ndarray.Shape { return operatorShape(f.batch, f.n) }

// ToDense materializes the batched matrix as stored.
// Complexity: O(batch * n²).
func (f *FullMatrix) ToDense() *ndarray.NDArray {
	return mustArray(ndarray.New(f.Shape(), f.mat))
}

// MatVec computes y = A·x per broadcast batch element.
// Errors: ErrNilOperand, ErrShapeMismatch, ndarray.ErrIncompatibleShapes.
// Complexity: O(batch * n²).
func (f *FullMatrix) MatVec(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := splitEvent(x, f.n)
	if err != nil {
		return nil, linopErrorf(opMatVec, err)
	}
	batch, err := ndarray.BroadcastShapes(f.batch, lead)
	if err != nil {
		return nil, linopErrorf(opMatVec, err)
	}

	xd := x.Data()
	nn := f.n * f.n
	out := make([]float64, batch.Size()*f.n)
	_ = walkPairs(batch, f.batch, lead, func(pos, opBlock, xBlock int) error {
		mb := f.mat[opBlock*nn : (opBlock+1)*nn]
		xb := xd[xBlock*f.n : (xBlock+1)*f.n]
		ob := out[pos*f.n : (pos+1)*f.n]
		var i, j int
		var acc float64
		for i = 0; i < f.n; i++ {
			acc = 0
			for j = 0; j < f.n; j++ {
				acc += mb[i*f.n+j] * xb[j]
			}
			ob[i] = acc
		}

		return nil
	})

	return mustArray(ndarray.New(appendEvent(batch, f.n), out)), nil
}

// factored holds one block's packed LU factors; built lazily per Solve call
// so a block broadcast across many positions is factored exactly once.
type factored struct {
	lu  []float64
	piv []int
}

// Solve computes x = A⁻¹·y per broadcast batch element via LU with partial
// pivoting and two triangular substitutions.
// Errors: ErrNilOperand, ErrShapeMismatch, ndarray.ErrIncompatibleShapes,
// ErrSingular (an elimination pivot magnitude ≤ ε).
// Complexity: O(blocks * n³ + batch * n²).
func (f *FullMatrix) Solve(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := splitEvent(y, f.n)
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}
	batch, err := ndarray.BroadcastShapes(f.batch, lead)
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}

	yd := y.Data()
	nn := f.n * f.n
	out := make([]float64, batch.Size()*f.n)
	factors := make([]*factored, f.batch.Size())
	err = walkPairs(batch, f.batch, lead, func(pos, opBlock, yBlock int) error {
		fac := factors[opBlock]
		if fac == nil {
			lu, piv, ferr := luFactor(f.mat[opBlock*nn:(opBlock+1)*nn], f.n, f.eps)
			if ferr != nil {
				return fmt.Errorf("batch %d: %w", pos, ferr)
			}
			fac = &factored{lu: lu, piv: piv}
			factors[opBlock] = fac
		}
		luSolve(fac.lu, fac.piv, f.n, yd[yBlock*f.n:(yBlock+1)*f.n], out[pos*f.n:(pos+1)*f.n])

		return nil
	})
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}

	return mustArray(ndarray.New(appendEvent(batch, f.n), out)), nil
}

// LogAbsDet returns Σᵢ log|Uᵢᵢ| of the pivoted LU factors per batch element,
// of shape BatchShape. Row exchanges only flip the determinant's sign, which
// the absolute value discards.
// Errors: ErrSingular (an elimination pivot magnitude ≤ ε — reported
// eagerly, never a silent -Inf).
// Complexity: O(batch * n³).
func (f *FullMatrix) LogAbsDet() (*ndarray.NDArray, error) {
	blocks := f.batch.Size()
	nn := f.n * f.n
	out := make([]float64, blocks)
	for b := 0; b < blocks; b++ {
		lu, _, err := luFactor(f.mat[b*nn:(b+1)*nn], f.n, f.eps)
		if err != nil {
			return nil, linopErrorf(opLogAbsDet, err)
		}
		out[b] = luLogAbsDet(lu, f.n)
	}

	return mustArray(ndarray.New(f.batch.Clone(), out)), nil
}
