// SPDX-License-Identifier: MIT
// Package linop: Diagonal operator.
//
// A Diagonal operator stores only the diagonal of each n×n matrix, so every
// kernel is a single O(n) pass per batch element: multiply for MatVec,
// guarded divide for Solve, Σ log|d| for LogAbsDet.

package linop

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nbc/ndarray"
)

// Diagonal is a batch of diagonal n×n matrices, parameterized by an array of
// diagonal entries of shape Bshape + [n].
type Diagonal struct {
	diag  []float64     // flat parameter blocks, Bshape.Size() * n entries
	batch ndarray.Shape // leading axes of the parameter array
	n     int           // matrix size
	eps   float64       // singularity tolerance
}

// NewDiagonal builds a Diagonal operator from its diagonal entries.
// Stage 1 (Validate): diag non-nil, rank ≥ 1 (the trailing axis is n).
// Stage 2 (Prepare): copy the flat entries; split batch axes from n.
// Errors: ErrNilOperand, ErrInvalidShape (rank 0 — no event axis to read n from).
// Complexity: O(size of diag).
func NewDiagonal(diag *ndarray.NDArray, opts ...Option) (*Diagonal, error) {
	if diag == nil {
		return nil, linopErrorf("NewDiagonal", ErrNilOperand)
	}
	shape := diag.Shape()
	if len(shape) < 1 {
		return nil, fmt.Errorf("NewDiagonal: rank-0 parameter, need at least a diagonal axis: %w", ErrInvalidShape)
	}
	o := gatherOptions(opts...)

	return &Diagonal{
		diag:  diag.Data(),
		batch: shape[:len(shape)-1].Clone(),
		n:     shape[len(shape)-1],
		eps:   o.eps,
	}, nil
}

func (d *Diagonal) isOperator() {}

// BatchShape returns the operator's leading (batch) axes.
func (d *Diagonal) BatchShape() ndarray.Shape { return d.batch.Clone() }

// Dim returns the matrix size n.
func (d *Diagonal) Dim() int { return d.n }

// Shape returns BatchShape + [n, n].
func (d *Diagonal) Shape() ndarray.Shape { return operatorShape(d.batch, d.n) }

// ToDense materializes the batched diagonal matrix, zero-filling every
// off-diagonal entry.
// Complexity: O(batch * n²).
func (d *Diagonal) ToDense() *ndarray.NDArray {
	blocks := d.batch.Size()
	out := make([]float64, blocks*d.n*d.n)
	var b, i int
	for b = 0; b < blocks; b++ {
		for i = 0; i < d.n; i++ {
			out[(b*d.n+i)*d.n+i] = d.diag[b*d.n+i]
		}
	}

	return mustArray(ndarray.New(d.Shape(), out))
}

// MatVec computes y[..., i] = d[..., i] * x[..., i] over the broadcast batch.
// Errors: ErrNilOperand, ErrShapeMismatch (trailing axis ≠ n),
// ndarray.ErrIncompatibleShapes (leading axes irreconcilable).
// Complexity: O(batch * n).
func (d *Diagonal) MatVec(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := splitEvent(x, d.n)
	if err != nil {
		return nil, linopErrorf(opMatVec, err)
	}
	batch, err := ndarray.BroadcastShapes(d.batch, lead)
	if err != nil {
		return nil, linopErrorf(opMatVec, err)
	}

	xd := x.Data()
	out := make([]float64, batch.Size()*d.n)
	_ = walkPairs(batch, d.batch, lead, func(pos, opBlock, xBlock int) error {
		db := d.diag[opBlock*d.n : (opBlock+1)*d.n]
		xb := xd[xBlock*d.n : (xBlock+1)*d.n]
		ob := out[pos*d.n : (pos+1)*d.n]
		for i := 0; i < d.n; i++ {
			ob[i] = db[i] * xb[i]
		}

		return nil
	})

	return mustArray(ndarray.New(appendEvent(batch, d.n), out)), nil
}

// Solve computes x[..., i] = y[..., i] / d[..., i] over the broadcast batch.
// Errors: ErrNilOperand, ErrShapeMismatch, ndarray.ErrIncompatibleShapes,
// ErrSingular (some |d| ≤ ε — reported eagerly, never a silent ±Inf).
// Complexity: O(batch * n).
func (d *Diagonal) Solve(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := splitEvent(y, d.n)
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}
	batch, err := ndarray.BroadcastShapes(d.batch, lead)
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}

	yd := y.Data()
	out := make([]float64, batch.Size()*d.n)
	err = walkPairs(batch, d.batch, lead, func(pos, opBlock, yBlock int) error {
		db := d.diag[opBlock*d.n : (opBlock+1)*d.n]
		yb := yd[yBlock*d.n : (yBlock+1)*d.n]
		ob := out[pos*d.n : (pos+1)*d.n]
		for i := 0; i < d.n; i++ {
			if math.Abs(db[i]) <= d.eps {
				return fmt.Errorf("batch %d: diagonal entry %d: %w", pos, i, ErrSingular)
			}
			ob[i] = yb[i] / db[i]
		}

		return nil
	})
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}

	return mustArray(ndarray.New(appendEvent(batch, d.n), out)), nil
}

// LogAbsDet returns Σᵢ log|d[..., i]| per batch element, of shape BatchShape.
// Errors: ErrSingular (some |d| ≤ ε).
// Complexity: O(batch * n).
func (d *Diagonal) LogAbsDet() (*ndarray.NDArray, error) {
	blocks := d.batch.Size()
	out := make([]float64, blocks)
	var b, i int
	var v, sum float64
	for b = 0; b < blocks; b++ {
		sum = 0
		for i = 0; i < d.n; i++ {
			v = d.diag[b*d.n+i]
			if math.Abs(v) <= d.eps {
				return nil, fmt.Errorf("%s: batch %d: diagonal entry %d: %w", opLogAbsDet, b, i, ErrSingular)
			}
			sum += math.Log(math.Abs(v))
		}
		out[b] = sum
	}

	return mustArray(ndarray.New(d.batch.Clone(), out)), nil
}
