// SPDX-License-Identifier: MIT
// Package linop: LowerTriangular operator.
//
// A LowerTriangular operator stores a dense (…, n, n) parameter array but
// reads only the lower triangle (diagonal included); strictly-upper entries
// are ignored, and ToDense zero-fills them. Invertibility reduces to every
// diagonal entry being non-zero within ε, and Solve is a single forward
// substitution — no factorization needed.

package linop

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nbc/ndarray"
)

// LowerTriangular is a batch of lower-triangular n×n matrices.
type LowerTriangular struct {
	mat   []float64     // flat parameter blocks, Bshape.Size() * n*n entries
	batch ndarray.Shape // leading axes of the parameter array
	n     int           // matrix size
	eps   float64       // singularity tolerance
}

// NewLowerTriangular builds a LowerTriangular operator from a batched square
// matrix. Non-square trailing dims are a construction-time error, never
// deferred to call time.
// Errors: ErrNilOperand, ErrInvalidShape (rank < 2, or trailing dims differ).
// Complexity: O(size of m).
func NewLowerTriangular(m *ndarray.NDArray, opts ...Option) (*LowerTriangular, error) {
	batch, n, data, err := squareParams("NewLowerTriangular", m)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	return &LowerTriangular{mat: data, batch: batch, n: n, eps: o.eps}, nil
}

// squareParams validates a batched square parameter array and splits it into
// batch axes, matrix size and flat data. Shared by the two dense variants.
func squareParams(tag string, m *ndarray.NDArray) (ndarray.Shape, int, []float64, error) {
	if m == nil {
		return nil, 0, nil, linopErrorf(tag, ErrNilOperand)
	}
	shape := m.Shape()
	if len(shape) < 2 {
		return nil, 0, nil, fmt.Errorf("%s: rank %d parameter, need trailing [n, n] axes: %w",
			tag, len(shape), ErrInvalidShape)
	}
	rows, cols := shape[len(shape)-2], shape[len(shape)-1]
	if rows != cols {
		return nil, 0, nil, fmt.Errorf("%s: trailing dims %d×%d are not square: %w",
			tag, rows, cols, ErrInvalidShape)
	}

	return shape[:len(shape)-2].Clone(), rows, m.Data(), nil
}

func (l *LowerTriangular) isOperator() {}

// BatchShape returns the operator's leading (batch) axes.
func (l *LowerTriangular) BatchShape() ndarray.Shape { return l.batch.Clone() }

// Dim returns the matrix size n.
func (l *LowerTriangular) Dim() int { return l.n }

// Shape returns BatchShape + [n, n].
func (l *LowerTriangular) Shape() ndarray.Shape { return operatorShape(l.batch, l.n) }

// ToDense materializes the batched matrix with the strictly-upper triangle
// zero-filled, whatever the parameter array held there.
// Complexity: O(batch * n²).
func (l *LowerTriangular) ToDense() *ndarray.NDArray {
	blocks := l.batch.Size()
	nn := l.n * l.n
	out := make([]float64, blocks*nn)
	var b, i, j int
	for b = 0; b < blocks; b++ {
		for i = 0; i < l.n; i++ {
			for j = 0; j <= i; j++ { // lower triangle only, diagonal included
				out[b*nn+i*l.n+j] = l.mat[b*nn+i*l.n+j]
			}
		}
	}

	return mustArray(ndarray.New(l.Shape(), out))
}

// MatVec computes y = L·x per broadcast batch element, reading only the
// lower triangle.
// Errors: ErrNilOperand, ErrShapeMismatch, ndarray.ErrIncompatibleShapes.
// Complexity: O(batch * n²).
func (l *LowerTriangular) MatVec(x *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := splitEvent(x, l.n)
	if err != nil {
		return nil, linopErrorf(opMatVec, err)
	}
	batch, err := ndarray.BroadcastShapes(l.batch, lead)
	if err != nil {
		return nil, linopErrorf(opMatVec, err)
	}

	xd := x.Data()
	nn := l.n * l.n
	out := make([]float64, batch.Size()*l.n)
	_ = walkPairs(batch, l.batch, lead, func(pos, opBlock, xBlock int) error {
		mb := l.mat[opBlock*nn : (opBlock+1)*nn]
		xb := xd[xBlock*l.n : (xBlock+1)*l.n]
		ob := out[pos*l.n : (pos+1)*l.n]
		var i, j int
		var acc float64
		for i = 0; i < l.n; i++ {
			acc = 0
			for j = 0; j <= i; j++ {
				acc += mb[i*l.n+j] * xb[j]
			}
			ob[i] = acc
		}

		return nil
	})

	return mustArray(ndarray.New(appendEvent(batch, l.n), out)), nil
}

// Solve computes x = L⁻¹·y per broadcast batch element by forward
// substitution against the lower triangle.
// Errors: ErrNilOperand, ErrShapeMismatch, ndarray.ErrIncompatibleShapes,
// ErrSingular (some diagonal |L[i,i]| ≤ ε).
// Complexity: O(batch * n²).
func (l *LowerTriangular) Solve(y *ndarray.NDArray) (*ndarray.NDArray, error) {
	lead, err := splitEvent(y, l.n)
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}
	batch, err := ndarray.BroadcastShapes(l.batch, lead)
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}

	yd := y.Data()
	nn := l.n * l.n
	out := make([]float64, batch.Size()*l.n)
	err = walkPairs(batch, l.batch, lead, func(pos, opBlock, yBlock int) error {
		mb := l.mat[opBlock*nn : (opBlock+1)*nn]
		yb := yd[yBlock*l.n : (yBlock+1)*l.n]
		ob := out[pos*l.n : (pos+1)*l.n]
		var i, k int
		var sum, pivot float64
		for i = 0; i < l.n; i++ {
			sum = yb[i]
			for k = 0; k < i; k++ {
				sum -= mb[i*l.n+k] * ob[k]
			}
			pivot = mb[i*l.n+i]
			if math.Abs(pivot) <= l.eps {
				return fmt.Errorf("batch %d: diagonal entry %d: %w", pos, i, ErrSingular)
			}
			ob[i] = sum / pivot
		}

		return nil
	})
	if err != nil {
		return nil, linopErrorf(opSolve, err)
	}

	return mustArray(ndarray.New(appendEvent(batch, l.n), out)), nil
}

// LogAbsDet returns Σᵢ log|L[..., i, i]| per batch element, of shape
// BatchShape — the determinant of a triangular matrix is its diagonal product.
// Errors: ErrSingular (some diagonal |L[i,i]| ≤ ε).
// Complexity: O(batch * n).
func (l *LowerTriangular) LogAbsDet() (*ndarray.NDArray, error) {
	blocks := l.batch.Size()
	nn := l.n * l.n
	out := make([]float64, blocks)
	var b, i int
	var v, sum float64
	for b = 0; b < blocks; b++ {
		sum = 0
		for i = 0; i < l.n; i++ {
			v = l.mat[b*nn+i*l.n+i]
			if math.Abs(v) <= l.eps {
				return nil, fmt.Errorf("%s: batch %d: diagonal entry %d: %w", opLogAbsDet, b, i, ErrSingular)
			}
			sum += math.Log(math.Abs(v))
		}
		out[b] = sum
	}

	return mustArray(ndarray.New(l.batch.Clone(), out)), nil
}
