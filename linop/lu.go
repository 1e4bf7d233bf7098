// SPDX-License-Identifier: MIT
// Package linop: LU kernel for FullMatrix.
//
// Purpose:
//   - Factor one flat row-major n×n block as P·A = L·U with partial
//     pivoting, packing L (unit diagonal, implicit) and U into one buffer.
//   - Back both FullMatrix.Solve (triangular solves against the factors) and
//     FullMatrix.LogAbsDet (Σ log|U[i,i]|, the log-absolute pivot product).
//
// Determinism & Performance:
//   - Fixed elimination order; the pivot row is always the max-magnitude
//     candidate with the LOWEST index, so ties break deterministically.
//   - Time O(n³), Space O(n²) for the packed factors.
//
// AI-Hints:
//   - Factor once per parameter block and reuse across broadcast positions;
//     the factors are read-only after luFactor returns.

package linop

import "math"

// luFactor computes the packed, partially pivoted factorization of one n×n
// row-major block. The returned lu buffer holds U on and above the diagonal
// and the multipliers of L strictly below it; piv records the row chosen as
// pivot at each elimination step.
// Stage 1 (Prepare): copy the block (input stays immutable).
// Stage 2 (Eliminate): for each column, swap in the max-|·| pivot row, then
// scale and subtract the rows below.
// Errors: ErrSingular when the selected pivot magnitude is ≤ eps.
// Complexity: O(n³).
func luFactor(block []float64, n int, eps float64) ([]float64, []int, error) {
	lu := make([]float64, n*n)
	copy(lu, block)
	piv := make([]int, n)

	var col, row, k, best int
	var mag, bestMag, mult float64
	for col = 0; col < n; col++ {
		// Select the pivot: largest magnitude in this column, lowest index wins ties.
		best, bestMag = col, math.Abs(lu[col*n+col])
		for row = col + 1; row < n; row++ {
			if mag = math.Abs(lu[row*n+col]); mag > bestMag {
				best, bestMag = row, mag
			}
		}
		if bestMag <= eps {
			return nil, nil, ErrSingular
		}
		piv[col] = best
		// Swap the pivot row into place (full rows: L multipliers travel too).
		if best != col {
			for k = 0; k < n; k++ {
				lu[col*n+k], lu[best*n+k] = lu[best*n+k], lu[col*n+k]
			}
		}
		// Eliminate below the pivot, storing multipliers in L's slot.
		for row = col + 1; row < n; row++ {
			mult = lu[row*n+col] / lu[col*n+col]
			lu[row*n+col] = mult
			for k = col + 1; k < n; k++ {
				lu[row*n+k] -= mult * lu[col*n+k]
			}
		}
	}

	return lu, piv, nil
}

// luSolve solves A·x = b for one factored block, writing into x (len n).
// b is read-only; x and b may not alias.
// Stage 1 (Permute): apply the recorded row swaps to b.
// Stage 2 (Forward): solve L·y = P·b (unit diagonal, in place).
// Stage 3 (Backward): solve U·x = y.
// Complexity: O(n²).
func luSolve(lu []float64, piv []int, n int, b, x []float64) {
	copy(x, b)
	var i, k int
	var sum float64
	// Apply the permutation in recording order.
	for i = 0; i < n; i++ {
		if piv[i] != i {
			x[i], x[piv[i]] = x[piv[i]], x[i]
		}
	}
	// Forward substitution against unit-lower L.
	for i = 0; i < n; i++ {
		sum = x[i]
		for k = 0; k < i; k++ {
			sum -= lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// Backward substitution against U (pivots already guarded by luFactor).
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= lu[i*n+k] * x[k]
		}
		x[i] = sum / lu[i*n+i]
	}
}

// luLogAbsDet returns Σ log|U[i,i]| for one factored block: row swaps flip
// only the determinant's sign, which the absolute value discards.
// Complexity: O(n).
func luLogAbsDet(lu []float64, n int) float64 {
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Log(math.Abs(lu[i*n+i]))
	}

	return sum
}
