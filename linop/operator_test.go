// Package linop_test contains cross-variant contract tests.
package linop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nbc/linop"
	"github.com/katalvlaran/nbc/ndarray"
)

// Compile-time check: every variant satisfies the sealed Operator contract.
var (
	_ linop.Operator = (*linop.Diagonal)(nil)
	_ linop.Operator = (*linop.LowerTriangular)(nil)
	_ linop.Operator = (*linop.FullMatrix)(nil)
)

// TestOperators_StructuredMatVecAgreesWithDense applies each structured
// variant and its own dense materialization to the same two-sided broadcast
// (operator batch (2,1) × input batch (1,3)) and demands identical results:
// structure is an encoding, never a semantic.
func TestOperators_StructuredMatVecAgreesWithDense(t *testing.T) {
	t.Parallel()

	const n = 2
	diag, err := ndarray.New(ndarray.Shape{2, 1, n}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	tri, err := ndarray.New(ndarray.Shape{2, 1, n, n}, []float64{
		1, 0, 2, 3,
		-1, 0, 0.5, 2,
	})
	require.NoError(t, err)
	full, err := ndarray.New(ndarray.Shape{2, 1, n, n}, []float64{
		1, 2, 3, 4,
		0, 1, 1, 0,
	})
	require.NoError(t, err)

	dOp, err := linop.NewDiagonal(diag)
	require.NoError(t, err)
	tOp, err := linop.NewLowerTriangular(tri)
	require.NoError(t, err)
	fOp, err := linop.NewFullMatrix(full)
	require.NoError(t, err)

	// Input batch (1, 3): three event vectors, stretched across the
	// operator's leading batch axis.
	xs, err := ndarray.New(ndarray.Shape{1, 3, n}, []float64{1, 1, 2, -1, 0, 3})
	require.NoError(t, err)

	for name, op := range map[string]linop.Operator{
		"Diagonal":        dOp,
		"LowerTriangular": tOp,
		"FullMatrix":      fOp,
	} {
		t.Run(name, func(t *testing.T) {
			dense, err := linop.NewFullMatrix(op.ToDense())
			require.NoError(t, err)

			want, err := dense.MatVec(xs)
			require.NoError(t, err)
			got, err := op.MatVec(xs)
			require.NoError(t, err)

			assert.True(t, ndarray.Shape{2, 3, n}.Equal(got.Shape()),
				"two-sided broadcast (2,1)×(1,3) must yield batch (2,3)")
			assert.True(t, want.Equal(got, roundTripTol))
		})
	}
}
