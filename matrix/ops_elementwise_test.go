// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

// --- ewBroadcastSubCols -------------------------------------------------------

func TestEwBroadcastSubCols(t *testing.T) {
	t.Parallel()

	X := MustDenseRows(t, [][]float64{{1, 2, 3}, {10, 20, 30}})
	got, err := matrix.EwBroadcastSubCols_TestOnly(X, []float64{4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, "[-3, -3, -3]\n[6, 15, 24]\n", got.String())

	_, err = matrix.EwBroadcastSubCols_TestOnly(X, []float64{0, 0})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// --- ewScaleCols --------------------------------------------------------------

func TestEwScaleCols(t *testing.T) {
	t.Parallel()

	X := MustDenseRows(t, [][]float64{{1, 2}, {3, 4}})
	got, err := matrix.EwScaleCols_TestOnly(X, []float64{2, 0.5})
	require.NoError(t, err)
	require.Equal(t, "[2, 1]\n[6, 2]\n", got.String())

	_, err = matrix.EwScaleCols_TestOnly(X, []float64{math.Inf(1), 1})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.EwScaleCols_TestOnly(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// --- ewScaleColsCSR -----------------------------------------------------------

func TestEwScaleColsCSR_SharesStructure(t *testing.T) {
	t.Parallel()

	X := MustCSRDense(t, [][]float64{{0, 2}, {3, 0}})
	got, err := matrix.EwScaleColsCSR_TestOnly(X, []float64{-1, 10})
	require.NoError(t, err)
	require.Equal(t, X.Nnz(), got.Nnz())
	require.Equal(t, "[0, 20]\n[-3, 0]\n", got.ToDense().String())

	// Input values are untouched.
	require.Equal(t, "[0, 2]\n[3, 0]\n", X.ToDense().String())
}

func TestEwScaleColsCSR_Errors(t *testing.T) {
	t.Parallel()

	X := MustCSRDense(t, [][]float64{{1, 2}, {0, 4}})
	_, err := matrix.EwScaleColsCSR_TestOnly(X, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.EwScaleColsCSR_TestOnly(X, []float64{math.Inf(1), 1})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
