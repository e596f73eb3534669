// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

// ------------------------------
// ColumnMoments / StandardizeColumns
// ------------------------------

func TestColumnMoments_MatchesReference(t *testing.T) {
	t.Parallel()

	X := MustDenseRows(t, [][]float64{
		{0.9, 0.1, 3},
		{0.2, 0.8, 3},
		{0.7, 0.3, 4},
	})
	means, vars, err := matrix.ColumnMoments(X)
	require.NoError(t, err)

	var j int
	for j = 0; j < X.Cols(); j++ {
		m, v := popMeanVar(denseColumn(t, X, j))
		require.InDelta(t, m, means[j], epsTight)
		require.InDelta(t, v, vars[j], epsTight)
	}
}

func TestStandardizeColumns_ZeroMeanUnitVariance(t *testing.T) {
	t.Parallel()

	X := MustDenseRows(t, [][]float64{
		{0.9, 0.1},
		{0.2, 0.8},
		{0.7, 0.3},
		{0.4, 0.6},
	})
	Z, means, stds, err := matrix.StandardizeColumns(X)
	require.NoError(t, err)
	require.Len(t, means, 2)
	require.Len(t, stds, 2)

	var j int
	for j = 0; j < Z.Cols(); j++ {
		m, v := popMeanVar(denseColumn(t, Z, j))
		require.InDelta(t, 0.0, m, 1e-12, "column %d mean", j)
		require.InDelta(t, 1.0, v, 1e-12, "column %d variance", j)
	}

	// Binary probabilities: the two standardized columns are exact negations.
	c0, c1 := denseColumn(t, Z, 0), denseColumn(t, Z, 1)
	for i := range c0 {
		require.InDelta(t, -c0[i], c1[i], 1e-12)
	}
}

func TestStandardizeColumns_ZeroVariance(t *testing.T) {
	t.Parallel()

	X := MustDenseRows(t, [][]float64{{0.5, 1}, {0.5, 2}})
	_, _, _, err := matrix.StandardizeColumns(X)
	require.ErrorIs(t, err, matrix.ErrZeroVariance)

	var ce *matrix.ColumnError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, 0, ce.Column)
}

func TestStandardizeColumns_Nil(t *testing.T) {
	t.Parallel()

	_, _, _, err := matrix.StandardizeColumns(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// ------------------------------
// CSRColumnMoments / ScaleColumnsUnitVariance
// ------------------------------

func TestCSRColumnMoments_IncludesImplicitZeros(t *testing.T) {
	t.Parallel()

	rows := [][]float64{
		{1, 0, 0, 2},
		{0, 0, 3, 2},
		{1, 0, 0, 2},
		{0, 0, 5, 2},
	}
	X := MustCSRDense(t, rows)
	D := MustDenseRows(t, rows)

	means, vars, err := matrix.CSRColumnMoments(X)
	require.NoError(t, err)
	wantMeans, wantVars, err := matrix.ColumnMoments(D)
	require.NoError(t, err)

	sliceClose(t, means, wantMeans, epsTight)
	sliceClose(t, vars, wantVars, epsTight)
	require.Equal(t, 0.0, vars[1]) // all-zero column
	require.Equal(t, 0.0, vars[3]) // constant column
}

func TestScaleColumnsUnitVariance_PreservesSparsity(t *testing.T) {
	t.Parallel()

	X := randomSparse(t, 40, 25, 0.2, 7)
	Y, stds, err := matrix.ScaleColumnsUnitVariance(X, true)
	require.NoError(t, err)
	require.Equal(t, X.Nnz(), Y.Nnz())
	require.Len(t, stds, X.Cols())

	var i, j int
	var x, y float64
	for i = 0; i < X.Rows(); i++ {
		for j = 0; j < X.Cols(); j++ {
			x, _ = X.At(i, j)
			y, _ = Y.At(i, j)
			if x == 0 {
				require.Equal(t, 0.0, y, "(%d,%d) must stay zero", i, j)
				continue
			}
			require.True(t, isFinite(y))
			require.InDelta(t, x/stds[j], y, epsTight)
		}
	}
}

func TestScaleColumnsUnitVariance_UnitVarianceAndIdempotent(t *testing.T) {
	t.Parallel()

	X := MustCSRDense(t, [][]float64{
		{0.3, 0, 1},
		{0, 0.4, 0},
		{0.6, 0.4, 2},
	})
	Y, _, err := matrix.ScaleColumnsUnitVariance(X, false)
	require.NoError(t, err)

	_, vars, err := matrix.CSRColumnMoments(Y)
	require.NoError(t, err)
	sliceClose(t, vars, []float64{1, 1, 1}, 1e-12)

	Y2, stds2, err := matrix.ScaleColumnsUnitVariance(Y, false)
	require.NoError(t, err)
	sliceClose(t, stds2, []float64{1, 1, 1}, 1e-12)
	CompareCSRClose(t, Y, Y2, 1e-12)
}

func TestScaleColumnsUnitVariance_DegeneratePolicy(t *testing.T) {
	t.Parallel()

	// Column 1 is all zeros, column 2 is constant.
	X := MustCSRDense(t, [][]float64{
		{1, 0, 3},
		{0, 0, 3},
	})

	_, _, err := matrix.ScaleColumnsUnitVariance(X, false)
	require.ErrorIs(t, err, matrix.ErrZeroVariance)
	var ce *matrix.ColumnError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, 1, ce.Column) // first degenerate column wins

	Y, stds, err := matrix.ScaleColumnsUnitVariance(X, true)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1, 1}, stds)
	v, _ := Y.At(0, 2)
	require.Equal(t, 3.0, v) // untouched
	v, _ = Y.At(0, 0)
	require.Equal(t, 2.0, v) // 1 / 0.5
}

// CompareCSRClose asserts two sparse matrices agree entry-wise within tol.
func CompareCSRClose(tb testing.TB, a, b *matrix.CSR, tol float64) {
	tb.Helper()
	require.Equal(tb, a.Rows(), b.Rows())
	require.Equal(tb, a.Cols(), b.Cols())
	var i, j int
	var x, y float64
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			x, _ = a.At(i, j)
			y, _ = b.At(i, j)
			require.InDeltaf(tb, x, y, tol, "(%d,%d)", i, j)
		}
	}
}
