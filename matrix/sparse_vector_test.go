// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

func TestNewSparseVector(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewSparseVector(0, nil, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewSparseVector(3, []int{0, 1}, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewSparseVector(3, []int{1, 0}, []float64{1, 1})
	require.ErrorIs(t, err, matrix.ErrMalformedSparse)

	_, err = matrix.NewSparseVector(3, []int{3}, []float64{1})
	require.ErrorIs(t, err, matrix.ErrMalformedSparse)

	_, err = matrix.NewSparseVector(3, []int{0}, []float64{math.Inf(1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	idx := []int{0, 2}
	sv, err := matrix.NewSparseVector(3, idx, []float64{1.5, -2})
	require.NoError(t, err)
	idx[0] = 1 // caller slice is copied
	require.Equal(t, []int{0, 2}, sv.Indices)
	require.Equal(t, 2, sv.Nnz())
}

func TestSparseVector_AtToDense(t *testing.T) {
	t.Parallel()

	sv, err := matrix.NewSparseVector(4, []int{1, 3}, []float64{2, 5})
	require.NoError(t, err)

	v, err := sv.At(3)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
	v, err = sv.At(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
	_, err = sv.At(4)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.Equal(t, []float64{0, 2, 0, 5}, sv.ToDense())
}
