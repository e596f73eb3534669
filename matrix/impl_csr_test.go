// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

func TestNewCSR_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    int
		cols    int
		indptr  []int
		indices []int
		data    []float64
		wantErr error
	}{
		{"zero rows", 0, 2, []int{0}, nil, nil, matrix.ErrInvalidDimensions},
		{"short indptr", 2, 2, []int{0, 1}, []int{0}, []float64{1}, matrix.ErrDimensionMismatch},
		{"indices/data mismatch", 1, 2, []int{0, 1}, []int{0}, nil, matrix.ErrDimensionMismatch},
		{"indptr not starting at 0", 1, 2, []int{1, 1}, []int{0}, []float64{1}, matrix.ErrMalformedSparse},
		{"decreasing indptr", 2, 3, []int{0, 2, 1}, []int{0, 1}, []float64{1, 1}, matrix.ErrMalformedSparse},
		{"unsorted row", 1, 3, []int{0, 2}, []int{2, 1}, []float64{1, 1}, matrix.ErrMalformedSparse},
		{"duplicate index", 1, 3, []int{0, 2}, []int{1, 1}, []float64{1, 1}, matrix.ErrMalformedSparse},
		{"index out of range", 1, 2, []int{0, 1}, []int{2}, []float64{1}, matrix.ErrMalformedSparse},
		{"NaN value", 1, 2, []int{0, 1}, []int{0}, []float64{math.NaN()}, matrix.ErrNaNInf},
		{"ok", 2, 3, []int{0, 1, 3}, []int{2, 0, 1}, []float64{1, 2, 3}, nil},
		{"ok empty rows", 2, 3, []int{0, 0, 0}, nil, nil, nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			X, err := matrix.NewCSR(tc.rows, tc.cols, tc.indptr, tc.indices, tc.data)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, X)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.rows, X.Rows())
			require.Equal(t, tc.cols, X.Cols())
			require.Equal(t, len(tc.data), X.Nnz())
		})
	}
}

func TestCSR_AccessorsAndOwnership(t *testing.T) {
	t.Parallel()

	indptr := []int{0, 1, 3}
	indices := []int{2, 0, 1}
	data := []float64{1, 2, 3}
	X, err := matrix.NewCSR(2, 3, indptr, indices, data)
	require.NoError(t, err)
	data[0] = 100 // must not leak

	v, err := X.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	v, err = X.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v) // implicit zero
	_, err = X.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.Equal(t, 1, X.RowNnz(0))
	require.Equal(t, 2, X.RowNnz(1))
	require.Equal(t, 0, X.RowNnz(7))

	row, err := X.Row(1)
	require.NoError(t, err)
	require.Equal(t, 3, row.Dim)
	require.Equal(t, []int{0, 1}, row.Indices)
	row.Values[0] = -5 // copy, not a view
	v, _ = X.At(1, 0)
	require.Equal(t, 2.0, v)

	_, err = X.Row(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	D := X.ToDense()
	require.Equal(t, "[0, 0, 1]\n[2, 3, 0]\n", D.String())

	C := X.Clone()
	require.Equal(t, X.ToDense().String(), C.ToDense().String())
}

func TestCSRFromRows(t *testing.T) {
	t.Parallel()

	r0, err := matrix.NewSparseVector(4, []int{1, 3}, []float64{0.5, 0.25})
	require.NoError(t, err)
	r1 := matrix.SparseVector{Dim: 4} // empty document row

	X, err := matrix.CSRFromRows(4, []matrix.SparseVector{r0, r1})
	require.NoError(t, err)
	require.Equal(t, 2, X.Rows())
	require.Equal(t, 2, X.Nnz())
	require.Equal(t, 0, X.RowNnz(1))

	_, err = matrix.CSRFromRows(5, []matrix.SparseVector{r0})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.CSRFromRows(4, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	bad := matrix.SparseVector{Dim: 4, Indices: []int{2, 1}, Values: []float64{1, 1}}
	_, err = matrix.CSRFromRows(4, []matrix.SparseVector{bad})
	require.ErrorIs(t, err, matrix.ErrMalformedSparse)
}
