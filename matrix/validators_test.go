// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

// TestValidateNotNil covers untyped and typed nil matrices.
func TestValidateNotNil(t *testing.T) {
	t.Parallel()

	var typedNil *matrix.Dense
	var sparseNil *matrix.CSR
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(sparseNil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDenseRows(t, [][]float64{{1}})))
	require.NoError(t, matrix.ValidateNotNil(MustCSRDense(t, [][]float64{{1}})))
}

// TestValidateSameRows covers nil inputs, matching and mismatched row counts.
func TestValidateSameRows(t *testing.T) {
	t.Parallel()

	X := MustCSRDense(t, [][]float64{{1, 0}, {0, 1}})
	tests := []struct {
		name    string
		a       *matrix.Dense
		b       *matrix.CSR
		wantErr error
	}{
		{"dense nil", nil, X, matrix.ErrNilMatrix},
		{"sparse nil", MustDenseRows(t, [][]float64{{1}, {2}}), nil, matrix.ErrNilMatrix},
		{"equal rows", MustDenseRows(t, [][]float64{{1}, {2}}), X, nil},
		{"row mismatch", MustDenseRows(t, [][]float64{{1}}), X, matrix.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameRows(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateVecLenFiniteNonNegative(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))

	require.ErrorIs(t, matrix.ValidateFinite([]float64{1, math.NaN()}), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateFinite([]float64{0, -1}))

	neg := MustCSRDense(t, [][]float64{{0, -0.5}})
	require.ErrorIs(t, matrix.ValidateNonNegative(neg), matrix.ErrNegativeEntry)
	require.NoError(t, matrix.ValidateNonNegative(MustCSRDense(t, [][]float64{{0, 0.5}})))
}
