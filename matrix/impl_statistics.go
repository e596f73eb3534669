// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics needed by pattern estimation: population
//     moments, z-scoring of dense columns, and unit-variance scaling of sparse
//     columns without centering.
//   - Keep tight loops centralized in ew* where it improves reuse and consistency.
//
// Exposed API (see api.go for facades):
//   - ColumnMoments(X)                 -> (means, variances)    // population (÷n)
//   - StandardizeColumns(X)            -> (Z, means, stds)      // zero mean, unit variance
//   - CSRColumnMoments(X)              -> (means, variances)    // implicit zeros included
//   - ScaleColumnsUnitVariance(X, keep) -> (Y, stds)            // ÷std, NO centering
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops; two-pass moments for accuracy.
//   - Sparse kernels touch stored entries only: O(nnz + cols).
//
// Notes:
//   - Variances are population variances (divide by n, not n-1).
//   - Degenerate columns (variance ≤ VarianceFloor) are never divided through:
//     dense standardization reports them; sparse scaling either reports them or
//     leaves them unscaled, as selected by the caller.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// VarianceFloor is the largest population variance still treated as zero.
// Columns at or below it are degenerate: dividing by their std would blow up.
const VarianceFloor = 1e-20

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnMoments            = "ColumnMoments"
	opStandardizeColumns       = "StandardizeColumns"
	opCSRColumnMoments         = "CSRColumnMoments"
	opScaleColumnsUnitVariance = "ScaleColumnsUnitVariance"
)

// columnMoments returns per-column population mean and variance of X.
// Implementation:
//   - Stage 1: Validate X.
//   - Stage 2: For each column, copy it out (mat.Col over a no-copy view) and
//     hand it to stat.PopMeanVariance.
//
// Complexity:
//   - Time O(r*c), Space O(r) scratch + O(c) results.
func columnMoments(X *Dense) ([]float64, []float64, error) {
	if err := ValidateDense(X); err != nil {
		return nil, nil, matrixErrorf(opColumnMoments, err)
	}
	means := make([]float64, X.c)
	vars := make([]float64, X.c)
	col := make([]float64, X.r) // reused scratch column

	var j int
	for j = 0; j < X.c; j++ { // deterministic column order
		mat.Col(col, j, X.asGonum())
		means[j], vars[j] = stat.PopMeanVariance(col, nil)
	}

	return means, vars, nil
}

// standardizeColumns z-scores every column: Z[i,j] = (X[i,j] - mean_j) / std_j.
// Implementation:
//   - Stage 1: population moments per column.
//   - Stage 2: reject degenerate columns (variance ≤ VarianceFloor) with a
//     *ColumnError wrapping ErrZeroVariance; the first such column is reported.
//   - Stage 3: Z = (X - mean) ⊙ (1/std) via ewBroadcastSubCols + ewScaleCols.
//
// Behavior highlights:
//   - Never emits NaN/Inf: a constant column is an error, not a NaN column.
//   - Each output column has mean 0 and population variance 1 (up to rounding).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, *ColumnError{ErrZeroVariance}.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func standardizeColumns(X *Dense) (*Dense, []float64, []float64, error) {
	means, vars, err := columnMoments(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}

	stds := make([]float64, X.c)
	inv := make([]float64, X.c)
	var j int
	for j = 0; j < X.c; j++ {
		if vars[j] <= VarianceFloor {
			return nil, nil, nil, &ColumnError{Op: opStandardizeColumns, Column: j, Err: ErrZeroVariance}
		}
		stds[j] = math.Sqrt(vars[j])
		inv[j] = 1.0 / stds[j]
	}

	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}
	Z, err := ewScaleCols(Xc, inv)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opStandardizeColumns, err)
	}

	return Z, means, stds, nil
}

// csrColumnMoments returns per-column population mean and variance of a sparse
// matrix, counting the implicit zeros.
// Implementation:
//   - Stage 1: sum stored entries per column → mean_j = sum_j / n.
//   - Stage 2: accumulate Σ(x - mean_j)² over stored entries and add
//     (n - nnz_j)·mean_j² for the implicit zeros (exact two-pass form).
//
// Complexity:
//   - Time O(nnz + c), Space O(c).
func csrColumnMoments(X *CSR) ([]float64, []float64, error) {
	if err := ValidateCSR(X); err != nil {
		return nil, nil, matrixErrorf(opCSRColumnMoments, err)
	}
	n := float64(X.r)
	means := make([]float64, X.c)
	vars := make([]float64, X.c)
	counts := make([]int, X.c)

	var k, j int
	// Stage 1: column sums and stored-entry counts.
	for k = 0; k < len(X.data); k++ {
		means[X.indices[k]] += X.data[k]
		counts[X.indices[k]]++
	}
	floats.Scale(1/n, means)

	// Stage 2: centered sum of squares, stored entries first.
	var d float64
	for k = 0; k < len(X.data); k++ {
		j = X.indices[k]
		d = X.data[k] - means[j]
		vars[j] += d * d
	}
	for j = 0; j < X.c; j++ {
		vars[j] += float64(X.r-counts[j]) * means[j] * means[j] // implicit zeros
		vars[j] /= n
	}

	return means, vars, nil
}

// scaleColumnsUnitVariance divides every column by its population standard
// deviation WITHOUT subtracting the mean, so stored zeros remain zero and the
// CSR structure is shared with the input.
// Implementation:
//   - Stage 1: population moments per column (implicit zeros included).
//   - Stage 2: build 1/std factors; degenerate columns either fail with a
//     *ColumnError wrapping ErrZeroVariance (keepDegenerate=false) or keep a
//     factor of 1 and a reported std of 1 (keepDegenerate=true).
//   - Stage 3: scale stored entries via ewScaleColsCSR.
//
// Behavior highlights:
//   - Sparsity pattern is preserved exactly.
//   - Idempotent up to rounding on non-degenerate columns: a scaled column has
//     population variance 1, so scaling again divides by 1.
//
// Errors:
//   - ErrNilMatrix, *ColumnError{ErrZeroVariance} (when keepDegenerate=false).
//
// Complexity:
//   - Time O(nnz + c), Space O(nnz + c).
func scaleColumnsUnitVariance(X *CSR, keepDegenerate bool) (*CSR, []float64, error) {
	_, vars, err := csrColumnMoments(X)
	if err != nil {
		return nil, nil, matrixErrorf(opScaleColumnsUnitVariance, err)
	}

	stds := make([]float64, X.c)
	inv := make([]float64, X.c)
	var j int
	for j = 0; j < X.c; j++ {
		if vars[j] <= VarianceFloor {
			if !keepDegenerate {
				return nil, nil, &ColumnError{Op: opScaleColumnsUnitVariance, Column: j, Err: ErrZeroVariance}
			}
			stds[j], inv[j] = 1, 1 // leave the column untouched
			continue
		}
		stds[j] = math.Sqrt(vars[j])
		inv[j] = 1.0 / stds[j]
	}

	Y, err := ewScaleColsCSR(X, inv)
	if err != nil {
		return nil, nil, matrixErrorf(opScaleColumnsUnitVariance, err)
	}

	return Y, stds, nil
}
