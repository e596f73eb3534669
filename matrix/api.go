// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Public facades over the statistics and element-wise kernels.
//   - Facades are thin: validation, error wrapping and documentation live
//     with the kernels (impl_statistics.go, ops_elementwise.go).

package matrix

// ColumnMoments returns the population mean and variance of every column of X.
func ColumnMoments(X *Dense) (means, variances []float64, err error) {
	return columnMoments(X)
}

// StandardizeColumns returns a z-scored copy of X (zero mean, unit population
// variance per column) together with the means and standard deviations used.
// A zero-variance column yields a *ColumnError wrapping ErrZeroVariance.
func StandardizeColumns(X *Dense) (Z *Dense, means, stds []float64, err error) {
	return standardizeColumns(X)
}

// CSRColumnMoments returns the population mean and variance of every column of
// the sparse matrix X, implicit zeros included.
func CSRColumnMoments(X *CSR) (means, variances []float64, err error) {
	return csrColumnMoments(X)
}

// ScaleColumnsUnitVariance divides every column of X by its population
// standard deviation without centering (sparsity preserved). Zero-variance
// columns are left unscaled when keepDegenerate is true and reported as a
// *ColumnError wrapping ErrZeroVariance otherwise.
func ScaleColumnsUnitVariance(X *CSR, keepDegenerate bool) (Y *CSR, stds []float64, err error) {
	return scaleColumnsUnitVariance(X, keepDegenerate)
}
