// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops (statistics, scaling).
//   - Keep all loops deterministic and cache-friendly on flat row-major buffers.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Public API uses these via thin wrappers (impl_statistics.go, api.go).
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Row slices are handed to gonum/floats so the inner loops stay vectorizable.
//   - No hidden allocations beyond the output; O(r*c) or O(nnz) time and space.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opBroadcastSubCols = "broadcastSubCols"
	opScaleCols        = "scaleCols"
	opScaleColsCSR     = "scaleColsCSR"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewBroadcastSubCols(X *Dense, colMeans []float64) (*Dense, error) {
	if err := ValidateDense(X); err != nil {
		return nil, matrixErrorf(opBroadcastSubCols, err)
	}
	if len(colMeans) != X.c {
		return nil, matrixErrorf(opBroadcastSubCols, ErrDimensionMismatch)
	}
	out := &Dense{r: X.r, c: X.c, data: make([]float64, len(X.data))}

	var i, base int
	for i = 0; i < X.r; i++ { // deterministic row order
		base = i * X.c
		floats.SubTo(out.data[base:base+X.c], X.data[base:base+X.c], colMeans)
	}

	return out, nil
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
// Non-finite products are rejected (finite-only policy).
func ewScaleCols(X *Dense, scale []float64) (*Dense, error) {
	if err := ValidateDense(X); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	if len(scale) != X.c {
		return nil, matrixErrorf(opScaleCols, ErrDimensionMismatch)
	}
	out := &Dense{r: X.r, c: X.c, data: make([]float64, len(X.data))}

	var i, base int
	for i = 0; i < X.r; i++ {
		base = i * X.c
		floats.MulTo(out.data[base:base+X.c], X.data[base:base+X.c], scale)
	}
	if err := ValidateFinite(out.data); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}

	return out, nil
}

// ewScaleColsCSR computes out[i,j] = X[i,j] * scale[j] on stored entries only,
// so the sparsity structure of X is preserved exactly (zeros stay zero).
// Time: O(nnz). Space: O(nnz) for the new values; structure is shared.
func ewScaleColsCSR(X *CSR, scale []float64) (*CSR, error) {
	if err := ValidateCSR(X); err != nil {
		return nil, matrixErrorf(opScaleColsCSR, err)
	}
	if len(scale) != X.c {
		return nil, matrixErrorf(opScaleColsCSR, ErrDimensionMismatch)
	}
	data := make([]float64, len(X.data))
	var k int
	for k = 0; k < len(X.data); k++ { // flat walk over stored entries
		data[k] = X.data[k] * scale[X.indices[k]]
		if math.IsNaN(data[k]) || math.IsInf(data[k], 0) {
			return nil, matrixErrorf(opScaleColsCSR, fmt.Errorf("col %d: %w", X.indices[k], ErrNaNInf))
		}
	}

	return X.withData(data), nil
}
