// SPDX-License-Identifier: MIT
// Package matrix provides the products between dense weights and sparse
// features used by pattern estimation and linear scoring. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - VecMulCSR:       yᵗX  (length cols):   one class pattern.
//   - MulTransposeCSR: PᵗX  (classes×cols): all class patterns at once.
//   - MulCSRByT:       XWᵗ  (rows×classes): linear decision scores.
//
// Determinism:
//   - Accumulation always walks rows in ascending order and stored entries in
//     ascending column order, so results are bit-stable for a given input.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ZeroSum is the initial value of every accumulator.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opVecMulCSR       = "VecMulCSR"
	opMulTransposeCSR = "MulTransposeCSR"
	opMulCSRByT       = "MulCSRByT"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// VecMulCSR computes out = yᵗX, i.e. out[j] = Σ_i y[i]·X[i,j].
// Implementation:
//   - Stage 1: validate X non-nil and len(y) == X.Rows().
//   - Stage 2: scatter y[i]·X[i,·] into out row by row (skip y[i] == 0).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz), Space O(cols).
func VecMulCSR(y []float64, X *CSR) ([]float64, error) {
	if err := ValidateCSR(X); err != nil {
		return nil, matrixErrorf(opVecMulCSR, err)
	}
	if err := ValidateVecLen(y, X.r); err != nil {
		return nil, matrixErrorf(opVecMulCSR, err)
	}
	out := make([]float64, X.c)

	var i, k int
	var yi float64
	for i = 0; i < X.r; i++ { // ascending rows
		yi = y[i]
		if yi == 0 {
			continue // no contribution
		}
		for k = X.indptr[i]; k < X.indptr[i+1]; k++ { // ascending columns
			out[X.indices[k]] += yi * X.data[k]
		}
	}

	return out, nil
}

// MulTransposeCSR computes PᵗX for dense P (n×C) and sparse X (n×d),
// returning a C×d Dense whose row c equals VecMulCSR(P[:,c], X).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (row counts differ).
//
// Complexity:
//   - Time O(C·nnz), Space O(C·d).
func MulTransposeCSR(P *Dense, X *CSR) (*Dense, error) {
	if err := ValidateDense(P); err != nil {
		return nil, matrixErrorf(opMulTransposeCSR, err)
	}
	if err := ValidateSameRows(P, X); err != nil {
		return nil, matrixErrorf(opMulTransposeCSR, err)
	}
	out := &Dense{r: P.c, c: X.c, data: make([]float64, P.c*X.c)}

	var i, k, c, base int
	var pic float64
	for i = 0; i < X.r; i++ {
		for c = 0; c < P.c; c++ {
			pic = P.data[i*P.c+c]
			if pic == 0 {
				continue
			}
			base = c * X.c
			for k = X.indptr[i]; k < X.indptr[i+1]; k++ {
				out.data[base+X.indices[k]] += pic * X.data[k]
			}
		}
	}

	return out, nil
}

// MulCSRByT computes X·Wᵗ for sparse X (n×d) and any gonum matrix W (C×d),
// returning an n×C Dense of inner products. W is typically a coefficient
// matrix of a linear model, one row per class.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (W column count != X column count).
//
// Complexity:
//   - Time O(C·nnz), Space O(n·C).
func MulCSRByT(X *CSR, W mat.Matrix) (*Dense, error) {
	if err := ValidateCSR(X); err != nil {
		return nil, matrixErrorf(opMulCSRByT, err)
	}
	if W == nil {
		return nil, matrixErrorf(opMulCSRByT, ErrNilMatrix)
	}
	classes, d := W.Dims()
	if d != X.c || classes == 0 {
		return nil, matrixErrorf(opMulCSRByT, ErrDimensionMismatch)
	}
	out := &Dense{r: X.r, c: classes, data: make([]float64, X.r*classes)}

	var i, k, c int
	var acc float64
	for i = 0; i < X.r; i++ {
		for c = 0; c < classes; c++ {
			acc = ZeroSum
			for k = X.indptr[i]; k < X.indptr[i+1]; k++ {
				acc += X.data[k] * W.At(c, X.indices[k])
			}
			out.data[i*classes+c] = acc
		}
	}

	return out, nil
}
