// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating nil/shape/sign checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    wrap uniformly and callers can still match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including typed nil
// pointers hidden inside the interface.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *CSR:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateDense ensures d is non-nil and has a well-formed buffer.
// Complexity: O(1).
func ValidateDense(d *Dense) error {
	if d == nil {
		return validatorErrorf("ValidateDense", ErrNilMatrix)
	}
	if d.r <= 0 || d.c <= 0 || len(d.data) != d.r*d.c {
		return validatorErrorf("ValidateDense", ErrInvalidDimensions)
	}

	return nil
}

// ValidateCSR ensures x is non-nil. Structure is validated at construction.
// Complexity: O(1).
func ValidateCSR(x *CSR) error {
	if x == nil {
		return validatorErrorf("ValidateCSR", ErrNilMatrix)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	// Disallow nil vectors to avoid subtle bugs in MatVec-like routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameRows: Composite NotNil(a) → NotNil(b) → a.Rows == b.Rows.
// Works across storages (Dense predictions against CSR features).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameRows(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameRows", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSameRows", err)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameRows", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf entries.
// Complexity: O(len(x)).
func ValidateFinite(x []float64) error {
	for k, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFinite", fmt.Errorf("entry %d: %w", k, ErrNaNInf))
		}
	}

	return nil
}

// ValidateNonNegative ensures every stored entry of x is ≥ 0.
// The first offending (row, col) is reported.
// Complexity: O(nnz).
func ValidateNonNegative(x *CSR) error {
	if err := ValidateCSR(x); err != nil {
		return validatorErrorf("ValidateNonNegative", err)
	}
	var i, k int
	for i = 0; i < x.r; i++ {
		for k = x.indptr[i]; k < x.indptr[i+1]; k++ {
			if x.data[k] < 0 {
				return validatorErrorf("ValidateNonNegative",
					fmt.Errorf("row %d col %d: %w", i, x.indices[k], ErrNegativeEntry))
			}
		}
	}

	return nil
}
