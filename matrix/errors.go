// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Context is attached with fmt.Errorf("ctx: %w", ErrX)
// at the detection site; callers still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/dimension -> sparse structure -> numeric policy (NaN/Inf, sign)
// -> statistical degeneracy (zero variance).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., a weight vector whose length differs from the row count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, etc.).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMalformedSparse marks a compressed-row structure whose pointers or
	// column indices are inconsistent (non-monotone, unsorted, duplicated,
	// or out of range).
	ErrMalformedSparse = errors.New("matrix: malformed sparse structure")

	// ErrNegativeEntry marks a negative value where the data contract
	// requires non-negative entries (e.g., TF-IDF features).
	ErrNegativeEntry = errors.New("matrix: negative entry")

	// ErrZeroVariance marks a column whose population variance is zero, so it
	// cannot be scaled to unit variance without dividing by zero.
	ErrZeroVariance = errors.New("matrix: zero-variance column")
)

// ColumnError pins a sentinel to the column where it was detected.
// It unwraps to Err so errors.Is(err, ErrZeroVariance) keeps working.
type ColumnError struct {
	Op     string // operation tag, e.g. "StandardizeColumns"
	Column int    // zero-based column index
	Err    error  // underlying sentinel
}

// Error implements error.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: column %d: %v", e.Op, e.Column, e.Err)
}

// Unwrap exposes the sentinel for errors.Is/errors.As.
func (e *ColumnError) Unwrap() error { return e.Err }
