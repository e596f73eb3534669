// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opNewSparseVector = "NewSparseVector"
	opSparseAt        = "SparseVector.At"
)

// SparseVector represents one row of a sparse matrix: Indices are strictly
// increasing column positions in [0, Dim) and Values are the matching entries.
// A value of the zero SparseVector{} type is an empty vector of dimension 0.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NewSparseVector validates and copies (indices, values) into a SparseVector.
//
// Errors:
//   - ErrInvalidDimensions when dim <= 0.
//   - ErrDimensionMismatch when len(indices) != len(values).
//   - ErrMalformedSparse when indices are unsorted, duplicated or out of range.
//   - ErrNaNInf for non-finite values.
func NewSparseVector(dim int, indices []int, values []float64) (SparseVector, error) {
	if dim <= 0 {
		return SparseVector{}, matrixErrorf(opNewSparseVector, ErrInvalidDimensions)
	}
	sv := SparseVector{
		Dim:     dim,
		Indices: append([]int(nil), indices...),
		Values:  append([]float64(nil), values...),
	}
	if err := sv.Validate(); err != nil {
		return SparseVector{}, matrixErrorf(opNewSparseVector, err)
	}

	return sv, nil
}

// Validate checks the structural invariants of sv. It is useful for vectors
// assembled as struct literals outside this package.
func (sv SparseVector) Validate() error {
	if sv.Dim < 0 {
		return ErrInvalidDimensions
	}
	if len(sv.Indices) != len(sv.Values) {
		return ErrDimensionMismatch
	}
	prev := -1
	for k, idx := range sv.Indices {
		if idx <= prev || idx >= sv.Dim {
			return fmt.Errorf("entry %d (index %d): %w", k, idx, ErrMalformedSparse)
		}
		if math.IsNaN(sv.Values[k]) || math.IsInf(sv.Values[k], 0) {
			return fmt.Errorf("entry %d (index %d): %w", k, idx, ErrNaNInf)
		}
		prev = idx
	}

	return nil
}

// Nnz returns the number of stored entries.
func (sv SparseVector) Nnz() int { return len(sv.Indices) }

// At returns the value at position i (0 when i is not stored).
// Errors: ErrOutOfRange.
// Complexity: O(log nnz).
func (sv SparseVector) At(i int) (float64, error) {
	if i < 0 || i >= sv.Dim {
		return 0, matrixErrorf(opSparseAt, ErrOutOfRange)
	}
	k := sort.SearchInts(sv.Indices, i)
	if k < len(sv.Indices) && sv.Indices[k] == i {
		return sv.Values[k], nil
	}

	return 0, nil
}

// ToDense expands sv into a fresh slice of length Dim.
func (sv SparseVector) ToDense() []float64 {
	out := make([]float64, sv.Dim)
	for k, idx := range sv.Indices {
		out[idx] = sv.Values[k]
	}

	return out
}
