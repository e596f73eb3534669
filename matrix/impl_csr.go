// SPDX-License-Identifier: MIT

// Package matrix - CSR storage (compressed sparse rows).
//
// Purpose:
//   - Hold high-dimensional, mostly-zero feature matrices (bag-of-words,
//     TF-IDF) without densifying them.
//   - Stay read-only after construction: every kernel that "changes" a CSR
//     returns a new one, so shared feature matrices are safe across goroutines.
//
// Layout:
//   - indptr has length rows+1; row i occupies [indptr[i], indptr[i+1]).
//   - indices are strictly increasing inside each row and lie in [0, cols).
//   - data holds the matching values; explicit zeros are allowed.
//
// Complexity quicksheet:
//   - NewCSR: O(rows + nnz) validation; At: O(log nnz_row); Row: O(nnz_row).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opNewCSR      = "NewCSR"
	opCSRFromRows = "CSRFromRows"
	opCSRAt       = "CSR.At"
	opCSRRow      = "CSR.Row"
)

// CSR is an immutable compressed-sparse-row matrix of float64 values.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []float64
}

// NewCSR validates and copies the three CSR arrays.
// Implementation:
//   - Stage 1: validate shape (rows>0, cols>0) and array lengths.
//   - Stage 2: validate indptr monotonicity and per-row sorted indices.
//   - Stage 3: reject NaN/±Inf values.
//   - Stage 4: copy so the caller keeps ownership of its slices.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrMalformedSparse, ErrNaNInf.
//
// Complexity:
//   - Time O(rows + nnz), Space O(rows + nnz).
func NewCSR(rows, cols int, indptr, indices []int, data []float64) (*CSR, error) {
	// Stage 1: shape and lengths.
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewCSR, ErrInvalidDimensions)
	}
	if len(indptr) != rows+1 || len(indices) != len(data) {
		return nil, matrixErrorf(opNewCSR, ErrDimensionMismatch)
	}
	if indptr[0] != 0 || indptr[rows] != len(indices) {
		return nil, matrixErrorf(opNewCSR, ErrMalformedSparse)
	}

	// Stage 2: structure, row by row.
	var i, k int
	for i = 0; i < rows; i++ {
		if indptr[i+1] < indptr[i] {
			return nil, matrixErrorf(opNewCSR, fmt.Errorf("row %d: %w", i, ErrMalformedSparse))
		}
		prev := -1
		for k = indptr[i]; k < indptr[i+1]; k++ {
			if indices[k] <= prev || indices[k] >= cols {
				return nil, matrixErrorf(opNewCSR, fmt.Errorf("row %d: %w", i, ErrMalformedSparse))
			}
			// Stage 3: numeric policy.
			if math.IsNaN(data[k]) || math.IsInf(data[k], 0) {
				return nil, matrixErrorf(opNewCSR, fmt.Errorf("row %d col %d: %w", i, indices[k], ErrNaNInf))
			}
			prev = indices[k]
		}
	}

	// Stage 4: copy inputs.
	return &CSR{
		r:       rows,
		c:       cols,
		indptr:  append([]int(nil), indptr...),
		indices: append([]int(nil), indices...),
		data:    append([]float64(nil), data...),
	}, nil
}

// CSRFromRows stacks sparse rows of equal dimension into a CSR matrix.
// Errors: ErrInvalidDimensions (no rows), ErrDimensionMismatch (row Dim != cols),
// plus any SparseVector.Validate failure.
func CSRFromRows(cols int, rows []SparseVector) (*CSR, error) {
	if len(rows) == 0 || cols <= 0 {
		return nil, matrixErrorf(opCSRFromRows, ErrInvalidDimensions)
	}
	nnz := 0
	for i, row := range rows {
		if row.Dim != cols {
			return nil, matrixErrorf(opCSRFromRows, fmt.Errorf("row %d: %w", i, ErrDimensionMismatch))
		}
		if err := row.Validate(); err != nil {
			return nil, matrixErrorf(opCSRFromRows, fmt.Errorf("row %d: %w", i, err))
		}
		nnz += row.Nnz()
	}

	out := &CSR{
		r:       len(rows),
		c:       cols,
		indptr:  make([]int, len(rows)+1),
		indices: make([]int, 0, nnz),
		data:    make([]float64, 0, nnz),
	}
	for i, row := range rows {
		out.indices = append(out.indices, row.Indices...)
		out.data = append(out.data, row.Values...)
		out.indptr[i+1] = len(out.indices)
	}

	return out, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *CSR) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *CSR) Cols() int { return m.c }

// Nnz returns the number of stored entries. Complexity: O(1).
func (m *CSR) Nnz() int { return len(m.data) }

// RowNnz returns the number of stored entries in row i (0 for invalid i).
func (m *CSR) RowNnz(i int) int {
	if i < 0 || i >= m.r {
		return 0
	}

	return m.indptr[i+1] - m.indptr[i]
}

// rowSlices returns the shared (no-copy) index/value windows of row i.
// Callers inside the package must treat them as read-only.
func (m *CSR) rowSlices(i int) ([]int, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]

	return m.indices[lo:hi], m.data[lo:hi]
}

// At returns X[i,j] (0 for entries not stored).
// Errors: ErrOutOfRange. Complexity: O(log nnz_row).
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, matrixErrorf(opCSRAt, ErrOutOfRange)
	}
	idx, vals := m.rowSlices(i)
	k := sort.SearchInts(idx, j)
	if k < len(idx) && idx[k] == j {
		return vals[k], nil
	}

	return 0, nil
}

// Row returns an independent copy of row i as a SparseVector of dimension Cols().
// Errors: ErrOutOfRange. Complexity: O(nnz_row).
func (m *CSR) Row(i int) (SparseVector, error) {
	if i < 0 || i >= m.r {
		return SparseVector{}, matrixErrorf(opCSRRow, ErrOutOfRange)
	}
	idx, vals := m.rowSlices(i)

	return SparseVector{
		Dim:     m.c,
		Indices: append([]int(nil), idx...),
		Values:  append([]float64(nil), vals...),
	}, nil
}

// Clone returns a deep copy.
func (m *CSR) Clone() *CSR {
	return &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  append([]int(nil), m.indptr...),
		indices: append([]int(nil), m.indices...),
		data:    append([]float64(nil), m.data...),
	}
}

// withData returns a CSR sharing the (immutable) structure of m with new values.
// len(data) must equal m.Nnz(); callers in this package guarantee it.
func (m *CSR) withData(data []float64) *CSR {
	return &CSR{r: m.r, c: m.c, indptr: m.indptr, indices: m.indices, data: data}
}

// ToDense materializes the matrix. Intended for tests and small inputs only.
func (m *CSR) ToDense() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, m.r*m.c)}
	var i, k int
	for i = 0; i < m.r; i++ {
		for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
			out.data[i*m.c+m.indices[k]] = m.data[k]
		}
	}

	return out
}
