// SPDX-License-Identifier: MIT

// Package matrix: read-only view implemented by both Dense and CSR.
// This file intentionally contains ONLY the public Matrix interface. Errors
// and storage types live in dedicated files (errors.go, impl_dense.go,
// impl_csr.go, sparse_vector.go).
package matrix

// Matrix is the read-only, bounds-checked view of a two-dimensional float64
// array. Mutation and copying are typed per storage (Dense.Set, Dense.Clone,
// CSR.Clone) so callers never need a type assertion to get their type back.
//
// Complexity notes: Rows and Cols are O(1); At is O(1) for Dense and
// O(log nnz(row)) for CSR.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)
}

var (
	_ Matrix = (*Dense)(nil)
	_ Matrix = (*CSR)(nil)
)
