// Package matrix is the numeric substrate for pattern-based explanations.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix for prediction probabilities and
//     per-class patterns, with bounds-checked accessors and gonum interop.
//   - CSR: a compressed-sparse-row matrix for non-negative bag-of-words /
//     TF-IDF features; read-only after construction.
//   - SparseVector: one document row (sorted indices + values).
//   - Column statistics: population moments, z-scoring of dense columns and
//     unit-variance scaling of sparse columns WITHOUT centering, so zero
//     entries stay zero.
//   - Products: yᵗX and PᵗX for dense weights against sparse features.
//
// Every kernel returns a fresh value; inputs are never mutated. Errors are
// package sentinels (errors.go) wrapped with an operation tag.
//
// See the examples in this package for usage patterns.
package matrix
