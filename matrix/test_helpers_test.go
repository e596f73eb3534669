// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

// epsTight is the tolerance for results that differ only by summation order.
const epsTight = 1e-12

// MustDenseRows builds a *Dense from literal rows or fails the test.
func MustDenseRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	d, err := matrix.NewDenseRows(rows)
	require.NoError(tb, err)

	return d
}

// MustCSRDense builds a CSR from a dense literal, storing only non-zero cells.
func MustCSRDense(tb testing.TB, rows [][]float64) *matrix.CSR {
	tb.Helper()
	require.NotEmpty(tb, rows)
	cols := len(rows[0])
	indptr := []int{0}
	var indices []int
	var data []float64
	for _, row := range rows {
		require.Len(tb, row, cols)
		for j, v := range row {
			if v != 0 {
				indices = append(indices, j)
				data = append(data, v)
			}
		}
		indptr = append(indptr, len(indices))
	}
	X, err := matrix.NewCSR(len(rows), cols, indptr, indices, data)
	require.NoError(tb, err)

	return X
}

// randomSparse fills an r×c CSR with ~density non-negative entries.
// Deterministic for a given seed.
func randomSparse(tb testing.TB, r, c int, density float64, seed int64) *matrix.CSR {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			if rng.Float64() < density {
				rows[i][j] = rng.Float64()
			}
		}
	}

	return MustCSRDense(tb, rows)
}

// sliceClose asserts |got[i]-want[i]| ≤ tol element-wise.
func sliceClose(tb testing.TB, got, want []float64, tol float64) {
	tb.Helper()
	require.Len(tb, got, len(want))
	for i := range want {
		require.InDeltaf(tb, want[i], got[i], tol, "index %d", i)
	}
}

// denseColumn extracts column j through the public accessor.
func denseColumn(tb testing.TB, d *matrix.Dense, j int) []float64 {
	tb.Helper()
	col, err := d.Col(j)
	require.NoError(tb, err)

	return col
}

// popMeanVar is a naive reference implementation for cross-checking kernels.
func popMeanVar(x []float64) (float64, float64) {
	var mean, ss float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}

	return mean, ss / float64(len(x))
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
