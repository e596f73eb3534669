package explain_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/matrix"
)

// Vocabulary of the reference scenario.
const (
	termBad = iota
	termGood
	termMovie
	termGreat
)

// mustCSR builds a CSR from dense literal rows, storing non-zero cells only.
func mustCSR(tb testing.TB, rows [][]float64) *matrix.CSR {
	tb.Helper()
	svs := make([]matrix.SparseVector, len(rows))
	for i, row := range rows {
		var idx []int
		var val []float64
		for j, v := range row {
			if v != 0 {
				idx = append(idx, j)
				val = append(val, v)
			}
		}
		sv, err := matrix.NewSparseVector(len(row), idx, val)
		require.NoError(tb, err)
		svs[i] = sv
	}
	X, err := matrix.CSRFromRows(len(rows[0]), svs)
	require.NoError(tb, err)

	return X
}

func mustDense(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	d, err := matrix.NewDenseRows(rows)
	require.NoError(tb, err)

	return d
}

// reviewFixture is doc A "bad bad movie" (neg, 0.9) and doc B "great great
// movie" (pos, 0.9) as raw counts over {bad, good, movie, great}.
func reviewFixture(tb testing.TB) (*matrix.Dense, *matrix.CSR) {
	tb.Helper()
	P := mustDense(tb, [][]float64{
		{0.9, 0.1},
		{0.1, 0.9},
	})
	X := mustCSR(tb, [][]float64{
		{2, 0, 1, 0},
		{0, 0, 1, 2},
	})

	return P, X
}

// randomProblem returns n documents over d terms with C-class probabilities.
func randomProblem(tb testing.TB, n, d, classes int, seed int64) ([][]float64, [][]float64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	P := make([][]float64, n)
	X := make([][]float64, n)
	for i := 0; i < n; i++ {
		P[i] = make([]float64, classes)
		var sum float64
		for c := range P[i] {
			P[i][c] = rng.Float64() + 0.01
			sum += P[i][c]
		}
		for c := range P[i] {
			P[i][c] /= sum
		}
		X[i] = make([]float64, d)
		for j := range X[i] {
			if rng.Float64() < 0.3 {
				X[i][j] = rng.Float64()
			}
		}
	}

	return P, X
}
