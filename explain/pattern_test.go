package explain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/whitebox/explain"
	"github.com/katalvlaran/whitebox/matrix"
)

// PatternSuite groups EstimatePattern tests.
type PatternSuite struct {
	suite.Suite
}

func TestPatternSuite(t *testing.T) {
	suite.Run(t, new(PatternSuite))
}

// TestReviewScenario checks the hand-computed two-review example.
func (s *PatternSuite) TestReviewScenario() {
	P, X := reviewFixture(s.T())

	pat, err := explain.EstimatePattern(P, X)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, pat.Classes())
	require.Equal(s.T(), 4, pat.Dim())

	neg, err := pat.Class(0)
	require.NoError(s.T(), err)
	require.InDeltaSlice(s.T(), []float64{2, 0, 0, -2}, neg, 1e-12)

	// "bad" ranks above "movie", which ranks above "great".
	require.Greater(s.T(), neg[termBad], neg[termMovie])
	require.Greater(s.T(), neg[termMovie], neg[termGreat])

	pos, err := pat.Class(1)
	require.NoError(s.T(), err)
	for j := range neg {
		require.InDelta(s.T(), -neg[j], pos[j], 1e-12)
	}

	// Degenerate terms were kept unscaled.
	require.Equal(s.T(), []float64{1, 1, 1, 1}, pat.FeatureStds())
	require.InDeltaSlice(s.T(), []float64{0.4, 0.4}, pat.ClassStds(), 1e-12)
}

// TestShapePerClass checks the output shape on a random 3-class problem.
func (s *PatternSuite) TestShapePerClass() {
	p, x := randomProblem(s.T(), 50, 20, 3, 3)
	pat, err := explain.EstimatePattern(mustDense(s.T(), p), mustCSR(s.T(), x))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, pat.Classes())
	require.Equal(s.T(), 20, pat.Dim())

	M := pat.Matrix()
	for c := 0; c < M.Rows(); c++ {
		row, err := M.Row(c)
		require.NoError(s.T(), err)
		for _, v := range row {
			require.False(s.T(), math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

// TestRowPermutationInvariance permutes (P, X) jointly.
func (s *PatternSuite) TestRowPermutationInvariance() {
	p, x := randomProblem(s.T(), 40, 15, 2, 11)
	base, err := explain.EstimatePattern(mustDense(s.T(), p), mustCSR(s.T(), x))
	require.NoError(s.T(), err)

	// Reverse the row order.
	n := len(p)
	pr := make([][]float64, n)
	xr := make([][]float64, n)
	for i := range p {
		pr[n-1-i], xr[n-1-i] = p[i], x[i]
	}
	perm, err := explain.EstimatePattern(mustDense(s.T(), pr), mustCSR(s.T(), xr))
	require.NoError(s.T(), err)

	for c := 0; c < 2; c++ {
		a, _ := base.Class(c)
		b, _ := perm.Class(c)
		require.InDeltaSlice(s.T(), a, b, 1e-9)
	}
}

// TestWorkersDoNotChangeResult compares the serial and parallel projections.
func (s *PatternSuite) TestWorkersDoNotChangeResult() {
	p, x := randomProblem(s.T(), 60, 30, 4, 5)
	P, X := mustDense(s.T(), p), mustCSR(s.T(), x)

	serial, err := explain.EstimatePattern(P, X, explain.WithWorkers(1))
	require.NoError(s.T(), err)
	parallel, err := explain.EstimatePattern(P, X, explain.WithWorkers(4))
	require.NoError(s.T(), err)

	require.Equal(s.T(), serial.Matrix().String(), parallel.Matrix().String())
}

// TestConstantPredictionColumn must fail, never produce NaN.
func (s *PatternSuite) TestConstantPredictionColumn() {
	P := mustDense(s.T(), [][]float64{{1, 0}, {1, 0}, {1, 0}})
	X := mustCSR(s.T(), [][]float64{{1, 0}, {0, 1}, {1, 1}})

	pat, err := explain.EstimatePattern(P, X)
	require.Nil(s.T(), pat)
	require.ErrorIs(s.T(), err, explain.ErrDegenerateColumn)
	require.ErrorIs(s.T(), err, matrix.ErrZeroVariance)

	var de *explain.DegenerateColumnError
	require.True(s.T(), errors.As(err, &de))
	require.Equal(s.T(), explain.SourcePredictions, de.Source)
	require.Equal(s.T(), 0, de.Column)
}

// TestFeaturePolicyFail reports the first zero-variance term.
func (s *PatternSuite) TestFeaturePolicyFail() {
	P, X := reviewFixture(s.T())

	_, err := explain.EstimatePattern(P, X, explain.WithFeaturePolicy(explain.FailDegenerate))
	var de *explain.DegenerateColumnError
	require.True(s.T(), errors.As(err, &de))
	require.Equal(s.T(), explain.SourceFeatures, de.Source)
	require.Equal(s.T(), termGood, de.Column)
}

// TestContractViolations covers shapes and data contracts.
func (s *PatternSuite) TestContractViolations() {
	P, X := reviewFixture(s.T())
	tests := []struct {
		name    string
		P       *matrix.Dense
		X       *matrix.CSR
		wantErr error
	}{
		{"nil predictions", nil, X, explain.ErrInvalidArgument},
		{"nil features", P, nil, explain.ErrInvalidArgument},
		{"row mismatch", mustDense(s.T(), [][]float64{{0.5, 0.5}}), X, explain.ErrShapeMismatch},
		{"single class", mustDense(s.T(), [][]float64{{1}, {1}}), X, explain.ErrShapeMismatch},
		{"off simplex", mustDense(s.T(), [][]float64{{0.9, 0.2}, {0.1, 0.9}}), X, explain.ErrInvalidArgument},
		{"negative probability", mustDense(s.T(), [][]float64{{1.5, -0.5}, {0.1, 0.9}}), X, explain.ErrInvalidArgument},
		{"negative feature", P, mustCSR(s.T(), [][]float64{{1, -1}, {0, 1}}), explain.ErrInvalidArgument},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := explain.EstimatePattern(tc.P, tc.X)
			require.ErrorIs(s.T(), err, tc.wantErr)
		})
	}
}

// TestSimplexEpsilon relaxes the row-sum tolerance.
func (s *PatternSuite) TestSimplexEpsilon() {
	P := mustDense(s.T(), [][]float64{{0.9, 0.1001}, {0.1, 0.9}})
	X := mustCSR(s.T(), [][]float64{{1, 0}, {0, 1}})

	_, err := explain.EstimatePattern(P, X)
	require.ErrorIs(s.T(), err, explain.ErrInvalidArgument)

	_, err = explain.EstimatePattern(P, X, explain.WithSimplexEpsilon(1e-3))
	require.NoError(s.T(), err)
}

// TestInputsUntouched verifies EstimatePattern does not mutate its inputs.
func (s *PatternSuite) TestInputsUntouched() {
	P, X := reviewFixture(s.T())
	pBefore, xBefore := P.String(), X.ToDense().String()

	_, err := explain.EstimatePattern(P, X)
	require.NoError(s.T(), err)
	require.Equal(s.T(), pBefore, P.String())
	require.Equal(s.T(), xBefore, X.ToDense().String())
}

func TestPatternTopTerms(t *testing.T) {
	P, X := reviewFixture(t)
	pat, err := explain.EstimatePattern(P, X)
	require.NoError(t, err)

	idx, vals, err := pat.TopTerms(0, 3)
	require.NoError(t, err)
	require.Equal(t, termBad, idx[0])
	require.ElementsMatch(t, []int{termGood, termMovie}, idx[1:]) // both ≈ 0
	require.InDelta(t, 2.0, vals[0], 1e-12)

	idx, _, err = pat.TopTerms(1, 10)
	require.NoError(t, err)
	require.Len(t, idx, 4)
	require.Equal(t, termGreat, idx[0])

	_, _, err = pat.TopTerms(2, 1)
	require.ErrorIs(t, err, explain.ErrInvalidArgument)
	_, _, err = pat.TopTerms(0, -1)
	require.ErrorIs(t, err, explain.ErrInvalidArgument)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { explain.WithSimplexEpsilon(-1) })
	require.Panics(t, func() { explain.WithSimplexEpsilon(math.NaN()) })
	require.Panics(t, func() { explain.WithWorkers(-2) })
	require.Panics(t, func() { explain.WithFeaturePolicy(explain.FeaturePolicy(9)) })
	require.Panics(t, func() { explain.WithPositiveClass(-1) })
	require.Panics(t, func() { explain.WithReferenceClass(-1) })
	require.Equal(t, "keep", explain.KeepDegenerate.String())
	require.Equal(t, "fail", explain.FailDegenerate.String())
}
