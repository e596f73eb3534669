package explain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/whitebox/matrix"
)

const (
	opScalePredictions = "scalePredictions"
	opScaleFeatures    = "scaleFeatures"
)

// validatePredictions checks the probability-simplex contract of P.
// Implementation:
//   - Stage 1: non-nil, at least two class columns.
//   - Stage 2: per row, entries within [−eps, 1+eps] and |Σ−1| ≤ eps.
//
// Errors:
//   - ErrInvalidArgument (nil, off-simplex row), ErrShapeMismatch (< 2 columns).
//
// Complexity:
//   - Time O(n·C), Space O(C).
func validatePredictions(P *matrix.Dense, eps float64) error {
	if err := matrix.ValidateDense(P); err != nil {
		return explainErrorf(opScalePredictions, ErrInvalidArgument, err)
	}
	if P.Cols() < 2 {
		return explainErrorf(opScalePredictions, ErrShapeMismatch,
			fmt.Errorf("predictions need at least 2 class columns, got %d", P.Cols()))
	}

	var i int
	for i = 0; i < P.Rows(); i++ {
		row, err := P.Row(i)
		if err != nil {
			return explainErrorf(opScalePredictions, ErrInvalidArgument, err)
		}
		if floats.Min(row) < -eps || floats.Max(row) > 1+eps {
			return explainErrorf(opScalePredictions, ErrInvalidArgument,
				fmt.Errorf("row %d: probability outside [0,1]", i))
		}
		if sum := floats.Sum(row); math.Abs(sum-1) > eps {
			return explainErrorf(opScalePredictions, ErrInvalidArgument,
				fmt.Errorf("row %d: probabilities sum to %g", i, sum))
		}
	}

	return nil
}

// scalePredictions z-scores every class column of P (population variance).
// A zero-variance class column is always a *DegenerateColumnError.
func scalePredictions(P *matrix.Dense, eps float64) (*matrix.Dense, []float64, error) {
	if err := validatePredictions(P, eps); err != nil {
		return nil, nil, err
	}
	Z, _, stds, err := matrix.StandardizeColumns(P)
	if err != nil {
		return nil, nil, degenerateOr(opScalePredictions, SourcePredictions, err)
	}

	return Z, stds, nil
}

// scaleFeatures divides every term column of X by its population std,
// WITHOUT mean-centering, so the sparsity pattern of X is preserved.
// Zero-variance columns follow the FeaturePolicy.
func scaleFeatures(X *matrix.CSR, policy FeaturePolicy) (*matrix.CSR, []float64, error) {
	if err := matrix.ValidateCSR(X); err != nil {
		return nil, nil, explainErrorf(opScaleFeatures, ErrInvalidArgument, err)
	}
	if err := matrix.ValidateNonNegative(X); err != nil {
		return nil, nil, explainErrorf(opScaleFeatures, ErrInvalidArgument, err)
	}
	Y, stds, err := matrix.ScaleColumnsUnitVariance(X, policy == KeepDegenerate)
	if err != nil {
		return nil, nil, degenerateOr(opScaleFeatures, SourceFeatures, err)
	}

	return Y, stds, nil
}

// degenerateOr maps a matrix zero-variance failure to *DegenerateColumnError
// and everything else to ErrInvalidArgument.
func degenerateOr(op, source string, err error) error {
	var ce *matrix.ColumnError
	if errors.As(err, &ce) && errors.Is(ce.Err, matrix.ErrZeroVariance) {
		return &DegenerateColumnError{Source: source, Column: ce.Column, Err: err}
	}

	return explainErrorf(op, ErrInvalidArgument, err)
}
