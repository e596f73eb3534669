package explain

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/whitebox/matrix"
)

const opEstimatePattern = "EstimatePattern"

// EstimatePattern computes one global pattern vector per class:
//
//	Pattern[c] = Zᵗ[:,c] · S
//
// where Z is P with z-scored columns and S is X with columns divided by
// their population standard deviation (no centering).
//
// Implementation:
//   - Stage 1: validate shapes (same row count, ≥ 2 classes) and data
//     contracts (P on the simplex, X non-negative).
//   - Stage 2: scale predictions, then features. Both complete before any
//     projection starts (strict two-phase barrier).
//   - Stage 3: project every class independently. With one worker this is
//     a single PᵗX product; otherwise classes are spread over an errgroup
//     bounded by WithWorkers. Each goroutine owns its output row.
//
// Behavior highlights:
//   - Never returns NaN: zero-variance prediction columns fail with
//     *DegenerateColumnError{Source: "predictions"}.
//   - Zero-variance feature columns follow WithFeaturePolicy.
//   - Inputs are not modified; the result is invariant (up to summation
//     order) to a joint row permutation of (P, X).
//
// Errors:
//   - ErrShapeMismatch, ErrDegenerateColumn, ErrInvalidArgument.
//
// Complexity:
//   - Time O(n·C + nnz·C + d), Space O(nnz + C·d).
func EstimatePattern(predictions *matrix.Dense, features *matrix.CSR, opts ...Option) (*Pattern, error) {
	o := gatherOptions(opts...)

	// Stage 1: shapes.
	if predictions == nil || features == nil {
		return nil, explainErrorf(opEstimatePattern, ErrInvalidArgument, matrix.ErrNilMatrix)
	}
	if predictions.Rows() != features.Rows() {
		return nil, explainErrorf(opEstimatePattern, ErrShapeMismatch,
			fmt.Errorf("predictions have %d rows, features %d", predictions.Rows(), features.Rows()))
	}

	// Stage 2: scaling barrier.
	Z, classStds, err := scalePredictions(predictions, o.eps)
	if err != nil {
		return nil, err
	}
	S, featureStds, err := scaleFeatures(features, o.featurePolicy)
	if err != nil {
		return nil, err
	}

	// Stage 3: projection.
	W, err := project(Z, S, o.workers)
	if err != nil {
		return nil, explainErrorf(opEstimatePattern, ErrShapeMismatch, err)
	}

	return &Pattern{weights: W, featureStds: featureStds, classStds: classStds}, nil
}

// project computes ZᵗS, one class per task.
func project(Z *matrix.Dense, S *matrix.CSR, workers int) (*matrix.Dense, error) {
	classes, d := Z.Cols(), S.Cols()
	if workers <= 1 || classes == 1 {
		return matrix.MulTransposeCSR(Z, S)
	}

	rows := make([][]float64, classes)
	var g errgroup.Group
	g.SetLimit(workers)
	for c := 0; c < classes; c++ {
		c := c
		g.Go(func() error {
			col, err := Z.Col(c)
			if err != nil {
				return err
			}
			rows[c], err = matrix.VecMulCSR(col, S)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flat := make([]float64, 0, classes*d)
	for _, r := range rows {
		flat = append(flat, r...)
	}

	return matrix.NewDenseFrom(classes, d, flat)
}
