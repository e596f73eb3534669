package explain

import (
	"fmt"

	"github.com/katalvlaran/whitebox/matrix"
)

const (
	opScoreDocument = "ScoreDocument"
	opSignOf        = "SignOf"
	opSigns         = "Signs"
)

// ScoreDocument computes relevance = sign · 1[row > 0] · pattern.
//
// Only the presence of a term matters, not its TF-IDF magnitude, so the
// ranking depends solely on which pattern-weighted terms the document holds.
// The result stores an entry exactly where row has a strictly positive value.
//
// Errors:
//   - ErrShapeMismatch when len(pattern) != row.Dim.
//   - ErrInvalidArgument for a sign outside {−1,+1}, a malformed row or a
//     negative feature value.
//
// Complexity:
//   - Time O(nnz(row)), Space O(nnz(row)).
func ScoreDocument(row matrix.SparseVector, sign Sign, pattern []float64) (Relevance, error) {
	if !sign.Valid() {
		return Relevance{}, explainErrorf(opScoreDocument, ErrInvalidArgument, fmt.Errorf("sign %v", sign))
	}
	if err := row.Validate(); err != nil {
		return Relevance{}, explainErrorf(opScoreDocument, ErrInvalidArgument, err)
	}
	if len(pattern) != row.Dim {
		return Relevance{}, explainErrorf(opScoreDocument, ErrShapeMismatch,
			fmt.Errorf("pattern has %d terms, row %d", len(pattern), row.Dim))
	}

	s := float64(sign)
	rel := Relevance{
		Dim:     row.Dim,
		Indices: make([]int, 0, row.Nnz()),
		Values:  make([]float64, 0, row.Nnz()),
	}
	for k, j := range row.Indices {
		v := row.Values[k]
		if v < 0 {
			return Relevance{}, explainErrorf(opScoreDocument, ErrInvalidArgument,
				fmt.Errorf("term %d: %w", j, matrix.ErrNegativeEntry))
		}
		if v == 0 {
			continue // explicit zero: term absent
		}
		rel.Indices = append(rel.Indices, j)
		rel.Values = append(rel.Values, s*pattern[j])
	}

	return rel, nil
}

// argmax returns the first index of the largest value.
func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}

	return best
}

// SignOf returns Positive when the predicted (argmax, first index wins ties)
// class equals positive, Negative otherwise.
// Errors: ErrInvalidArgument for empty probs or positive out of range.
func SignOf(probs []float64, positive int) (Sign, error) {
	if len(probs) == 0 || positive < 0 || positive >= len(probs) {
		return 0, explainErrorf(opSignOf, ErrInvalidArgument,
			fmt.Errorf("positive class %d of %d", positive, len(probs)))
	}
	if argmax(probs) == positive {
		return Positive, nil
	}

	return Negative, nil
}

// Signs applies SignOf to every row of P.
func Signs(P *matrix.Dense, positive int) ([]Sign, error) {
	if err := matrix.ValidateDense(P); err != nil {
		return nil, explainErrorf(opSigns, ErrInvalidArgument, err)
	}
	out := make([]Sign, P.Rows())
	for i := range out {
		row, err := P.Row(i)
		if err != nil {
			return nil, explainErrorf(opSigns, ErrInvalidArgument, err)
		}
		if out[i], err = SignOf(row, positive); err != nil {
			return nil, err
		}
	}

	return out, nil
}
