// Package linear adapts a fixed, pre-trained linear classifier to the
// explain package: it turns sparse features into per-class probabilities.
//
// No training happens here. A binary model carries one coefficient row and
// uses the logistic function (class 1 is the "positive" side of the
// decision); a multi-class model carries one row per class and uses softmax.
package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/whitebox/matrix"
)

var (
	// ErrInvalidModel is returned for inconsistent class, coefficient or
	// intercept shapes, and for non-finite coefficients.
	ErrInvalidModel = errors.New("linear: invalid model")

	// ErrFeatureMismatch is returned when features and coefficients disagree
	// on the number of terms.
	ErrFeatureMismatch = errors.New("linear: feature dimension mismatch")
)

// Model is an immutable linear probabilistic classifier.
type Model struct {
	classes   []string
	coef      *mat.Dense // 1×d (binary) or C×d
	intercept []float64  // one per coefficient row
}

// New validates and copies the model parameters.
//
// Errors: ErrInvalidModel when
//   - fewer than two classes are given,
//   - coef has neither 1 row (binary only) nor len(classes) rows,
//   - len(intercept) != coef rows,
//   - any parameter is NaN or ±Inf.
func New(classes []string, coef *mat.Dense, intercept []float64) (*Model, error) {
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 classes, got %d", ErrInvalidModel, len(classes))
	}
	if coef == nil {
		return nil, fmt.Errorf("%w: nil coefficients", ErrInvalidModel)
	}
	r, _ := coef.Dims()
	binary := len(classes) == 2 && r == 1
	if !binary && r != len(classes) {
		return nil, fmt.Errorf("%w: %d coefficient rows for %d classes", ErrInvalidModel, r, len(classes))
	}
	if len(intercept) != r {
		return nil, fmt.Errorf("%w: %d intercepts for %d coefficient rows", ErrInvalidModel, len(intercept), r)
	}
	if err := matrix.ValidateFinite(coef.RawMatrix().Data); err != nil {
		return nil, fmt.Errorf("%w: coefficients: %w", ErrInvalidModel, err)
	}
	if err := matrix.ValidateFinite(intercept); err != nil {
		return nil, fmt.Errorf("%w: intercept: %w", ErrInvalidModel, err)
	}

	return &Model{
		classes:   append([]string(nil), classes...),
		coef:      mat.DenseCopyOf(coef),
		intercept: append([]float64(nil), intercept...),
	}, nil
}

// Classes returns the class names in column order.
func (m *Model) Classes() []string { return append([]string(nil), m.classes...) }

// Features returns the number of terms the model expects.
func (m *Model) Features() int {
	_, d := m.coef.Dims()

	return d
}

// Binary reports whether the model uses a single logistic decision row.
func (m *Model) Binary() bool {
	r, _ := m.coef.Dims()

	return r == 1
}

// Coef returns a copy of the coefficient matrix.
func (m *Model) Coef() *mat.Dense { return mat.DenseCopyOf(m.coef) }

// Decision returns the raw linear scores X·Wᵗ + b (n × rows(W)).
func (m *Model) Decision(X *matrix.CSR) (*matrix.Dense, error) {
	if X == nil {
		return nil, fmt.Errorf("Decision: %w", matrix.ErrNilMatrix)
	}
	if X.Cols() != m.Features() {
		return nil, fmt.Errorf("Decision: %w: features have %d terms, model %d",
			ErrFeatureMismatch, X.Cols(), m.Features())
	}
	S, err := matrix.MulCSRByT(X, m.coef)
	if err != nil {
		return nil, fmt.Errorf("Decision: %w", err)
	}
	g := S.Gonum()
	r, c := g.Dims()
	for i := 0; i < r; i++ {
		floats.Add(g.RawRowView(i), m.intercept[:c])
	}

	return matrix.DenseFromGonum(g)
}

// PredictProba returns an n × C probability matrix whose rows lie on the
// probability simplex.
//
// Implementation:
//   - Stage 1: decision scores via Decision.
//   - Stage 2: binary ⇒ [1−σ(s), σ(s)]; multi-class ⇒ softmax computed as
//     exp(s − logsumexp(s)) for numerical stability.
func (m *Model) PredictProba(X *matrix.CSR) (*matrix.Dense, error) {
	S, err := m.Decision(X)
	if err != nil {
		return nil, err
	}
	n := S.Rows()
	out := make([]float64, 0, n*len(m.classes))
	for i := 0; i < n; i++ {
		s, _ := S.Row(i)
		if m.Binary() {
			p := sigmoid(s[0])
			out = append(out, 1-p, p)
			continue
		}
		lse := floats.LogSumExp(s)
		for _, v := range s {
			out = append(out, math.Exp(v-lse))
		}
	}

	return matrix.NewDenseFrom(n, len(m.classes), out)
}

// Predict returns the argmax class index per row (first index wins ties).
func (m *Model) Predict(X *matrix.CSR) ([]int, error) {
	P, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, P.Rows())
	for i := range out {
		row, _ := P.Row(i)
		out[i] = floats.MaxIdx(row)
	}

	return out, nil
}

// sigmoid is the numerically stable logistic function.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)

	return e / (1 + e)
}
