package explain

import (
	"fmt"

	"github.com/katalvlaran/whitebox/matrix"
)

// Sign expresses a document's relevance "in favor of the predicted class".
type Sign int8

const (
	Negative Sign = -1
	Positive Sign = +1
)

// Valid reports whether s is one of Negative or Positive.
func (s Sign) Valid() bool { return s == Negative || s == Positive }

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	default:
		return fmt.Sprintf("Sign(%d)", int8(s))
	}
}

// Pattern holds one global explanation vector per class (classes × terms).
// A Pattern is immutable; accessors return copies.
type Pattern struct {
	weights     *matrix.Dense // classes × d
	featureStds []float64     // population std used to scale each term (1 when kept degenerate)
	classStds   []float64     // population std of each prediction column
}

// Classes returns the number of classes.
func (p *Pattern) Classes() int { return p.weights.Rows() }

// Dim returns the number of terms.
func (p *Pattern) Dim() int { return p.weights.Cols() }

// Class returns a copy of the pattern vector of class c.
func (p *Pattern) Class(c int) ([]float64, error) {
	row, err := p.weights.Row(c)
	if err != nil {
		return nil, explainErrorf("Pattern.Class", ErrInvalidArgument, err)
	}

	return row, nil
}

// At returns Pattern[c][j].
func (p *Pattern) At(c, j int) (float64, error) {
	v, err := p.weights.At(c, j)
	if err != nil {
		return 0, explainErrorf("Pattern.At", ErrInvalidArgument, err)
	}

	return v, nil
}

// Matrix returns an independent copy of the full classes × terms matrix.
func (p *Pattern) Matrix() *matrix.Dense { return p.weights.Clone() }

// FeatureStds returns the per-term population standard deviations used
// during feature scaling.
func (p *Pattern) FeatureStds() []float64 { return append([]float64(nil), p.featureStds...) }

// ClassStds returns the per-class population standard deviations of the
// prediction columns.
func (p *Pattern) ClassStds() []float64 { return append([]float64(nil), p.classStds...) }

// Relevance is a sparse per-document relevance vector of dimension Dim.
// Entries exist exactly at the terms present in the document.
type Relevance struct {
	Dim     int
	Indices []int     // strictly increasing term indices
	Values  []float64 // relevance of each stored term
}

// Nnz returns the number of stored entries.
func (r Relevance) Nnz() int { return len(r.Indices) }

// Vector converts r to a matrix.SparseVector sharing no memory with r.
func (r Relevance) Vector() matrix.SparseVector {
	return matrix.SparseVector{
		Dim:     r.Dim,
		Indices: append([]int(nil), r.Indices...),
		Values:  append([]float64(nil), r.Values...),
	}
}

// DocumentExplanation is the per-document output of an Explainer.
type DocumentExplanation struct {
	Doc            int       // row index in the feature matrix (-1 for ad-hoc rows)
	Predicted      int       // argmax class
	PredictionSign Sign      // +1 iff Predicted is the positive class
	Sign           Sign      // sign applied to the pattern row; Positive under WithPredictedClassPattern
	Class          int       // pattern row used
	Tokens         []int     // top-k term indices, ordered
	Scores         []float64 // relevance of each token, same order
	Relevance      Relevance // full sparse relevance vector
}
