package explain

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/whitebox/matrix"
)

const (
	opNewExplainer = "NewExplainer"
	opExplain      = "Explainer.Explain"
	opScoreCorpus  = "ScoreCorpus"
)

// Explainer binds a Pattern to a scoring policy. It caches the pattern rows
// it needs and is safe for concurrent use.
type Explainer struct {
	rows [][]float64 // pattern rows by class, read-only
	opts Options
}

// NewExplainer validates the class configuration against p.
// Errors: ErrInvalidArgument for a nil pattern or a positive/reference class
// outside [0, p.Classes()).
func NewExplainer(p *Pattern, opts ...Option) (*Explainer, error) {
	if p == nil {
		return nil, explainErrorf(opNewExplainer, ErrInvalidArgument, fmt.Errorf("nil pattern"))
	}
	o := gatherOptions(opts...)
	if o.positiveClass >= p.Classes() || o.referenceClass >= p.Classes() {
		return nil, explainErrorf(opNewExplainer, ErrInvalidArgument,
			fmt.Errorf("class (positive %d, reference %d) with %d classes", o.positiveClass, o.referenceClass, p.Classes()))
	}

	rows := make([][]float64, p.Classes())
	for c := range rows {
		row, err := p.Class(c)
		if err != nil {
			return nil, err
		}
		rows[c] = row
	}

	return &Explainer{rows: rows, opts: o}, nil
}

// Classes returns the number of classes of the bound pattern.
func (e *Explainer) Classes() int { return len(e.rows) }

// Explain scores one document given its feature row and class probabilities.
// Implementation:
//   - Stage 1: predicted class = argmax(probs); sign = SignOf(probs, positive).
//   - Stage 2: pick the pattern row (reference class with the document sign,
//     or the predicted class with sign +1 under WithPredictedClassPattern).
//   - Stage 3: ScoreDocument, then TopKTokens.
//
// The returned Doc is -1; ScoreCorpus fills in the row index.
func (e *Explainer) Explain(row matrix.SparseVector, probs []float64, k int) (DocumentExplanation, error) {
	if len(probs) != len(e.rows) {
		return DocumentExplanation{}, explainErrorf(opExplain, ErrShapeMismatch,
			fmt.Errorf("%d probabilities for %d classes", len(probs), len(e.rows)))
	}
	sign, err := SignOf(probs, e.opts.positiveClass)
	if err != nil {
		return DocumentExplanation{}, err
	}
	predicted := argmax(probs)

	class, applied := e.opts.referenceClass, sign
	if e.opts.predictedClass {
		class, applied = predicted, Positive
	}

	rel, err := ScoreDocument(row, applied, e.rows[class])
	if err != nil {
		return DocumentExplanation{}, err
	}
	tokens, err := TopKTokens(rel, k, e.optionList()...)
	if err != nil {
		return DocumentExplanation{}, err
	}
	scores := make([]float64, len(tokens))
	for i, j := range tokens {
		scores[i] = e.rows[class][j] * float64(applied)
	}

	return DocumentExplanation{
		Doc:            -1,
		Predicted:      predicted,
		PredictionSign: sign,
		Sign:           applied,
		Class:          class,
		Tokens:         tokens,
		Scores:         scores,
		Relevance:      rel,
	}, nil
}

// optionList re-exposes the top-k policy for TopKTokens.
func (e *Explainer) optionList() []Option {
	if e.opts.partialTopK {
		return []Option{WithPartialTopK()}
	}

	return nil
}

// ScoreCorpus explains every row of X against the class probabilities in P.
//
// Implementation:
//   - Stage 1: validate X/P row counts and the class count.
//   - Stage 2: fan documents out over an errgroup bounded by WithWorkers;
//     every worker reads X, P and the pattern and writes only its own slot.
//   - Stage 3: return explanations in document order.
//
// The first failing document cancels the remaining work; its error is
// wrapped with the document index. ctx cancellation is honoured between
// documents.
//
// Complexity:
//   - Time O(nnz + Σ m_i log m_i), Space O(nnz).
func ScoreCorpus(ctx context.Context, X *matrix.CSR, P *matrix.Dense, p *Pattern, k int, opts ...Option) ([]DocumentExplanation, error) {
	if err := matrix.ValidateSameRows(X, P); err != nil {
		kind := ErrShapeMismatch
		if errors.Is(err, matrix.ErrNilMatrix) {
			kind = ErrInvalidArgument
		}
		return nil, explainErrorf(opScoreCorpus, kind, err)
	}
	ex, err := NewExplainer(p, opts...)
	if err != nil {
		return nil, err
	}
	if X.Cols() != p.Dim() {
		return nil, explainErrorf(opScoreCorpus, ErrShapeMismatch,
			fmt.Errorf("features have %d terms, pattern %d", X.Cols(), p.Dim()))
	}

	out := make([]DocumentExplanation, X.Rows())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ex.opts.workers)
	for i := 0; i < X.Rows(); i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Stored entries bound the present terms; skip the row copy when
			// the document cannot satisfy k.
			if n := X.RowNnz(i); n < k && !ex.opts.partialTopK {
				return explainErrorf(opScoreCorpus, ErrInvalidArgument,
					fmt.Errorf("document %d has %d stored terms, k=%d", i, n, k))
			}
			row, err := X.Row(i)
			if err != nil {
				return err
			}
			probs, err := P.Row(i)
			if err != nil {
				return err
			}
			doc, err := ex.Explain(row, probs, k)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			doc.Doc = i
			out[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
