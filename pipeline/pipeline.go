// Package pipeline wires corpus → vectorizer → classifier → explain →
// highlight into one batch run and logs every stage boundary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/whitebox/corpus"
	"github.com/katalvlaran/whitebox/explain"
	"github.com/katalvlaran/whitebox/highlight"
	"github.com/katalvlaran/whitebox/linear"
	"github.com/katalvlaran/whitebox/matrix"
	"github.com/katalvlaran/whitebox/report"
	"github.com/katalvlaran/whitebox/textvec"
	"github.com/katalvlaran/whitebox/vocab"
)

// DefaultTopK is the number of tokens explained per document.
const DefaultTopK = 3

// ErrMismatch is returned when the vectorizer and the model disagree on the
// feature space.
var ErrMismatch = errors.New("pipeline: vectorizer and model mismatch")

// Options configures Explain. The zero value is usable: it explains three
// tokens per document with explain.DefaultPositiveClass as the positive class.
type Options struct {
	TopK          int  // 0 ⇒ DefaultTopK
	PositiveClass *int // class index mapped to sign +1; nil ⇒ explain.DefaultPositiveClass
	Highlight     bool
	Explain       []explain.Option   // forwarded to EstimatePattern and ScoreCorpus
	Logger        logrus.FieldLogger // nil ⇒ logrus.StandardLogger()
}

// Result holds every derived value of one run; nothing in it is shared with
// the inputs.
type Result struct {
	Documents    []corpus.Document
	Classes      []string
	Vocabulary   *vocab.Vocabulary
	Features     *matrix.CSR
	Predictions  *matrix.Dense
	Signs        []explain.Sign
	Pattern      *explain.Pattern
	Explanations []explain.DocumentExplanation
	Tokens       [][]string // resolved Explanations[i].Tokens
	Highlighted  []string   // HTML, only with Options.Highlight
}

// run carries one invocation through its stages.
type run struct {
	ctx      context.Context
	log      logrus.FieldLogger
	opts     Options
	positive int
	vz       *textvec.Vectorizer
	m        *linear.Model
	res      *Result
}

func newRun(ctx context.Context, docs []corpus.Document, model *linear.Model, vz *textvec.Vectorizer, opts Options) (*run, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.TopK == 0 {
		opts.TopK = DefaultTopK
	}
	if model == nil || vz == nil || vz.Vocabulary() == nil {
		return nil, fmt.Errorf("%w: model and fitted vectorizer required", ErrMismatch)
	}
	v := vz.Vocabulary()
	if v.Len() != model.Features() {
		return nil, fmt.Errorf("%w: %d terms vs %d coefficients", ErrMismatch, v.Len(), model.Features())
	}
	positive := explain.DefaultPositiveClass
	if opts.PositiveClass != nil {
		positive = *opts.PositiveClass
	}
	if n := len(model.Classes()); positive < 0 || positive >= n {
		return nil, fmt.Errorf("%w: positive class %d with %d classes", ErrMismatch, positive, n)
	}
	opts.Explain = append([]explain.Option{explain.WithPositiveClass(positive)}, opts.Explain...)

	return &run{
		ctx:      ctx,
		log:      opts.Logger,
		opts:     opts,
		positive: positive,
		vz:       vz,
		m:        model,
		res:      &Result{Documents: docs, Classes: model.Classes(), Vocabulary: v},
	}, nil
}

// stage runs fn unless ctx is done and logs its duration.
func (r *run) stage(name string, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	if err := fn(); err != nil {
		r.log.WithError(err).WithField("stage", name).Error("stage failed")
		return fmt.Errorf("%s: %w", name, err)
	}
	r.log.WithFields(logrus.Fields{"stage": name, "elapsed": time.Since(start)}).Debug("stage done")

	return nil
}

// pattern runs the vectorize, predict and pattern stages.
func (r *run) pattern() error {
	res := r.res
	// Stage 1: features.
	err := r.stage("vectorize", func() (err error) {
		res.Features, err = r.vz.Transform(corpus.Texts(res.Documents))
		return err
	})
	if err != nil {
		return err
	}

	// Stage 2: predictions and signs.
	err = r.stage("predict", func() (err error) {
		if res.Predictions, err = r.m.PredictProba(res.Features); err != nil {
			return err
		}
		res.Signs, err = explain.Signs(res.Predictions, r.positive)
		return err
	})
	if err != nil {
		return err
	}

	// Stage 3: pattern.
	return r.stage("pattern", func() (err error) {
		res.Pattern, err = explain.EstimatePattern(res.Predictions, res.Features, r.opts.Explain...)
		return err
	})
}

// score runs the relevance stage and resolves top tokens to words.
func (r *run) score() error {
	res := r.res
	return r.stage("score", func() (err error) {
		res.Explanations, err = explain.ScoreCorpus(r.ctx, res.Features, res.Predictions, res.Pattern, r.opts.TopK, r.opts.Explain...)
		if err != nil {
			return err
		}
		res.Tokens = make([][]string, len(res.Explanations))
		for i, e := range res.Explanations {
			if res.Tokens[i], err = res.Vocabulary.Resolve(e.Tokens); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *run) done(msg string) {
	r.log.WithFields(logrus.Fields{
		"documents": len(r.res.Documents),
		"terms":     r.res.Vocabulary.Len(),
		"classes":   len(r.res.Classes),
		"nnz":       r.res.Features.Nnz(),
	}).Info(msg)
}

// Pattern runs only the global stages: features, predictions, signs and
// the pattern. Explanations, Tokens and Highlighted stay nil.
func Pattern(ctx context.Context, docs []corpus.Document, model *linear.Model, vz *textvec.Vectorizer, opts Options) (*Result, error) {
	r, err := newRun(ctx, docs, model, vz, opts)
	if err != nil {
		return nil, err
	}
	if err = r.pattern(); err != nil {
		return nil, err
	}
	r.done("pattern estimated")

	return r.res, nil
}

// Explain runs the full flow over docs.
//
// Implementation:
//   - Stage 1: vectorize texts with the model's vectorizer.
//   - Stage 2: predict class probabilities and prediction signs.
//   - Stage 3: estimate the global pattern.
//   - Stage 4: score every document and resolve top tokens to words.
//   - Stage 5: optional HTML highlighting.
//
// ctx is checked between stages and during corpus scoring.
func Explain(ctx context.Context, docs []corpus.Document, model *linear.Model, vz *textvec.Vectorizer, opts Options) (*Result, error) {
	r, err := newRun(ctx, docs, model, vz, opts)
	if err != nil {
		return nil, err
	}
	if err = r.pattern(); err != nil {
		return nil, err
	}
	if err = r.score(); err != nil {
		return nil, err
	}

	// Stage 5: rendering.
	res := r.res
	if r.opts.Highlight {
		res.Highlighted = make([]string, len(docs))
		for i, d := range docs {
			res.Highlighted[i] = highlight.HTML(d.Text, res.Tokens[i])
		}
	}
	r.done("explanations computed")

	return res, nil
}

// TopTerms returns the n strongest terms per class, resolved to words.
func (r *Result) TopTerms(n int) ([]report.PatternRow, error) {
	rows := make([]report.PatternRow, r.Pattern.Classes())
	for c := range rows {
		idx, w, err := r.Pattern.TopTerms(c, n)
		if err != nil {
			return nil, err
		}
		terms, err := r.Vocabulary.Resolve(idx)
		if err != nil {
			return nil, err
		}
		rows[c] = report.PatternRow{Class: r.Classes[c], Terms: terms, Weights: w}
	}

	return rows, nil
}

// Summary converts the result into the exportable report form.
func (r *Result) Summary(patternTerms int) (report.Summary, error) {
	s := report.Summary{Classes: r.Classes}
	for i, e := range r.Explanations {
		label := ""
		if i < len(r.Documents) {
			label = r.Documents[i].LabelName()
		}
		id := fmt.Sprintf("#%d", i)
		if i < len(r.Documents) && r.Documents[i].ID != "" {
			id = r.Documents[i].ID
		}
		s.Documents = append(s.Documents, report.DocumentRow{
			ID:        id,
			Label:     label,
			Predicted: r.Classes[e.Predicted],
			Sign:      int(e.PredictionSign),
			Tokens:    r.Tokens[i],
			Scores:    e.Scores,
		})
	}
	if patternTerms > 0 {
		rows, err := r.TopTerms(patternTerms)
		if err != nil {
			return report.Summary{}, err
		}
		s.Patterns = rows
	}

	return s, nil
}
