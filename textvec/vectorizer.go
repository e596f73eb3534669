// Package textvec turns raw documents into the sparse, non-negative TF-IDF
// feature matrices consumed by the explain package.
//
// The weighting follows the widespread smooth-IDF convention:
//
//	idf(t)   = ln((1 + n) / (1 + df(t))) + 1
//	tf(t,d)  = count(t,d)            (or 1 + ln(count) with WithSublinearTF)
//	x(t,d)   = tf · idf, then every row is L2-normalized
//
// Vocabulary terms are sorted alphabetically so column indices are stable
// for a given corpus and options.
package textvec

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/whitebox/matrix"
	"github.com/katalvlaran/whitebox/vocab"
)

var (
	// ErrNotFitted is returned by Transform before Fit.
	ErrNotFitted = errors.New("textvec: vectorizer not fitted")

	// ErrEmptyCorpus is returned when Fit or Transform receive no documents.
	ErrEmptyCorpus = errors.New("textvec: empty corpus")

	// ErrEmptyVocabulary is returned when document-frequency filtering
	// leaves no term.
	ErrEmptyVocabulary = errors.New("textvec: empty vocabulary")

	// ErrInvalidIDF is returned for IDF weights that are not finite and > 0,
	// or whose length differs from the vocabulary.
	ErrInvalidIDF = errors.New("textvec: invalid idf weights")
)

// ---------- Defaults ----------

const (
	// DefaultMinDF keeps terms seen in at least one document.
	DefaultMinDF = 1
	// DefaultMaxDF keeps terms regardless of how common they are.
	DefaultMaxDF = 1.0
	// DefaultSublinearTF uses raw counts.
	DefaultSublinearTF = false
)

const (
	panicMinDFInvalid = "textvec: WithMinDF: n must be >= 1"
	panicMaxDFInvalid = "textvec: WithMaxDF: fraction must be in (0, 1]"
)

// Option configures a Vectorizer.
type Option func(*options)

type options struct {
	minDF       int
	maxDF       float64
	stopWords   map[string]struct{}
	sublinearTF bool
}

// WithMinDF drops terms that occur in fewer than n documents.
func WithMinDF(n int) Option {
	if n < 1 {
		panic(panicMinDFInvalid)
	}

	return func(o *options) { o.minDF = n }
}

// WithMaxDF drops terms that occur in more than fraction·n documents.
func WithMaxDF(fraction float64) Option {
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		panic(panicMaxDFInvalid)
	}

	return func(o *options) { o.maxDF = fraction }
}

// WithStopWords excludes the given (case-folded) words from the vocabulary.
func WithStopWords(words []string) Option {
	return func(o *options) {
		if o.stopWords == nil {
			o.stopWords = make(map[string]struct{}, len(words))
		}
		for _, w := range words {
			for _, t := range Tokenize(w) {
				o.stopWords[t] = struct{}{}
			}
		}
	}
}

// WithSublinearTF replaces raw counts by 1 + ln(count).
func WithSublinearTF() Option {
	return func(o *options) { o.sublinearTF = true }
}

func gatherOptions(opts ...Option) options {
	o := options{minDF: DefaultMinDF, maxDF: DefaultMaxDF, sublinearTF: DefaultSublinearTF}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Vectorizer maps documents to L2-normalized TF-IDF rows. After Fit (or
// NewFromVocabulary) it is read-only and Transform is safe for concurrent use.
type Vectorizer struct {
	opts  options
	vocab *vocab.Vocabulary
	idf   []float64
}

// New returns an unfitted Vectorizer.
func New(opts ...Option) *Vectorizer {
	return &Vectorizer{opts: gatherOptions(opts...)}
}

// NewFromVocabulary returns a fitted Vectorizer for a pre-trained model.
// Errors: ErrInvalidIDF.
func NewFromVocabulary(v *vocab.Vocabulary, idf []float64, opts ...Option) (*Vectorizer, error) {
	if v == nil || len(idf) != v.Len() {
		return nil, fmt.Errorf("NewFromVocabulary: %w", ErrInvalidIDF)
	}
	for j, w := range idf {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("NewFromVocabulary: term %d: %w", j, ErrInvalidIDF)
		}
	}

	return &Vectorizer{
		opts:  gatherOptions(opts...),
		vocab: v,
		idf:   append([]float64(nil), idf...),
	}, nil
}

// Fit learns the vocabulary and IDF weights from docs.
// Implementation:
//   - Stage 1: tokenize and count document frequencies (stop words skipped).
//   - Stage 2: keep terms with minDF ≤ df ≤ maxDF·n; sort alphabetically.
//   - Stage 3: smooth IDF per kept term.
//
// Errors: ErrEmptyCorpus, ErrEmptyVocabulary.
func (vz *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("Fit: %w", ErrEmptyCorpus)
	}

	// Stage 1: document frequencies.
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, t := range Tokenize(doc) {
			if _, stop := vz.opts.stopWords[t]; stop {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	// Stage 2: filter and order.
	n := float64(len(docs))
	maxCount := vz.opts.maxDF * n
	terms := make([]string, 0, len(df))
	for t, c := range df {
		if c >= vz.opts.minDF && float64(c) <= maxCount {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return fmt.Errorf("Fit: %w", ErrEmptyVocabulary)
	}
	sort.Strings(terms)

	v, err := vocab.New(terms)
	if err != nil {
		return fmt.Errorf("Fit: %w", err)
	}

	// Stage 3: smooth IDF.
	idf := make([]float64, len(terms))
	for j, t := range terms {
		idf[j] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	vz.vocab, vz.idf = v, idf

	return nil
}

// Transform vectorizes docs with the fitted vocabulary. Unknown tokens are
// ignored; a document without known tokens yields an empty row.
// Errors: ErrNotFitted, ErrEmptyCorpus.
func (vz *Vectorizer) Transform(docs []string) (*matrix.CSR, error) {
	if vz.vocab == nil {
		return nil, fmt.Errorf("Transform: %w", ErrNotFitted)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("Transform: %w", ErrEmptyCorpus)
	}

	rows := make([]matrix.SparseVector, len(docs))
	for i, doc := range docs {
		rows[i] = vz.row(doc)
	}
	X, err := matrix.CSRFromRows(vz.vocab.Len(), rows)
	if err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}

	return X, nil
}

// FitTransform is Fit followed by Transform on the same documents.
func (vz *Vectorizer) FitTransform(docs []string) (*matrix.CSR, error) {
	if err := vz.Fit(docs); err != nil {
		return nil, err
	}

	return vz.Transform(docs)
}

// row builds the normalized TF-IDF vector of one document.
func (vz *Vectorizer) row(doc string) matrix.SparseVector {
	counts := make(map[int]float64)
	for _, t := range Tokenize(doc) {
		if j, ok := vz.vocab.Index(t); ok {
			counts[j]++
		}
	}

	idx := make([]int, 0, len(counts))
	for j := range counts {
		idx = append(idx, j)
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	for k, j := range idx {
		tf := counts[j]
		if vz.opts.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		vals[k] = tf * vz.idf[j]
	}
	if norm := floats.Norm(vals, 2); norm > 0 {
		floats.Scale(1/norm, vals)
	}

	return matrix.SparseVector{Dim: vz.vocab.Len(), Indices: idx, Values: vals}
}

// Vocabulary returns the fitted vocabulary (nil before Fit).
func (vz *Vectorizer) Vocabulary() *vocab.Vocabulary { return vz.vocab }

// IDF returns a copy of the fitted IDF weights.
func (vz *Vectorizer) IDF() []float64 { return append([]float64(nil), vz.idf...) }
