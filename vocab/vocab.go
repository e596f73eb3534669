// Package vocab provides the explicit index ↔ term mapping threaded alongside
// feature matrices, patterns and relevance vectors, so that column indices
// returned by the explain package can be resolved back to words.
//
// A Vocabulary is immutable after New and safe for concurrent use.
package vocab

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTerm is returned when a term is the empty string.
	ErrEmptyTerm = errors.New("vocab: empty term")

	// ErrDuplicateTerm is returned when a term occurs twice.
	ErrDuplicateTerm = errors.New("vocab: duplicate term")

	// ErrUnknownIndex is returned for an index outside [0, Len()).
	ErrUnknownIndex = errors.New("vocab: unknown index")
)

// Vocabulary maps column indices to terms and back.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// New builds a Vocabulary where terms[i] owns column i.
// Errors: ErrEmptyTerm, ErrDuplicateTerm (both report the offending position).
// Complexity: O(n).
func New(terms []string) (*Vocabulary, error) {
	v := &Vocabulary{
		terms: make([]string, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	for i, t := range terms {
		if t == "" {
			return nil, fmt.Errorf("position %d: %w", i, ErrEmptyTerm)
		}
		if j, ok := v.index[t]; ok {
			return nil, fmt.Errorf("%q at %d and %d: %w", t, j, i, ErrDuplicateTerm)
		}
		v.terms[i] = t
		v.index[t] = i
	}

	return v, nil
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Term returns the term of column i.
func (v *Vocabulary) Term(i int) (string, error) {
	if i < 0 || i >= len(v.terms) {
		return "", fmt.Errorf("index %d of %d: %w", i, len(v.terms), ErrUnknownIndex)
	}

	return v.terms[i], nil
}

// Index returns the column of term and whether it is known.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]

	return i, ok
}

// Terms returns a copy of all terms in column order.
func (v *Vocabulary) Terms() []string { return append([]string(nil), v.terms...) }

// Resolve maps indices to terms, preserving order.
// The first unknown index fails the whole call.
func (v *Vocabulary) Resolve(indices []int) ([]string, error) {
	out := make([]string, len(indices))
	for k, i := range indices {
		t, err := v.Term(i)
		if err != nil {
			return nil, err
		}
		out[k] = t
	}

	return out, nil
}
