package explain

import (
	"fmt"
	"sort"
)

const (
	opTopKTokens = "TopKTokens"
	opTopTerms   = "Pattern.TopTerms"
)

// ranked orders (index, value) pairs by value desc, index asc.
type ranked struct {
	idx []int
	val []float64
}

func (r ranked) sort() {
	perm := make([]int, len(r.idx))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		pa, pb := perm[a], perm[b]
		if r.val[pa] != r.val[pb] {
			return r.val[pa] > r.val[pb]
		}
		return r.idx[pa] < r.idx[pb]
	})
	idx := make([]int, len(perm))
	val := make([]float64, len(perm))
	for i, p := range perm {
		idx[i], val[i] = r.idx[p], r.val[p]
	}
	copy(r.idx, idx)
	copy(r.val, val)
}

// TopKTokens returns the indices of the k largest relevance values in
// descending order; ties resolve to the lowest term index. Repeated calls on
// the same input return identical output.
//
// Behavior highlights:
//   - k == 0 returns an empty, non-nil slice.
//   - Fewer than k stored entries is ErrInvalidArgument unless
//     WithPartialTopK() is given, in which case all entries are returned.
//
// Errors:
//   - ErrInvalidArgument for k < 0, k > rel.Dim, a malformed relevance
//     vector, or too few present terms (see above).
//
// Complexity:
//   - Time O(m log m) for m stored entries, Space O(m).
func TopKTokens(rel Relevance, k int, opts ...Option) ([]int, error) {
	o := gatherOptions(opts...)
	if k < 0 || k > rel.Dim {
		return nil, explainErrorf(opTopKTokens, ErrInvalidArgument, fmt.Errorf("k=%d with %d terms", k, rel.Dim))
	}
	if err := rel.Vector().Validate(); err != nil {
		return nil, explainErrorf(opTopKTokens, ErrInvalidArgument, err)
	}
	if k == 0 {
		return []int{}, nil
	}
	if rel.Nnz() < k {
		if !o.partialTopK {
			return nil, explainErrorf(opTopKTokens, ErrInvalidArgument,
				fmt.Errorf("document has %d present terms, k=%d", rel.Nnz(), k))
		}
		k = rel.Nnz()
	}

	r := ranked{idx: append([]int(nil), rel.Indices...), val: append([]float64(nil), rel.Values...)}
	r.sort()

	return r.idx[:k], nil
}

// TopTerms returns the n strongest terms of class c (value desc, index asc)
// with their pattern values. n larger than Dim() is clamped.
// Errors: ErrInvalidArgument for a bad class or n < 0.
func (p *Pattern) TopTerms(c, n int) ([]int, []float64, error) {
	row, err := p.Class(c)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 {
		return nil, nil, explainErrorf(opTopTerms, ErrInvalidArgument, fmt.Errorf("n=%d", n))
	}
	if n > len(row) {
		n = len(row)
	}

	r := ranked{idx: make([]int, len(row)), val: row}
	for j := range r.idx {
		r.idx[j] = j
	}
	r.sort()

	return r.idx[:n], r.val[:n], nil
}
