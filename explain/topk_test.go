package explain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/whitebox/explain"
)

func TestTopKTokens_TiesByLowestIndex(t *testing.T) {
	t.Parallel()

	rel := explain.Relevance{Dim: 6, Indices: []int{1, 2, 5}, Values: []float64{0.9, 0.5, 0.5}}

	got, err := explain.TopKTokens(rel, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)

	// Repeated calls are identical and do not reorder the input.
	for i := 0; i < 5; i++ {
		again, err := explain.TopKTokens(rel, 2)
		require.NoError(t, err)
		require.Equal(t, got, again)
	}
	require.Equal(t, []int{1, 2, 5}, rel.Indices)
	require.Equal(t, []float64{0.9, 0.5, 0.5}, rel.Values)
}

func TestTopKTokens_Descending(t *testing.T) {
	t.Parallel()

	rel := explain.Relevance{Dim: 10, Indices: []int{0, 3, 4, 8}, Values: []float64{-1, 2.5, 0, 7}}
	got, err := explain.TopKTokens(rel, 4)
	require.NoError(t, err)
	require.Equal(t, []int{8, 3, 4, 0}, got)
}

func TestTopKTokens_Bounds(t *testing.T) {
	t.Parallel()

	rel := explain.Relevance{Dim: 3, Indices: []int{0, 2}, Values: []float64{1, 2}}
	tests := []struct {
		name string
		k    int
		opts []explain.Option
		want []int
		err  error
	}{
		{"negative k", -1, nil, nil, explain.ErrInvalidArgument},
		{"k above dim", 4, nil, nil, explain.ErrInvalidArgument},
		{"zero k", 0, nil, []int{}, nil},
		{"too few present terms", 3, nil, nil, explain.ErrInvalidArgument},
		{"partial result", 3, []explain.Option{explain.WithPartialTopK()}, []int{2, 0}, nil},
		{"partial k above dim still fails", 4, []explain.Option{explain.WithPartialTopK()}, nil, explain.ErrInvalidArgument},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := explain.TopKTokens(rel, tc.k, tc.opts...)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTopKTokens_Malformed(t *testing.T) {
	t.Parallel()

	rel := explain.Relevance{Dim: 3, Indices: []int{2, 0}, Values: []float64{1, 2}}
	_, err := explain.TopKTokens(rel, 1)
	require.ErrorIs(t, err, explain.ErrInvalidArgument)

	rel = explain.Relevance{Dim: 3, Indices: []int{0}, Values: nil}
	_, err = explain.TopKTokens(rel, 1)
	require.ErrorIs(t, err, explain.ErrInvalidArgument)
}
