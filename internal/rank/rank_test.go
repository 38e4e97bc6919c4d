package rank

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0, 0}, []float32{2, 0, 0}), 1e-9)
	require.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	require.InDelta(t, -1.0, CosineSimilarity([]float32{1, 1}, []float32{-1, -1}), 1e-9)
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	require.Equal(t, 0.0, CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
	require.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	require.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestTopKOrdering(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "mid", Vector: []float32{1, 1.7320508}},  // cos ~ 0.5
		{ID: "best", Vector: []float32{10, 1}},        // cos ~ 0.995
		{ID: "worst", Vector: []float32{-1, 4.90098}}, // cos ~ -0.2
	}
	matches := TopK(query, candidates, 2)
	require.Len(t, matches, 2)
	require.Equal(t, "best", matches[0].ID)
	require.Equal(t, "mid", matches[1].ID)
	require.Greater(t, matches[0].Score, matches[1].Score)
}

func TestTopKZeroVectorSortsBelowPositive(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "zero", Vector: []float32{0, 0}},
		{ID: "pos", Vector: []float32{1, 0.1}},
	}
	matches := TopK(query, candidates, 2)
	require.Equal(t, "pos", matches[0].ID)
	require.Equal(t, "zero", matches[1].ID)
	require.Equal(t, 0.0, matches[1].Score)
}

func TestTopKTieBreakMostRecentFirst(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "old", Vector: []float32{2, 0}, Mtime: 100},
		{ID: "new", Vector: []float32{3, 0}, Mtime: 200},
	}
	first := TopK(query, candidates, 2)
	require.Equal(t, "new", first[0].ID)
	require.Equal(t, "old", first[1].ID)

	// Same input, same order.
	second := TopK(query, candidates, 2)
	require.Equal(t, first, second)
}

func TestTopKTruncatesAndHandlesEmpty(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0, 1}},
	}
	require.Len(t, TopK(query, candidates, 1), 1)
	require.Empty(t, TopK(query, nil, 5))
	require.Empty(t, TopK(query, candidates, 0))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 50, Clamp(1000, 50))
	require.Equal(t, 50, Clamp(0, 50))
	require.Equal(t, 50, Clamp(-3, 50))
	require.Equal(t, 10, Clamp(10, 50))
}

func TestInvertedScore(t *testing.T) {
	require.Equal(t, 0.0, InvertedScore(1))
	require.Equal(t, 1.0, InvertedScore(0))
	require.Equal(t, 0.25, InvertedScore(0.75))
	require.Equal(t, 2.0, InvertedScore(-1))
}
