// Package rank scores stored page vectors against a query vector and keeps the
// best k. Ranking is a full scan: candidate sets are one user's own browsing
// history, so no index structure is needed and the math stays independently
// testable instead of living in per-query SQL expressions.
package rank

import (
	"math"
	"sort"
)

// Candidate is one stored vector under consideration for a query.
type Candidate struct {
	ID     string
	Vector []float32
	Mtime  int64
}

// Match is a candidate with its cosine similarity against the query.
type Match struct {
	ID    string
	Score float64
	Mtime int64
}

// CosineSimilarity returns sim(a, b) in [-1, 1]. Accumulation happens in
// float64 to keep error bounded over long vectors. A zero-norm vector or a
// length mismatch yields 0 rather than an error: all-zero vectors are a
// degenerate input, not a crash path.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK ranks candidates by descending similarity to query and returns at most
// k matches. Equal scores sort by most-recently-updated first, then by ID, so
// repeated queries against an unchanged corpus return identical order.
func TopK(query []float32, candidates []Candidate, k int) []Match {
	if k <= 0 || len(candidates) == 0 {
		return []Match{}
	}
	matches := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		matches = append(matches, Match{
			ID:    cand.ID,
			Score: CosineSimilarity(query, cand.Vector),
			Mtime: cand.Mtime,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Mtime != matches[j].Mtime {
			return matches[i].Mtime > matches[j].Mtime
		}
		return matches[i].ID < matches[j].ID
	})
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}

// Clamp bounds a caller-supplied k to [1, ceiling]. Every ranked endpoint must
// carry some ceiling to bound response size and scan cost.
func Clamp(k, ceiling int) int {
	if k <= 0 || k > ceiling {
		return ceiling
	}
	return k
}

// InvertedScore remaps a similarity to the distance-like value the history
// search endpoint has always returned: round((1-sim)*100)/100, lower is
// closer. The general search endpoint returns the raw similarity instead;
// the two conventions are intentionally kept apart.
func InvertedScore(sim float64) float64 {
	return math.Round((1-sim)*100) / 100
}
