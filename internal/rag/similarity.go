package rag

import (
	"math"
	"sort"
)

// CosineSimilarity computes cosine similarity between two vectors.
// Vectors of different length, or with zero norm, score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK scores every section against query and returns the k best, highest
// first, with Similarity set. Ties keep file order. The input is not modified.
func TopK(query []float64, sections []Section, k int) []Section {
	scored := make([]Section, len(sections))
	for i, s := range sections {
		s.Similarity = CosineSimilarity(query, s.Embedding)
		scored[i] = s
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if k >= 0 && k < len(scored) {
		scored = scored[:k]
	}
	return scored
}
