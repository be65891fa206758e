package vectorstore

import (
	"sort"

	"finance-rag/internal/models"
)

// mergeWeighted blends vector and keyword hits into one ranking. Each hit's
// score is scaled by its source weight; a chunk found by both sources gets
// the sum. Ties rank by chunk id so results are stable across runs.
func mergeWeighted(vector, keyword []models.SearchResult, vectorWeight, keywordWeight float64, limit int) []models.SearchResult {
	vectorWeight = clampWeight(vectorWeight)
	keywordWeight = clampWeight(keywordWeight)

	merged := make(map[string]models.SearchResult, len(vector)+len(keyword))
	for _, hit := range vector {
		hit.Score *= vectorWeight
		merged[hit.ChunkID] = hit
	}
	for _, hit := range keyword {
		hit.Score *= keywordWeight
		if existing, ok := merged[hit.ChunkID]; ok {
			existing.Score += hit.Score
			merged[hit.ChunkID] = existing
			continue
		}
		merged[hit.ChunkID] = hit
	}

	out := make([]models.SearchResult, 0, len(merged))
	for _, hit := range merged {
		out = append(out, hit)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ChunkID < out[j].ChunkID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
