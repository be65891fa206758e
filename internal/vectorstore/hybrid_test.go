package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-rag/internal/models"
)

func hit(chunkID string, score float64) models.SearchResult {
	return models.SearchResult{ChunkID: chunkID, Content: "c " + chunkID, Score: score}
}

func TestMergeWeightedSumsCollisions(t *testing.T) {
	vector := []models.SearchResult{hit("AAPL_0001", 0.9), hit("AAPL_0002", 0.5)}
	keyword := []models.SearchResult{hit("AAPL_0001", 1.0)}

	merged := mergeWeighted(vector, keyword, 0.7, 0.3, 10)
	require.Len(t, merged, 2)

	assert.Equal(t, "AAPL_0001", merged[0].ChunkID)
	assert.InDelta(t, 0.9*0.7+1.0*0.3, merged[0].Score, 1e-9)
	assert.Equal(t, "AAPL_0002", merged[1].ChunkID)
	assert.InDelta(t, 0.5*0.7, merged[1].Score, 1e-9)
}

func TestMergeWeightedKeywordOnlyHit(t *testing.T) {
	keyword := []models.SearchResult{hit("AAPL_0003", 1.0)}

	merged := mergeWeighted(nil, keyword, 0.7, 0.3, 10)
	require.Len(t, merged, 1)
	assert.InDelta(t, 0.3, merged[0].Score, 1e-9)
}

func TestMergeWeightedTieBreaksOnChunkID(t *testing.T) {
	vector := []models.SearchResult{hit("B_0001", 0.5), hit("A_0001", 0.5)}

	merged := mergeWeighted(vector, nil, 1.0, 0.0, 10)
	require.Len(t, merged, 2)
	assert.Equal(t, "A_0001", merged[0].ChunkID)
	assert.Equal(t, "B_0001", merged[1].ChunkID)
}

func TestMergeWeightedTruncatesToLimit(t *testing.T) {
	vector := []models.SearchResult{
		hit("A_0001", 0.9),
		hit("A_0002", 0.8),
		hit("A_0003", 0.7),
	}

	merged := mergeWeighted(vector, nil, 1.0, 0.0, 2)
	require.Len(t, merged, 2)
	assert.Equal(t, "A_0001", merged[0].ChunkID)
	assert.Equal(t, "A_0002", merged[1].ChunkID)
}

func TestMergeWeightedClampsWeights(t *testing.T) {
	vector := []models.SearchResult{hit("A_0001", 0.5)}

	merged := mergeWeighted(vector, nil, 3.0, -1.0, 10)
	require.Len(t, merged, 1)
	assert.InDelta(t, 0.5, merged[0].Score, 1e-9)
}
