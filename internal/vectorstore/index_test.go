package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-rag/internal/models"
)

func testChunk(ticker string, number int) models.Chunk {
	return models.Chunk{
		ChunkID:     models.ChunkID(ticker, number),
		Ticker:      ticker,
		ChunkNumber: number,
		Content:     "chunk content",
		Filename:    ticker + ".pdf",
	}
}

func seededIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := NewIndex("", "test_chunks", true)
	require.NoError(t, err)

	chunks := []models.Chunk{
		testChunk("AAPL", 1),
		testChunk("AAPL", 2),
		testChunk("MSFT", 1),
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	require.NoError(t, ix.Add(context.Background(), chunks, embeddings))
	return ix
}

func TestIndexSearchRanksByCosineSimilarity(t *testing.T) {
	ix := seededIndex(t)

	results, err := ix.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "AAPL_0001", results[0].ChunkID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-4)
	assert.Equal(t, "AAPL", results[0].Meta["ticker"])
}

func TestIndexSearchClampsLimitToCount(t *testing.T) {
	ix := seededIndex(t)

	results, err := ix.Search(context.Background(), []float32{0, 1, 0}, 100)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestIndexSearchEmptyCollection(t *testing.T) {
	ix, err := NewIndex("", "empty_chunks", true)
	require.NoError(t, err)

	results, err := ix.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestIndexDeleteByTicker(t *testing.T) {
	ix := seededIndex(t)
	require.Equal(t, 3, ix.Count())

	require.NoError(t, ix.DeleteByTicker(context.Background(), "AAPL"))
	assert.Equal(t, 1, ix.Count())

	require.NoError(t, ix.DeleteByTicker(context.Background(), "AAPL"))
	assert.Equal(t, 1, ix.Count())
}

func TestIndexAddMismatchedEmbeddings(t *testing.T) {
	ix, err := NewIndex("", "mismatch_chunks", true)
	require.NoError(t, err)

	err = ix.Add(context.Background(), []models.Chunk{testChunk("AAPL", 1)}, nil)
	assert.Error(t, err)
}
