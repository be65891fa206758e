package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-rag/internal/config"
	"finance-rag/internal/docstore"
	"finance-rag/internal/models"
)

type stubDocs struct {
	doc *models.ReportDocument
	err error
}

func (s *stubDocs) GetByTicker(ctx context.Context, ticker string) (*models.ReportDocument, error) {
	return s.doc, s.err
}

type stubChunks struct {
	inserted []models.Chunk
	deletes  []string
}

func (s *stubChunks) Insert(ctx context.Context, chunks []models.Chunk) error {
	s.inserted = append(s.inserted, chunks...)
	return nil
}

func (s *stubChunks) DeleteByTicker(ctx context.Context, ticker string) (int64, error) {
	s.deletes = append(s.deletes, ticker)
	return 0, nil
}

func (s *stubChunks) CountByTicker(ctx context.Context, ticker string) (int64, error) {
	return int64(len(s.inserted)), nil
}

func (s *stubChunks) Count(ctx context.Context) (int64, error) {
	return int64(len(s.inserted)), nil
}

func (s *stubChunks) KeywordSearch(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	return nil, nil
}

func (s *stubChunks) Scroll(ctx context.Context, ticker string, skip, limit int64) ([]models.Chunk, error) {
	return nil, nil
}

type stubIndex struct {
	added   []models.Chunk
	deletes []string
}

func (s *stubIndex) Add(ctx context.Context, chunks []models.Chunk, embeddings [][]float32) error {
	s.added = append(s.added, chunks...)
	return nil
}

func (s *stubIndex) Search(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error) {
	return nil, nil
}

func (s *stubIndex) DeleteByTicker(ctx context.Context, ticker string) error {
	s.deletes = append(s.deletes, ticker)
	return nil
}

func (s *stubIndex) Count() int { return len(s.added) }

func (s *stubIndex) Name() string { return "stub_collection" }

type stubEmbedder struct{}

func (stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func newStubService(doc *models.ReportDocument, err error) (*Service, *stubChunks, *stubIndex) {
	chunks := &stubChunks{}
	index := &stubIndex{}
	cfg := &config.RAGConfig{ChunkSize: 64, ChunkOverlap: 16}
	svc := NewService(&stubDocs{doc: doc, err: err}, chunks, index, stubEmbedder{}, cfg)
	return svc, chunks, index
}

func completedDoc(ticker string) *models.ReportDocument {
	return &models.ReportDocument{
		Ticker:        ticker,
		Filename:      ticker + ".pdf",
		ParsedContent: "## Page 1\n\nrevenue grew across all segments this quarter\n",
		TotalPages:    1,
		SuccessPages:  1,
		Status:        models.StatusCompleted,
		Success:       true,
	}
}

func TestEmbedAndStoreRejectsUnprocessedDocument(t *testing.T) {
	doc := completedDoc("AAPL")
	doc.Status = models.StatusProcessed
	doc.Success = false
	svc, chunks, index := newStubService(doc, nil)

	result, err := svc.EmbedAndStore(context.Background(), "AAPL", true)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not fully processed")
	assert.Zero(t, result.ChunksCount)
	assert.Empty(t, chunks.inserted)
	assert.Empty(t, chunks.deletes)
	assert.Empty(t, index.added)
	assert.Empty(t, index.deletes)
}

func TestEmbedAndStoreRejectsPartialSuccess(t *testing.T) {
	doc := completedDoc("AAPL")
	doc.Success = false
	svc, chunks, index := newStubService(doc, nil)

	result, err := svc.EmbedAndStore(context.Background(), "AAPL", true)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, chunks.inserted)
	assert.Empty(t, index.added)
}

func TestEmbedAndStoreMissingDocument(t *testing.T) {
	svc, chunks, index := newStubService(nil, docstore.ErrNotFound)

	result, err := svc.EmbedAndStore(context.Background(), "AAPL", true)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "no document found")
	assert.Empty(t, chunks.inserted)
	assert.Empty(t, index.added)
}

func TestEmbedAndStoreReplacesChunks(t *testing.T) {
	svc, chunks, index := newStubService(completedDoc("AAPL"), nil)

	result, err := svc.EmbedAndStore(context.Background(), "AAPL", true)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, result.ChunksCount, len(chunks.inserted))
	require.NotEmpty(t, chunks.inserted)

	// deduplicate removes the old chunks from both stores before inserting.
	assert.Equal(t, []string{"AAPL"}, chunks.deletes)
	assert.Equal(t, []string{"AAPL"}, index.deletes)

	for i, chunk := range chunks.inserted {
		assert.Equal(t, models.ChunkID("AAPL", i+1), chunk.ChunkID)
		assert.Equal(t, "AAPL", chunk.Ticker)
	}
	assert.Equal(t, len(chunks.inserted), len(index.added))
	assert.Equal(t, "AAPL.pdf", result.DocumentInfo.Filename)
}

func TestEmbedAndStoreWithoutDeduplicate(t *testing.T) {
	svc, chunks, index := newStubService(completedDoc("AAPL"), nil)

	result, err := svc.EmbedAndStore(context.Background(), "AAPL", false)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, chunks.deletes)
	assert.Empty(t, index.deletes)
	assert.NotEmpty(t, chunks.inserted)
}
