package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"finance-rag/internal/config"
	"finance-rag/internal/docstore"
	"finance-rag/internal/models"
)

// Default score weights for hybrid search.
const (
	DefaultVectorWeight  = 0.7
	DefaultKeywordWeight = 0.3
)

// CollectionInfo describes the current state of the chunk storage.
type CollectionInfo struct {
	Name          string `json:"name"`
	IndexedChunks int    `json:"indexed_chunks"`
	StoredChunks  int64  `json:"stored_chunks"`
}

// DocumentFetcher is the document-store collaborator the service reads the
// parsed document through.
type DocumentFetcher interface {
	GetByTicker(ctx context.Context, ticker string) (*models.ReportDocument, error)
}

// ChunkPayloadStore is the canonical chunk record collaborator.
type ChunkPayloadStore interface {
	Insert(ctx context.Context, chunks []models.Chunk) error
	DeleteByTicker(ctx context.Context, ticker string) (int64, error)
	CountByTicker(ctx context.Context, ticker string) (int64, error)
	Count(ctx context.Context) (int64, error)
	KeywordSearch(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
	Scroll(ctx context.Context, ticker string, skip, limit int64) ([]models.Chunk, error)
}

// VectorIndex is the similarity-index collaborator.
type VectorIndex interface {
	Add(ctx context.Context, chunks []models.Chunk, embeddings [][]float32) error
	Search(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error)
	DeleteByTicker(ctx context.Context, ticker string) error
	Count() int
	Name() string
}

// Service ties chunking, embedding, the similarity index and the chunk
// payload store together. Writes always hit both stores so they stay in
// lockstep for a ticker.
type Service struct {
	docs     DocumentFetcher
	chunks   ChunkPayloadStore
	index    VectorIndex
	embedder embeddings.Embedder
	cfg      *config.RAGConfig
}

func NewService(docs DocumentFetcher, chunks ChunkPayloadStore, index VectorIndex, embedder embeddings.Embedder, cfg *config.RAGConfig) *Service {
	return &Service{docs: docs, chunks: chunks, index: index, embedder: embedder, cfg: cfg}
}

// EmbedAndStore chunks and embeds the parsed content of ticker's document.
// With deduplicate set, existing chunks for the ticker are removed first so
// the run is a wholesale replace. A missing or not-fully-processed document
// is a structured failure, not an error, and writes nothing.
func (s *Service) EmbedAndStore(ctx context.Context, ticker string, deduplicate bool) (models.StoreResult, error) {
	result := models.StoreResult{Ticker: ticker, Deduplicated: deduplicate}

	doc, err := s.docs.GetByTicker(ctx, ticker)
	if errors.Is(err, docstore.ErrNotFound) {
		result.Message = fmt.Sprintf("no document found for ticker %s", ticker)
		return result, nil
	}
	if err != nil {
		return result, err
	}

	if doc.Status != models.StatusCompleted || !doc.Success {
		result.Message = fmt.Sprintf("document for ticker %s is not fully processed (status=%s, success=%t)", ticker, doc.Status, doc.Success)
		return result, nil
	}
	if doc.ParsedContent == "" {
		result.Message = fmt.Sprintf("document for ticker %s has no parsed content", ticker)
		return result, nil
	}

	pieces := SplitText(doc.ParsedContent, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(pieces) == 0 {
		result.Message = fmt.Sprintf("document for ticker %s produced no chunks", ticker)
		return result, nil
	}

	chunks := make([]models.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, models.Chunk{
			ChunkID:     models.ChunkID(ticker, i+1),
			Ticker:      ticker,
			ChunkNumber: i + 1,
			Content:     piece,
			Filename:    doc.Filename,
			DocumentID:  doc.ID.Hex(),
			TotalPages:  doc.TotalPages,
		})
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, pieces)
	if err != nil {
		return result, fmt.Errorf("embedding chunks for %s: %w", ticker, err)
	}

	if deduplicate {
		if err := s.index.DeleteByTicker(ctx, ticker); err != nil {
			return result, err
		}
		if _, err := s.chunks.DeleteByTicker(ctx, ticker); err != nil {
			return result, err
		}
	}

	if err := s.index.Add(ctx, chunks, vectors); err != nil {
		return result, err
	}
	if err := s.chunks.Insert(ctx, chunks); err != nil {
		return result, err
	}

	log.Info().Str("ticker", ticker).Int("chunks", len(chunks)).Bool("deduplicate", deduplicate).Msg("chunks embedded and stored")

	result.Success = true
	result.Message = fmt.Sprintf("stored %d chunks for ticker %s", len(chunks), ticker)
	result.ChunksCount = len(chunks)
	result.DocumentInfo = models.DocumentInfo{
		Filename:        doc.Filename,
		TotalPages:      doc.TotalPages,
		SuccessfulPages: doc.SuccessPages,
	}
	return result, nil
}

// SearchVector runs a pure similarity search over the index.
func (s *Service) SearchVector(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return s.index.Search(ctx, embedding, limit)
}

// SearchKeyword runs a literal, case-insensitive substring search over the
// stored chunk payloads. Every hit scores 1.0.
func (s *Service) SearchKeyword(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	return s.chunks.KeywordSearch(ctx, query, limit)
}

// SearchHybrid blends vector and keyword hits with the given weights. Zero
// weights fall back to the defaults.
func (s *Service) SearchHybrid(ctx context.Context, query string, limit int, vectorWeight, keywordWeight float64) ([]models.SearchResult, error) {
	if vectorWeight == 0 && keywordWeight == 0 {
		vectorWeight = DefaultVectorWeight
		keywordWeight = DefaultKeywordWeight
	}

	vector, err := s.SearchVector(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	keyword, err := s.SearchKeyword(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return mergeWeighted(vector, keyword, vectorWeight, keywordWeight, limit), nil
}

// Exists reports whether any chunks are stored for ticker.
func (s *Service) Exists(ctx context.Context, ticker string) (bool, int64, error) {
	count, err := s.chunks.CountByTicker(ctx, ticker)
	if err != nil {
		return false, 0, err
	}
	return count > 0, count, nil
}

// DeleteByTicker removes ticker's chunks from both stores and reports how
// many payload records were removed.
func (s *Service) DeleteByTicker(ctx context.Context, ticker string) (int64, error) {
	if err := s.index.DeleteByTicker(ctx, ticker); err != nil {
		return 0, err
	}
	deleted, err := s.chunks.DeleteByTicker(ctx, ticker)
	if err != nil {
		return 0, err
	}
	log.Info().Str("ticker", ticker).Int64("deleted", deleted).Msg("chunks deleted")
	return deleted, nil
}

// Scroll pages through a ticker's stored chunks.
func (s *Service) Scroll(ctx context.Context, ticker string, skip, limit int64) ([]models.Chunk, error) {
	return s.chunks.Scroll(ctx, ticker, skip, limit)
}

// Info reports collection name and chunk counts from both stores.
func (s *Service) Info(ctx context.Context) (CollectionInfo, error) {
	stored, err := s.chunks.Count(ctx)
	if err != nil {
		return CollectionInfo{}, err
	}
	return CollectionInfo{
		Name:          s.index.Name(),
		IndexedChunks: s.index.Count(),
		StoredChunks:  stored,
	}, nil
}
