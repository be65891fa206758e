package vectorstore

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"

	"finance-rag/internal/models"
)

// Index is the similarity side of the chunk storage: a chromem-go collection
// holding one embedded document per chunk, keyed by chunk id.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndex opens (or creates) the chunk collection. With inMemory set the
// index lives only for the process lifetime, which is what the tests and the
// dry-run CLI use.
func NewIndex(dbPath, collectionName string, inMemory bool) (*Index, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector database: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}
	return &Index{db: db, collection: collection}, nil
}

// Add embeds nothing itself; callers supply pre-computed embeddings so the
// same vectors can be written here and to the payload store in one pass.
func (ix *Index) Add(ctx context.Context, chunks []models.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, chromem.Document{
			ID:      chunk.ChunkID,
			Content: chunk.Content,
			Metadata: map[string]string{
				"ticker":       chunk.Ticker,
				"chunk_number": fmt.Sprintf("%d", chunk.ChunkNumber),
				"filename":     chunk.Filename,
				"document_id":  chunk.DocumentID,
			},
			Embedding: embeddings[i],
		})
	}
	if err := ix.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Search runs a kNN query against the collection. chromem rejects queries
// asking for more results than stored documents, so limit is clamped.
func (ix *Index) Search(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error) {
	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}
	if limit <= 0 {
		limit = 1
	}

	results, err := ix.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	out := make([]models.SearchResult, 0, len(results))
	for _, res := range results {
		out = append(out, models.SearchResult{
			ChunkID: res.ID,
			Content: res.Content,
			Meta:    res.Metadata,
			Score:   float64(res.Similarity),
		})
	}
	return out, nil
}

// DeleteByTicker drops every indexed chunk belonging to ticker.
func (ix *Index) DeleteByTicker(ctx context.Context, ticker string) error {
	if ix.collection.Count() == 0 {
		return nil
	}
	err := ix.collection.Delete(ctx, map[string]string{"ticker": ticker}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete chunks for %s: %w", ticker, err)
	}
	return nil
}

// Count reports how many chunks the index currently holds.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

// Name returns the underlying collection name.
func (ix *Index) Name() string {
	return ix.collection.Name
}
