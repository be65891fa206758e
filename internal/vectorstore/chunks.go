package vectorstore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"finance-rag/internal/models"
)

// ChunkStore is the payload side of the chunk storage: the canonical chunk
// records live in Mongo so keyword search, scrolling and exact counts work
// without touching the similarity index. It shares the document store's
// client rather than opening a second connection.
type ChunkStore struct {
	collection *mongo.Collection
}

func NewChunkStore(client *mongo.Client, database, collection string) *ChunkStore {
	return &ChunkStore{collection: client.Database(database).Collection(collection)}
}

// Insert writes chunks in bulk with ordered semantics so a failure surfaces
// the first offending chunk.
func (cs *ChunkStore) Insert(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, bson.M{
			"chunk_id":     chunk.ChunkID,
			"ticker":       chunk.Ticker,
			"chunk_number": chunk.ChunkNumber,
			"content":      chunk.Content,
			"filename":     chunk.Filename,
			"document_id":  chunk.DocumentID,
			"total_pages":  chunk.TotalPages,
			"created_at":   now,
		})
	}
	_, err := cs.collection.InsertMany(ctx, docs)
	return err
}

// DeleteByTicker removes every chunk for ticker and reports how many were
// removed.
func (cs *ChunkStore) DeleteByTicker(ctx context.Context, ticker string) (int64, error) {
	res, err := cs.collection.DeleteMany(ctx, bson.M{"ticker": ticker})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (cs *ChunkStore) CountByTicker(ctx context.Context, ticker string) (int64, error) {
	return cs.collection.CountDocuments(ctx, bson.M{"ticker": ticker})
}

func (cs *ChunkStore) Count(ctx context.Context) (int64, error) {
	return cs.collection.CountDocuments(ctx, bson.M{})
}

// KeywordSearch matches chunks whose content contains the query text,
// case-insensitive. The query is treated literally, not as a pattern.
func (cs *ChunkStore) KeywordSearch(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{"content": bson.M{
		"$regex":   regexp.QuoteMeta(query),
		"$options": "i",
	}}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "ticker", Value: 1}, {Key: "chunk_number", Value: 1}})

	cursor, err := cs.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chunks []models.Chunk
	if err := cursor.All(ctx, &chunks); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, models.SearchResult{
			ChunkID: chunk.ChunkID,
			Content: chunk.Content,
			Meta:    chunkMeta(chunk),
			Score:   1.0,
		})
	}
	return results, nil
}

// Scroll pages through a ticker's chunks in chunk order.
func (cs *ChunkStore) Scroll(ctx context.Context, ticker string, skip, limit int64) ([]models.Chunk, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "chunk_number", Value: 1}})

	cursor, err := cs.collection.Find(ctx, bson.M{"ticker": ticker}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chunks []models.Chunk
	if err := cursor.All(ctx, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

func chunkMeta(chunk models.Chunk) map[string]string {
	return map[string]string{
		"ticker":      chunk.Ticker,
		"filename":    chunk.Filename,
		"document_id": chunk.DocumentID,
	}
}
