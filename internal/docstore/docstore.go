package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"finance-rag/internal/config"
	"finance-rag/internal/models"
)

// ErrNotFound is returned when no document matches the given id or ticker.
var ErrNotFound = errors.New("document not found")

// Store is the gateway to the canonical report documents. It performs no
// local caching; every operation is a round trip.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func Connect(ctx context.Context, cfg *config.MongoConfig) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Client exposes the underlying connection so sibling stores can share it.
func (s *Store) Client() *mongo.Client {
	return s.client
}

// Upsert writes the canonical document for doc.Ticker. An existing document
// is overwritten in place except for created_at; a missing one is inserted
// with created_at == updated_at. The single atomic update-with-upsert keeps
// repeated and concurrent reprocessing from ever duplicating a ticker.
func (s *Store) Upsert(ctx context.Context, doc models.ReportDocument) (string, error) {
	filter, update := upsertCommand(doc, time.Now().UTC())
	res, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("upserting document for ticker %s: %w", doc.Ticker, err)
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}

	existing, err := s.GetByTicker(ctx, doc.Ticker)
	if err != nil {
		return "", err
	}
	return existing.ID.Hex(), nil
}

// upsertCommand builds the ticker-keyed update. created_at lives only under
// $setOnInsert, so re-running a ticker overwrites the document in place while
// created_at survives and updated_at advances.
func upsertCommand(doc models.ReportDocument, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"ticker": doc.Ticker}
	update := bson.M{
		"$set": bson.M{
			"filename":         doc.Filename,
			"source_url":       doc.SourceURL,
			"file_size":        doc.FileSize,
			"content_type":     doc.ContentType,
			"download_time":    doc.DownloadTime,
			"parsed_content":   doc.ParsedContent,
			"total_pages":      doc.TotalPages,
			"successful_pages": doc.SuccessPages,
			"failed_pages":     doc.FailedPages,
			"prompt_type":      doc.PromptType,
			"status":           doc.Status,
			"success":          doc.Success,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	return filter, update
}

func (s *Store) Get(ctx context.Context, id string) (*models.ReportDocument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	var doc models.ReportDocument
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) GetByTicker(ctx context.Context, ticker string) (*models.ReportDocument, error) {
	var doc models.ReportDocument
	err := s.collection.FindOne(ctx, bson.M{"ticker": ticker}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns documents sorted by created_at descending, optionally
// filtered by status.
func (s *Store) List(ctx context.Context, skip, limit int64, status string) ([]models.ReportDocument, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.ReportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.collection.CountDocuments(ctx, filter)
}

// UpdateStatus sets a document's status. Returns false when the id does not
// match any document.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.collection.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
