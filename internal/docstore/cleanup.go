package docstore

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"finance-rag/internal/models"
)

// CleanupResult reports what a duplicate sweep removed.
type CleanupResult struct {
	DuplicateTickerCount int `json:"duplicate_ticker_count"`
	TotalRemoved         int `json:"total_removed"`
}

// CleanupDuplicates finds tickers that ended up with more than one document
// (only possible for data written before the upsert keyed writes), keeps the
// most recently updated document per ticker and deletes the rest.
func (s *Store) CleanupDuplicates(ctx context.Context) (CleanupResult, error) {
	pipeline := mongoPipeline()
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return CleanupResult{}, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Ticker string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return CleanupResult{}, err
	}

	result := CleanupResult{}
	for _, group := range groups {
		docs, err := s.allByTicker(ctx, group.Ticker)
		if err != nil {
			return result, err
		}
		stale := selectStale(docs)
		if len(stale) == 0 {
			continue
		}
		res, err := s.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}})
		if err != nil {
			return result, err
		}
		result.DuplicateTickerCount++
		result.TotalRemoved += int(res.DeletedCount)
		log.Info().Str("ticker", group.Ticker).Int64("removed", res.DeletedCount).Msg("duplicate documents removed")
	}
	return result, nil
}

func mongoPipeline() []bson.M {
	return []bson.M{
		{"$match": bson.M{"ticker": bson.M{"$nin": bson.A{nil, ""}}}},
		{"$group": bson.M{"_id": "$ticker", "count": bson.M{"$sum": 1}}},
		{"$match": bson.M{"count": bson.M{"$gt": 1}}},
	}
}

func (s *Store) allByTicker(ctx context.Context, ticker string) ([]models.ReportDocument, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"ticker": ticker})
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

// selectStale returns the ids of every document except the winner: the one
// with the latest updated_at, ties broken by the larger ObjectID (the later
// insert).
func selectStale(docs []models.ReportDocument) []primitive.ObjectID {
	if len(docs) < 2 {
		return nil
	}
	sorted := make([]models.ReportDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].UpdatedAt.Equal(sorted[j].UpdatedAt) {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		}
		return sorted[i].ID.Hex() > sorted[j].ID.Hex()
	})

	stale := make([]primitive.ObjectID, 0, len(sorted)-1)
	for _, doc := range sorted[1:] {
		stale = append(stale, doc.ID)
	}
	return stale
}
