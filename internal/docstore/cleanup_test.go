package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"finance-rag/internal/models"
)

func docWithTime(id string, updated time.Time) models.ReportDocument {
	oid, _ := primitive.ObjectIDFromHex(id)
	return models.ReportDocument{ID: oid, Ticker: "T", UpdatedAt: updated}
}

func TestSelectStaleKeepsNewest(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	docs := []models.ReportDocument{
		docWithTime("65f000000000000000000001", base),
		docWithTime("65f000000000000000000002", base.Add(2*time.Hour)),
		docWithTime("65f000000000000000000003", base.Add(time.Hour)),
	}

	stale := selectStale(docs)
	require.Len(t, stale, 2)

	hexes := []string{stale[0].Hex(), stale[1].Hex()}
	assert.NotContains(t, hexes, "65f000000000000000000002")
	assert.Contains(t, hexes, "65f000000000000000000001")
	assert.Contains(t, hexes, "65f000000000000000000003")
}

func TestSelectStaleTieBreaksOnID(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	docs := []models.ReportDocument{
		docWithTime("65f00000000000000000000a", at),
		docWithTime("65f00000000000000000000b", at),
	}

	stale := selectStale(docs)
	require.Len(t, stale, 1)
	assert.Equal(t, "65f00000000000000000000a", stale[0].Hex())
}

func TestSelectStaleSingleDocument(t *testing.T) {
	docs := []models.ReportDocument{docWithTime("65f000000000000000000001", time.Now())}
	assert.Nil(t, selectStale(docs))
}
