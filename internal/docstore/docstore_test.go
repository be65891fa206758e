package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"finance-rag/internal/models"
)

func TestUpsertCommandKeyedByTicker(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	filter, _ := upsertCommand(models.ReportDocument{Ticker: "005930"}, now)

	assert.Equal(t, bson.M{"ticker": "005930"}, filter)
}

func TestUpsertCommandPreservesCreatedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := models.ReportDocument{
		Ticker:        "005930",
		Filename:      "005930_20250601.pdf",
		ParsedContent: "## Page 1\n\ncontent\n",
		Status:        models.StatusCompleted,
		Success:       true,
	}
	_, update := upsertCommand(doc, now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	setOnInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok)

	// created_at is written only on first insert; a rerun for the same ticker
	// must never touch it.
	assert.NotContains(t, set, "created_at")
	assert.Equal(t, now, setOnInsert["created_at"])

	// updated_at advances on every run.
	assert.Equal(t, now, set["updated_at"])

	assert.Equal(t, doc.Filename, set["filename"])
	assert.Equal(t, doc.ParsedContent, set["parsed_content"])
	assert.Equal(t, models.StatusCompleted, set["status"])
	assert.Equal(t, true, set["success"])
}

func TestUpsertCommandOverwritesAllMutableFields(t *testing.T) {
	now := time.Now().UTC()
	_, update := upsertCommand(models.ReportDocument{Ticker: "T"}, now)

	set := update["$set"].(bson.M)
	for _, field := range []string{
		"filename", "source_url", "file_size", "content_type", "download_time",
		"parsed_content", "total_pages", "successful_pages", "failed_pages",
		"prompt_type", "status", "success", "updated_at",
	} {
		assert.Contains(t, set, field)
	}
	// The business key never appears in $set; the filter owns it.
	assert.NotContains(t, set, "ticker")
}
