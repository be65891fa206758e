package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document status lifecycle.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusCompleted = "completed"
)

// RawPage is one page of extracted text. Never persisted.
type RawPage struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`
	WordCount  int    `json:"word_count"`
}

// PageResult is the outcome of one successful completion call for a page.
type PageResult struct {
	PageNumber  int           `json:"page_number"`
	CharCount   int           `json:"char_count"`
	WordCount   int           `json:"word_count"`
	Parsed      ParsedContent `json:"parsed_content"`
	ProcessedAt time.Time     `json:"processed_at"`
}

// PageFailure records a page whose completion call or parsing failed.
// Failures are collected, never propagated as a document-level error.
type PageFailure struct {
	PageNumber int    `json:"page_number"`
	Error      string `json:"error"`
}

// PageSummary pairs a page number with the summary the model returned for it.
type PageSummary struct {
	Page    int    `json:"page"`
	Summary string `json:"summary"`
}

// IntegratedSummary aggregates the optional structured fields across all
// successful pages.
type IntegratedSummary struct {
	TotalPagesProcessed int           `json:"total_pages_processed"`
	CombinedKeywords    []string      `json:"combined_keywords"`
	CombinedSummary     string        `json:"combined_summary"`
	PageSummaries       []PageSummary `json:"page_summaries"`
	Categories          []string      `json:"categories"`
	Error               string        `json:"error,omitempty"`
}

// ProcessingResult is the fan-out outcome for a whole document.
// Invariants: TotalPages == SuccessfulPages + len(FailedPages),
// SuccessfulPages == len(PageResults), PageResults sorted by page number.
type ProcessingResult struct {
	TotalPages        int               `json:"total_pages"`
	SuccessfulPages   int               `json:"successful_pages"`
	FailedPages       []int             `json:"failed_pages"`
	PageResults       []PageResult      `json:"page_results"`
	IntegratedSummary IntegratedSummary `json:"integrated_summary"`
}

// ReportDocument is the canonical per-ticker document. Owned by docstore;
// ticker is the unique business key.
type ReportDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Ticker        string             `bson:"ticker" json:"ticker"`
	Filename      string             `bson:"filename" json:"filename"`
	SourceURL     string             `bson:"source_url" json:"source_url"`
	FileSize      int64              `bson:"file_size" json:"file_size"`
	ContentType   string             `bson:"content_type" json:"content_type"`
	DownloadTime  time.Time          `bson:"download_time" json:"download_time"`
	ParsedContent string             `bson:"parsed_content" json:"parsed_content"`
	TotalPages    int                `bson:"total_pages" json:"total_pages"`
	SuccessPages  int                `bson:"successful_pages" json:"successful_pages"`
	FailedPages   []int              `bson:"failed_pages" json:"failed_pages"`
	PromptType    string             `bson:"prompt_type" json:"prompt_type"`
	Status        string             `bson:"status" json:"status"`
	Success       bool               `bson:"success" json:"success"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Chunk is one embedded window of a document's parsed content.
type Chunk struct {
	ChunkID     string `bson:"chunk_id" json:"chunk_id"`
	Ticker      string `bson:"ticker" json:"ticker"`
	ChunkNumber int    `bson:"chunk_number" json:"chunk_number"`
	Content     string `bson:"content" json:"content"`
	Filename    string `bson:"filename" json:"filename"`
	DocumentID  string `bson:"document_id" json:"document_id"`
	TotalPages  int    `bson:"total_pages" json:"total_pages"`
}

// ChunkID builds the canonical chunk identifier: ticker plus the 1-based
// chunk number zero-padded to 4 digits.
func ChunkID(ticker string, number int) string {
	return fmt.Sprintf("%s_%04d", ticker, number)
}

// SearchResult is one ranked hit from vector, keyword or hybrid search.
type SearchResult struct {
	ChunkID string            `json:"chunk_id"`
	Content string            `json:"content"`
	Meta    map[string]string `json:"metadata"`
	Score   float64           `json:"score"`
}

// DocumentInfo is the subset of document fields reported by store results.
type DocumentInfo struct {
	Filename        string `json:"filename"`
	TotalPages      int    `json:"total_pages"`
	SuccessfulPages int    `json:"successful_pages"`
}

// StoreResult reports the outcome of an embed-and-store run.
type StoreResult struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Ticker       string       `json:"ticker"`
	ChunksCount  int          `json:"chunks_count"`
	Deduplicated bool         `json:"deduplicated"`
	DocumentInfo DocumentInfo `json:"document_info"`
}
