package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"finance-rag/internal/docstore"
	"finance-rag/internal/extract"
	"finance-rag/internal/fetch"
	"finance-rag/internal/models"
	"finance-rag/internal/pipeline"
)

// ProcessResponse is the outcome of one ticker processing run.
type ProcessResponse struct {
	Success         bool      `json:"success"`
	Ticker          string    `json:"ticker"`
	DocumentID      string    `json:"document_id,omitempty"`
	Filename        string    `json:"filename,omitempty"`
	TotalPages      int       `json:"total_pages"`
	SuccessfulPages int       `json:"successful_pages"`
	FailedPages     []int     `json:"failed_pages,omitempty"`
	Status          string    `json:"status"`
	ProcessedAt     time.Time `json:"processed_at"`
}

// Service runs the whole ingestion path for one ticker: download the report,
// extract pages, fan out completion calls, merge and persist. The downloaded
// file is temporary and removed once the document is stored.
type Service struct {
	downloader  *fetch.Downloader
	coordinator *pipeline.Coordinator
	docs        *docstore.Store
}

func NewService(downloader *fetch.Downloader, coordinator *pipeline.Coordinator, docs *docstore.Store) *Service {
	return &Service{downloader: downloader, coordinator: coordinator, docs: docs}
}

// ProcessTicker downloads the ticker's report and runs the full pipeline.
func (s *Service) ProcessTicker(ctx context.Context, ticker, promptType string) (*ProcessResponse, error) {
	url := s.downloader.ReportURL(ticker)
	info, err := s.downloader.Download(ctx, url, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetching report for %s: %w", ticker, err)
	}
	defer s.downloader.Cleanup(info.Path)

	return s.process(ctx, info, promptType)
}

// ProcessFile runs the pipeline over an already-local file. Used by the CLI
// and by tests; the file is not deleted afterwards.
func (s *Service) ProcessFile(ctx context.Context, path, ticker, promptType string) (*ProcessResponse, error) {
	info := &fetch.FileInfo{
		Path:         path,
		Filename:     path,
		Ticker:       ticker,
		DownloadTime: time.Now(),
	}
	return s.process(ctx, info, promptType)
}

func (s *Service) process(ctx context.Context, info *fetch.FileInfo, promptType string) (*ProcessResponse, error) {
	pages, err := extract.Extract(info.Path)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages extracted from %s", info.Filename)
	}

	log.Info().Str("ticker", info.Ticker).Int("pages", len(pages)).Str("prompt_type", promptType).Msg("processing report")

	result := s.coordinator.Run(ctx, pages, models.Prompt(promptType))
	merged := pipeline.MergePages(result.PageResults)

	doc := models.ReportDocument{
		Ticker:        info.Ticker,
		Filename:      info.Filename,
		SourceURL:     info.SourceURL,
		FileSize:      info.FileSize,
		ContentType:   info.ContentType,
		DownloadTime:  info.DownloadTime,
		ParsedContent: merged,
		TotalPages:    result.TotalPages,
		SuccessPages:  result.SuccessfulPages,
		FailedPages:   result.FailedPages,
		PromptType:    promptType,
		Status:        models.StatusCompleted,
		Success:       len(result.FailedPages) == 0,
	}
	id, err := s.docs.Upsert(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &ProcessResponse{
		Success:         doc.Success,
		Ticker:          info.Ticker,
		DocumentID:      id,
		Filename:        info.Filename,
		TotalPages:      result.TotalPages,
		SuccessfulPages: result.SuccessfulPages,
		FailedPages:     result.FailedPages,
		Status:          doc.Status,
		ProcessedAt:     time.Now(),
	}, nil
}
