package pipeline

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"finance-rag/internal/models"
)

// Coordinator fans out page processing over a bounded worker pool and waits
// for every page to settle. One page's failure never cancels its siblings;
// failures are partitioned into ProcessingResult.FailedPages.
type Coordinator struct {
	processor *Processor
	workers   int
}

func NewCoordinator(processor *Processor, workers int) *Coordinator {
	if workers <= 0 {
		workers = 1
	}
	return &Coordinator{processor: processor, workers: workers}
}

type pageOutcome struct {
	result models.PageResult
	err    error
}

// Run processes every page concurrently and returns the combined result.
// PageResults are ordered by page number regardless of completion order.
func (c *Coordinator) Run(ctx context.Context, pages []models.RawPage, prompt string) models.ProcessingResult {
	outcomes := make([]pageOutcome, len(pages))
	sem := make(chan struct{}, c.workers)

	var wg sync.WaitGroup
	for i, page := range pages {
		wg.Add(1)
		go func(i int, page models.RawPage) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := c.processor.Process(ctx, page, prompt)
			outcomes[i] = pageOutcome{result: result, err: err}
		}(i, page)
	}
	wg.Wait()

	var (
		pageResults []models.PageResult
		failedPages []int
	)
	for i, outcome := range outcomes {
		if outcome.err != nil {
			pageNumber := pages[i].PageNumber
			log.Error().Err(outcome.err).Int("page", pageNumber).Msg("page processing failed")
			failedPages = append(failedPages, pageNumber)
			continue
		}
		pageResults = append(pageResults, outcome.result)
	}
	sort.Slice(pageResults, func(i, j int) bool {
		return pageResults[i].PageNumber < pageResults[j].PageNumber
	})
	sort.Ints(failedPages)

	result := models.ProcessingResult{
		TotalPages:        len(pages),
		SuccessfulPages:   len(pageResults),
		FailedPages:       failedPages,
		PageResults:       pageResults,
		IntegratedSummary: IntegrateResults(pageResults),
	}

	log.Info().
		Int("total", result.TotalPages).
		Int("successful", result.SuccessfulPages).
		Int("failed", len(result.FailedPages)).
		Msg("document processing finished")
	return result
}
