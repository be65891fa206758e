package pipeline

import (
	"context"
	"fmt"
	"time"

	"finance-rag/internal/llm"
	"finance-rag/internal/models"
)

// Processor runs the completion call for a single page and parses the
// response. Any error it returns is recorded as a page failure by the
// coordinator, never raised as a document-level error.
type Processor struct {
	client llm.CompletionClient
}

func NewProcessor(client llm.CompletionClient) *Processor {
	return &Processor{client: client}
}

func (p *Processor) Process(ctx context.Context, page models.RawPage, prompt string) (models.PageResult, error) {
	userContent := fmt.Sprintf(models.PageContentFormat, page.PageNumber, page.Text)

	text, err := p.client.Complete(ctx, prompt, userContent)
	if err != nil {
		return models.PageResult{}, fmt.Errorf("page %d completion: %w", page.PageNumber, err)
	}

	return models.PageResult{
		PageNumber:  page.PageNumber,
		CharCount:   page.CharCount,
		WordCount:   page.WordCount,
		Parsed:      models.ParseCompletion(text),
		ProcessedAt: time.Now(),
	}, nil
}
