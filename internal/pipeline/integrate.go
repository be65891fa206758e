package pipeline

import (
	"strings"

	"finance-rag/internal/models"
)

// IntegrateResults scans successful page results for optional structured
// fields and aggregates them: keywords and categories deduplicated in
// first-seen order, per-page summaries concatenated in page order.
func IntegrateResults(pageResults []models.PageResult) models.IntegratedSummary {
	if len(pageResults) == 0 {
		return models.IntegratedSummary{Error: "no pages were processed successfully"}
	}

	summary := models.IntegratedSummary{
		TotalPagesProcessed: len(pageResults),
	}

	seenKeywords := make(map[string]bool)
	seenCategories := make(map[string]bool)

	for _, pr := range pageResults {
		for _, kw := range pr.Parsed.Keywords() {
			if !seenKeywords[kw] {
				seenKeywords[kw] = true
				summary.CombinedKeywords = append(summary.CombinedKeywords, kw)
			}
		}
		if s, ok := pr.Parsed.Summary(); ok {
			summary.PageSummaries = append(summary.PageSummaries, models.PageSummary{
				Page:    pr.PageNumber,
				Summary: s,
			})
		}
		if cat, ok := pr.Parsed.Category(); ok {
			if !seenCategories[cat] {
				seenCategories[cat] = true
				summary.Categories = append(summary.Categories, cat)
			}
		}
	}

	parts := make([]string, 0, len(summary.PageSummaries))
	for _, ps := range summary.PageSummaries {
		parts = append(parts, ps.Summary)
	}
	summary.CombinedSummary = strings.Join(parts, " ")
	return summary
}
