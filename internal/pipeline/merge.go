package pipeline

import (
	"fmt"
	"strings"

	"finance-rag/internal/models"
)

// MergePages concatenates ordered page results into one Markdown body, one
// section per page. This is the single merge implementation for every call
// site; persistence and re-runs must not diverge from it.
func MergePages(pageResults []models.PageResult) string {
	sections := make([]string, 0, len(pageResults))
	for _, pr := range pageResults {
		sections = append(sections, fmt.Sprintf("## Page %d\n\n%s\n\n", pr.PageNumber, pr.Parsed.Body()))
	}
	return strings.Join(sections, "\n")
}
