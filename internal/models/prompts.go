package models

// Prompt templates for per-page parsing. The completion call receives one of
// these as the system prompt and the page text as the user content.
const (
	DefaultPromptType = "default"

	defaultPrompt = `You are a financial analyst. Extract the key information from this page of a
financial report. Respond with JSON containing "summary" (a short summary of the page),
"keywords" (a list of important terms), "category" (one of: earnings, guidance, balance-sheet,
market, governance, other) and "raw_response" (the page content rewritten as clean Markdown).
If the page has no meaningful content, return the Markdown alone in "raw_response".`

	detailedPrompt = `You are a financial analyst. Rewrite this page of a financial report as
detailed, well-structured Markdown. Preserve every figure, table and footnote. Respond with JSON
containing "summary", "keywords", "category" and "raw_response" holding the full Markdown.`
)

var prompts = map[string]string{
	"default":  defaultPrompt,
	"detailed": detailedPrompt,
}

// Prompt returns the template registered for promptType, falling back to the
// default template for unknown types.
func Prompt(promptType string) string {
	if p, ok := prompts[promptType]; ok {
		return p
	}
	return prompts[DefaultPromptType]
}

// PageContent formats the user message for one page's completion call.
const PageContentFormat = "Page %d content:\n\n%s"
