package vectorstore

import "strings"

// Separator preference for chunk boundaries, best first. A window that can
// end on a paragraph break does; failing that a line break, then a space,
// then a hard character cut.
var separators = []string{"\n\n", "\n", " "}

// SplitText splits text into overlapping windows of at most size characters,
// with overlap characters shared between consecutive windows. Deterministic
// for identical input and settings.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}

	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(text); {
		end := start + size
		last := end >= len(text)
		if last {
			end = len(text)
		} else {
			end = breakPoint(text, start, end)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if last {
			break
		}
		// Advance from the actual cut, not the nominal window, so a
		// separator cut never skips text between two chunks.
		next := end - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}
	return chunks
}

// breakPoint searches the last tenth of the window for the best separator
// and returns the cut position after it, falling back to the hard cut.
func breakPoint(text string, start, end int) int {
	lookBack := (end - start) / 10
	if lookBack < 1 {
		return end
	}
	limit := end - lookBack
	if limit <= start {
		limit = start + 1
	}
	for _, sep := range separators {
		if idx := strings.LastIndex(text[limit:end], sep); idx >= 0 {
			return limit + idx + len(sep)
		}
	}
	return end
}
