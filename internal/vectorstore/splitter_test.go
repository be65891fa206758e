package vectorstore

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextDeterministic(t *testing.T) {
	text := strings.Repeat("Quarterly revenue was strong.\n\nOperating margin improved again. ", 40)

	first := SplitText(text, 200, 80)
	second := SplitText(text, 200, 80)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestSplitTextRespectsSize(t *testing.T) {
	text := strings.Repeat("net income rose across all segments ", 100)
	for _, chunk := range SplitText(text, 150, 50) {
		assert.LessOrEqual(t, len(chunk), 150)
	}
}

func TestSplitTextShortInputSingleChunk(t *testing.T) {
	chunks := SplitText("  short report  ", 1024, 512)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short report", chunks[0])
}

func TestSplitTextOverlapSharesContent(t *testing.T) {
	// Unbroken text forces hard cuts, so the window math is exact.
	text := strings.Repeat("a", 2500)
	chunks := SplitText(text, 1000, 500)

	require.Len(t, chunks, 4)
	assert.Equal(t, strings.Repeat("a", 1000), chunks[0])
	for i := 1; i < len(chunks); i++ {
		// Each chunk starts 500 characters after the previous one.
		assert.Equal(t, chunks[i-1][500:], chunks[i][:500])
	}
}

func TestSplitTextPrefersParagraphBreaks(t *testing.T) {
	text := strings.Repeat("x", 95) + "\n\n" + strings.Repeat("y", 200)
	chunks := SplitText(text, 100, 10)

	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("x", 95), chunks[0])
}

func TestSplitTextSmallOverlapKeepsAllContent(t *testing.T) {
	// A separator cut just before a marker, combined with an overlap smaller
	// than the cut distance, must not skip the text after the cut.
	text := strings.Repeat("a", 92) + " " + "ZZ" + strings.Repeat("b", 205)
	chunks := SplitText(text, 100, 5)

	require.NotEmpty(t, chunks)
	found := false
	for _, chunk := range chunks {
		if strings.Contains(chunk, "ZZ") {
			found = true
			break
		}
	}
	assert.True(t, found, "marker text lost between chunks")
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	var words []string
	for i := 0; i < 120; i++ {
		words = append(words, fmt.Sprintf("w%03dxyz", i))
	}
	text := strings.Join(words, " ")

	chunks := SplitText(text, 200, 10)
	require.NotEmpty(t, chunks)

	// Every word of the input must survive in at least one chunk.
	joined := strings.Join(chunks, " ")
	for _, word := range words {
		assert.Contains(t, joined, word)
	}
}

func TestSplitTextEmptyAndInvalid(t *testing.T) {
	assert.Nil(t, SplitText("", 100, 10))
	assert.Nil(t, SplitText("   ", 100, 10))
	assert.Nil(t, SplitText("text", 0, 0))
}
