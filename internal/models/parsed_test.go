package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompletionStructured(t *testing.T) {
	p := ParseCompletion(`{"raw_response":"the markdown","summary":"short","keywords":["a","b"],"category":"market"}`)

	assert.True(t, p.Structured)
	assert.Equal(t, "the markdown", p.Body())
	assert.Equal(t, []string{"a", "b"}, p.Keywords())

	s, ok := p.Summary()
	assert.True(t, ok)
	assert.Equal(t, "short", s)

	c, ok := p.Category()
	assert.True(t, ok)
	assert.Equal(t, "market", c)
}

func TestParseCompletionRaw(t *testing.T) {
	p := ParseCompletion("not json { at all")

	assert.False(t, p.Structured)
	assert.Equal(t, "not json { at all", p.Body())
	assert.Nil(t, p.Keywords())

	_, ok := p.Summary()
	assert.False(t, ok)
}

func TestParseCompletionNonObjectJSON(t *testing.T) {
	// Arrays and scalars parse as JSON but are not structured page results.
	p := ParseCompletion(`["just","a","list"]`)
	assert.False(t, p.Structured)
	assert.Equal(t, `["just","a","list"]`, p.Body())
}

func TestChunkIDFormat(t *testing.T) {
	assert.Equal(t, "005930_0001", ChunkID("005930", 1))
	assert.Equal(t, "AAPL_0042", ChunkID("AAPL", 42))
	assert.Equal(t, "T_12345", ChunkID("T", 12345))
}
