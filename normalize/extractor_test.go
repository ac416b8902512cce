package normalize

import (
	"testing"

	"github.com/poiesic/vectorpress/core"
	"github.com/stretchr/testify/assert"
)

func TestExtractTextKeepsOnlyTextBlocks(t *testing.T) {
	record := core.Record{
		"content_elements": []any{
			map[string]any{"type": "image", "url": "https://cdn.example.com/a.jpg"},
			map[string]any{"type": "text", "content": "A"},
			map[string]any{"type": "table", "rows": []any{"x", "y"}},
			map[string]any{"type": "text", "content": "B"},
		},
	}

	assert.Equal(t, "A B", ExtractText(record))
}

func TestExtractTextStripsHTML(t *testing.T) {
	record := core.Record{
		"content_elements": []any{
			map[string]any{"type": "text", "content": "<p>First <b>bold</b> paragraph.</p>"},
			map[string]any{"type": "text", "content": "Plain second."},
		},
	}

	text := ExtractText(record)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "First")
	assert.Contains(t, text, "bold")
	assert.Contains(t, text, "Plain second.")
}

func TestExtractTextSkipsMalformedBlocks(t *testing.T) {
	record := core.Record{
		"content_elements": []any{
			"not a block at all",
			map[string]any{"type": "text"},
			map[string]any{"type": "text", "content": float64(42)},
			map[string]any{"type": "text", "content": "Survivor"},
		},
	}

	assert.Equal(t, "Survivor", ExtractText(record))
}

func TestExtractTextFlatFieldFallback(t *testing.T) {
	tests := []struct {
		name     string
		record   core.Record
		expected string
	}{
		{"text field wins", core.Record{"text": "from text", "body": "from body"}, "from text"},
		{"body next", core.Record{"body": "from body", "content": "from content"}, "from body"},
		{"content next", core.Record{"content": "from content", "summary": "from summary"}, "from content"},
		{"summary last", core.Record{"summary": "from summary"}, "from summary"},
		{"empty fields are skipped", core.Record{"text": "", "body": "from body"}, "from body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractText(tt.record))
		})
	}
}

func TestExtractTextPlaceholder(t *testing.T) {
	assert.Equal(t, NoContentPlaceholder, ExtractText(core.Record{"title": "No body here"}))
	assert.Equal(t, NoContentPlaceholder, ExtractText(core.Record{
		"content_elements": []any{map[string]any{"type": "image"}},
	}))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain text untouched", "just words", "just words"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"tags removed", "<div><p>hello</p></div>", "hello"},
		{"entities decoded", "fish &amp; chips", "fish & chips"},
		{"spaces around newlines collapse", "line one  \n\t line two", "line one\nline two"},
		{"trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.in))
		})
	}
}
