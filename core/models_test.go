package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	id1 := IDFromContent("article-123")
	id2 := IDFromContent("article-123")
	id3 := IDFromContent("article-124")

	assert.Equal(t, id1, id2, "identical content must produce identical IDs")
	assert.NotEqual(t, id1, id3)
	assert.NotZero(t, id1)
}

func TestDocumentPayload(t *testing.T) {
	doc := &Document{
		Text: "body",
		Metadata: Metadata{
			Title:      "A title",
			URL:        "https://example.com/a",
			ExternalID: "ext-1",
			Sections:   []string{"news"},
			Categories: []string{},
			Tags:       []string{"go"},
		},
	}

	payload := doc.Payload()
	assert.Equal(t, "body", payload["text"])
	assert.Equal(t, "A title", payload["title"])
	assert.Equal(t, []any{"news"}, payload["sections"])
	assert.Equal(t, []any{}, payload["categories"])
	assert.NotContains(t, payload, "thumb")

	doc.Metadata.Thumb = "https://cdn.example.com/a.jpg"
	assert.Equal(t, "https://cdn.example.com/a.jpg", doc.Payload()["thumb"])
}
