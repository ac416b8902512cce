package normalize

import (
	"regexp"
	"strings"

	"github.com/poiesic/vectorpress/core"
	"golang.org/x/net/html"
)

// NoContentPlaceholder is returned when a record carries no extractable text.
const NoContentPlaceholder = "No content provided"

// flatTextFields are tried in order when a record has no content_elements.
var flatTextFields = []string{"text", "body", "content", "summary"}

var newlineSpacing = regexp.MustCompile(`[ \t]*\n[ \t]*`)

// ExtractText converts a raw record's content into a single plain-text
// string. Structured content blocks win over flat body fields; only
// blocks typed "text" contribute, in their original order, joined by a
// single space. Malformed blocks are skipped, never an error.
func ExtractText(record core.Record) string {
	if blocks := record.List("content_elements"); len(blocks) > 0 {
		segments := make([]string, 0, len(blocks))
		for _, block := range blocks {
			if block.String("type") != "text" {
				continue
			}
			raw := block.String("content")
			if raw == "" {
				raw = block.String("text")
			}
			if cleaned := CleanText(raw); cleaned != "" {
				segments = append(segments, cleaned)
			}
		}
		if len(segments) > 0 {
			return strings.Join(segments, " ")
		}
	}

	for _, field := range flatTextFields {
		if cleaned := CleanText(record.String(field)); cleaned != "" {
			return cleaned
		}
	}

	return NoContentPlaceholder
}

// CleanText makes a text segment consistent and readable: NBSP becomes a
// plain space, markup is stripped, spaces around newlines are collapsed,
// and leading/trailing whitespace is dropped.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.ReplaceAll(raw, "\u00a0", " ")
	// Plain text passes through untouched
	if strings.ContainsAny(text, "<&") {
		text = stripHTML(text)
	}
	text = newlineSpacing.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// stripHTML removes markup and keeps the words. Text nodes are joined
// with newlines so adjacent elements don't run together.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var parts []string
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			parts = append(parts, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.Join(parts, "\n")
}
