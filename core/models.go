package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for vector-store points.
// It is derived from document content so re-upserting the same
// article overwrites its previous point.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata is the canonical metadata shape shared by every document the
// pipeline emits. Every field is always populated: string fields default
// to their documented placeholder and slice fields are never nil.
type Metadata struct {
	Title            string   `json:"title"`
	URL              string   `json:"url"`
	ExternalID       string   `json:"external_id"`
	PublishDate      string   `json:"publish_date"`
	Datetime         string   `json:"datetime"`
	FirstPublishDate string   `json:"first_publish_date"`
	Website          string   `json:"website"`
	Sections         []string `json:"sections"`
	Categories       []string `json:"categories"`
	Tags             []string `json:"tags"`
	Thumb            string   `json:"thumb,omitempty"`
}

// Document is the canonical output record: extracted text, its embedding
// vector, and the mapped metadata. Embedding is never nil; when embeddings
// are skipped it is a zero vector of the configured default dimension.
type Document struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	Metadata  Metadata  `json:"metadata"`
}

// PointID returns the vector-store point ID for the document,
// derived from its external ID.
func (d *Document) PointID() ID {
	return IDFromContent(d.Metadata.ExternalID)
}

// Payload returns the vector-store payload: the metadata fields plus the
// document text, matching the canonical JSON field names.
func (d *Document) Payload() map[string]any {
	payload := map[string]any{
		"title":              d.Metadata.Title,
		"url":                d.Metadata.URL,
		"external_id":        d.Metadata.ExternalID,
		"publish_date":       d.Metadata.PublishDate,
		"datetime":           d.Metadata.Datetime,
		"first_publish_date": d.Metadata.FirstPublishDate,
		"website":            d.Metadata.Website,
		"sections":           toAnySlice(d.Metadata.Sections),
		"categories":         toAnySlice(d.Metadata.Categories),
		"tags":               toAnySlice(d.Metadata.Tags),
		"text":               d.Text,
	}
	if d.Metadata.Thumb != "" {
		payload["thumb"] = d.Metadata.Thumb
	}
	return payload
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
