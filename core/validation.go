package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDocument checks a canonical document against the output
// contract: non-empty text, populated external_id and url, ISO-8601 UTC
// timestamps, and (when dim > 0) an embedding of the run's dimension.
func ValidateDocument(doc *Document, dim int) error {
	if strings.TrimSpace(doc.Text) == "" {
		return ErrEmptyText
	}
	if doc.Metadata.ExternalID == "" {
		return fmt.Errorf("%w: external_id", ErrMissingMetadata)
	}
	if doc.Metadata.URL == "" {
		return fmt.Errorf("%w: url", ErrMissingMetadata)
	}
	for field, value := range map[string]string{
		"publish_date":       doc.Metadata.PublishDate,
		"datetime":           doc.Metadata.Datetime,
		"first_publish_date": doc.Metadata.FirstPublishDate,
	} {
		if value == "" {
			continue
		}
		if err := validateTimestamp(value); err != nil {
			return fmt.Errorf("metadata.%s: %w", field, err)
		}
	}
	if dim > 0 && len(doc.Embedding) != dim {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, dim, len(doc.Embedding))
	}
	return nil
}

func validateTimestamp(value string) error {
	if !strings.HasSuffix(value, "Z") {
		return ErrInvalidTimestamp
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return ErrInvalidTimestamp
	}
	return nil
}
