package storage

import (
	"context"

	"github.com/poiesic/vectorpress/core"
)

// DocumentStore holds the latest processed document collection.
// Implementations must be thread-safe and support concurrent access.
type DocumentStore interface {
	// ReplaceAll replaces the stored collection with docs in one
	// transaction. There is no cross-run merge: the previous collection
	// is discarded entirely.
	ReplaceAll(ctx context.Context, docs []core.Document) error

	// Documents returns the stored collection in its original order.
	// An empty store yields an empty, non-nil slice.
	Documents(ctx context.Context) ([]core.Document, error)

	// Len returns the number of stored documents.
	Len(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
