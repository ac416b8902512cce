package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/vectorpress/core"
	"github.com/poiesic/vectorpress/storage"
)

// DocumentRepository implements storage.DocumentStore on a Badger backend.
type DocumentRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.DocumentStore = (*DocumentRepository)(nil)

// NewDocumentRepository creates a document store on the given backend.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{
		backend: backend,
		logger:  slog.Default().With("component", "document-store"),
	}
}

// ReplaceAll replaces the stored collection with docs in one transaction.
func (r *DocumentRepository) ReplaceAll(ctx context.Context, docs []core.Document) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	encoded := make([][]byte, len(docs))
	for i := range docs {
		data, err := storage.MarshalDocument(&docs[i])
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	err := r.backend.Update(func(tx *badger.Txn) error {
		if err := deletePrefix(tx, []byte(documentPrefix)); err != nil {
			return err
		}
		for i, data := range encoded {
			if err := tx.Set(documentKey(uint32(i)), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("replaced document collection", "documents", len(docs))
	return nil
}

// Documents returns the stored collection in its original order.
func (r *DocumentRepository) Documents(ctx context.Context) ([]core.Document, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	docs := []core.Document{}
	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Big-endian position keys iterate in insertion order.
		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				doc, err := storage.UnmarshalDocument(val)
				if err != nil {
					return err
				}
				docs = append(docs, *doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Len returns the number of stored documents.
func (r *DocumentRepository) Len(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying backend.
func (r *DocumentRepository) Close() error {
	return r.backend.Close()
}

func deletePrefix(tx *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
