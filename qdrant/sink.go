// Package qdrant implements the optional vector sink: upsert of embedded
// documents into a Qdrant collection with cosine distance.
//
// The sink is active only when both the store URL and API key are
// configured; otherwise the upload is deliberately skipped. Upsert
// failures surface as core.StoreError; the assembled documents remain
// valid in memory and are still returned to the caller.
package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/poiesic/vectorpress/core"
	qc "github.com/qdrant/go-client/qdrant"
)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "documents"

const defaultGRPCPort = 6334

// Config holds vector store connection settings.
type Config struct {
	// URL is the Qdrant endpoint, e.g. "https://xyz.cloud.qdrant.io:6334".
	URL string

	// APIKey authenticates against the store.
	APIKey string

	// Collection is the target collection name.
	// Default: DefaultCollection.
	Collection string
}

// Enabled reports whether the sink should be active. Both the URL and
// the API key must be present; anything less means the upload is skipped.
func (c *Config) Enabled() bool {
	return c != nil && c.URL != "" && c.APIKey != ""
}

// Sink upserts embedded documents into a Qdrant collection. It satisfies
// the root package's VectorSink interface.
type Sink struct {
	client     *qc.Client
	collection string
	logger     *slog.Logger
}

// NewSink connects to the configured Qdrant endpoint.
func NewSink(config *Config) (*Sink, error) {
	if !config.Enabled() {
		return nil, fmt.Errorf("vector store URL and API key are required")
	}

	host, port, useTLS, err := parseEndpoint(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid vector store URL %q: %w", config.URL, err)
	}

	client, err := qc.NewClient(&qc.Config{
		Host:   host,
		Port:   port,
		APIKey: config.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, err
	}

	collection := config.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	return &Sink{
		client:     client,
		collection: collection,
		logger:     slog.Default().With("component", "qdrant-sink", "collection", collection),
	}, nil
}

// EnsureCollection creates the target collection with cosine distance and
// the given vector size if it does not already exist.
func (s *Sink) EnsureCollection(ctx context.Context, dim int) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return &core.StoreError{Op: "collection check", Err: err}
	}
	if exists {
		return nil
	}

	s.logger.Info("creating collection", "dimension", dim)
	err = s.client.CreateCollection(ctx, &qc.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qc.NewVectorsConfig(&qc.VectorParams{
			Size:     uint64(dim),
			Distance: qc.Distance_Cosine,
		}),
	})
	if err != nil {
		return &core.StoreError{Op: "collection create", Err: err}
	}
	return nil
}

// Upsert writes the documents as {id, vector, payload} points. Point IDs
// derive from each document's external ID, so re-upserting an article
// overwrites its previous point.
func (s *Sink) Upsert(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qc.PointStruct, len(docs))
	for i := range docs {
		doc := &docs[i]
		points[i] = &qc.PointStruct{
			Id:      qc.NewIDNum(uint64(doc.PointID())),
			Vectors: qc.NewVectors(doc.Embedding...),
			Payload: qc.NewValueMap(doc.Payload()),
		}
	}

	if _, err := s.client.Upsert(ctx, &qc.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return &core.StoreError{Op: "upsert", Err: err}
	}

	s.logger.Info("upserted vectors", "points", len(points))
	return nil
}

// Close releases the underlying client connection.
func (s *Sink) Close() error {
	return s.client.Close()
}

// parseEndpoint splits a store URL into the client's host/port/TLS form.
// A bare "host:port" without a scheme is accepted and treated as plain gRPC.
func parseEndpoint(raw string) (string, int, bool, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", 0, false, err
	}
	if u.Host == "" {
		// No scheme: url.Parse put everything in the path
		u, err = url.Parse("grpc://" + raw)
		if err != nil || u.Host == "" {
			return "", 0, false, fmt.Errorf("no host in URL")
		}
	}

	port := defaultGRPCPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return "", 0, false, err
		}
	}

	return u.Hostname(), port, u.Scheme == "https", nil
}
