// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package vectorpress turns heterogeneous CMS article exports into
// normalized, vector-embedded documents ready for upsert into a vector
// search store.
package vectorpress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/vectorpress/ai"
	"github.com/poiesic/vectorpress/ai/local"
	"github.com/poiesic/vectorpress/ai/openai"
	"github.com/poiesic/vectorpress/ai/skip"
	"github.com/poiesic/vectorpress/core"
	"github.com/poiesic/vectorpress/pipeline"
	"github.com/poiesic/vectorpress/qdrant"
	"github.com/poiesic/vectorpress/storage"
	"github.com/poiesic/vectorpress/storage/badger"
)

// VectorSink receives the embedded documents of a successful run.
// *qdrant.Sink is the production implementation.
type VectorSink interface {
	// EnsureCollection prepares the target collection for vectors of the
	// given dimension, creating it if needed.
	EnsureCollection(ctx context.Context, dim int) error

	// Upsert writes the documents to the collection.
	Upsert(ctx context.Context, docs []core.Document) error

	// Close releases the sink's resources.
	Close() error
}

var _ VectorSink = (*qdrant.Sink)(nil)

// Engine wires the document pipeline to an embedding provider, the
// process-scoped document store, and the optional vector sink. One
// engine serves one provider configuration; runs are serialized by the
// caller and each successful run replaces the stored collection wholesale.
type Engine struct {
	pipe    *pipeline.Pipeline
	sink    VectorSink
	store   storage.DocumentStore
	skipped bool
	logger  *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	embedder       ai.Embedder
	skipEmbeddings bool
	limit          int
	storeConfig    *qdrant.Config
	sink           VectorSink
	storePath      string
}

// WithAIConfig sets the embedding provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects a pre-built embedder, bypassing provider
// construction from the AI config.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithSkipEmbeddings disables embedding generation for the engine's
// runs: documents carry zero vectors of the configured dimension and no
// provider is ever contacted.
func WithSkipEmbeddings() EngineOption {
	return func(o *engineOptions) {
		o.skipEmbeddings = true
	}
}

// WithLimit processes only the first n records of each batch.
func WithLimit(n int) EngineOption {
	return func(o *engineOptions) {
		o.limit = n
	}
}

// WithVectorStore configures the optional vector sink. The sink is
// active only when the config carries both a URL and an API key;
// otherwise uploads are silently skipped.
func WithVectorStore(config *qdrant.Config) EngineOption {
	return func(o *engineOptions) {
		o.storeConfig = config
	}
}

// WithSink injects a pre-built vector sink, bypassing sink construction
// from the vector store config.
func WithSink(sink VectorSink) EngineOption {
	return func(o *engineOptions) {
		o.sink = sink
	}
}

// WithStorePath keeps the latest processed collection on disk at the
// given path instead of the default in-memory store.
func WithStorePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.storePath = path
	}
}

// NewEngine creates an engine from the provided options.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	skipped := options.skipEmbeddings || options.aiConfig.Provider == ai.ProviderNone

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = newEmbedder(options.aiConfig, skipped)
		if err != nil {
			return nil, err
		}
	}

	pipe, err := pipeline.NewPipeline(embedder,
		pipeline.WithLimit(options.limit),
		pipeline.WithProviderInfo(options.aiConfig.Provider, options.aiConfig.Model),
	)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(options.storePath, options.storePath == "")
	if err != nil {
		pipe.Release()
		return nil, err
	}
	store := badger.NewDocumentRepository(backend)

	logger := slog.Default()

	sink := options.sink
	if sink == nil {
		if options.storeConfig.Enabled() {
			qdrantSink, sinkErr := qdrant.NewSink(options.storeConfig)
			if sinkErr != nil {
				store.Close()
				pipe.Release()
				return nil, sinkErr
			}
			sink = qdrantSink
		} else {
			logger.Info("vector store not configured; upload will be skipped")
		}
	}

	return &Engine{
		pipe:    pipe,
		sink:    sink,
		store:   store,
		skipped: skipped,
		logger:  logger,
	}, nil
}

func newEmbedder(config *ai.Config, skipped bool) (ai.Embedder, error) {
	if skipped {
		config.Normalize()
		return skip.NewEmbedder(config.SkipDimension), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Provider {
	case ai.ProviderOpenAI:
		return openai.NewEmbedder(config)
	case ai.ProviderLocal:
		return local.NewEmbedder(config)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", config.Provider)
	}
}

// Transform runs one batch through the pipeline, replaces the stored
// collection on success, and pushes to the vector sink when one is
// configured and embeddings were generated.
//
// A vector-store failure is returned alongside the result: the assembled
// documents remain valid and the caller decides whether the run failed.
func (e *Engine) Transform(ctx context.Context, records []core.Record) (*pipeline.Result, error) {
	result, err := e.pipe.Transform(ctx, records)
	if err != nil {
		return nil, err
	}

	if err := e.store.ReplaceAll(ctx, result.Documents); err != nil {
		return result, fmt.Errorf("replacing document store: %w", err)
	}

	if e.sink != nil && !e.skipped && result.Dimension > 0 {
		if err := e.sink.EnsureCollection(ctx, result.Dimension); err != nil {
			return result, err
		}
		if err := e.sink.Upsert(ctx, result.Documents); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Documents returns the latest successfully processed collection.
func (e *Engine) Documents(ctx context.Context) ([]core.Document, error) {
	return e.store.Documents(ctx)
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	e.pipe.Release()
	if e.sink != nil {
		if err := e.sink.Close(); err != nil {
			e.logger.Error("error closing vector sink", "err", err)
		}
	}
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing document store", "err", err)
		return err
	}
	return nil
}
