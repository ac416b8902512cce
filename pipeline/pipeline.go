package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/vectorpress/ai"
	"github.com/poiesic/vectorpress/core"
	"github.com/poiesic/vectorpress/normalize"
)

// Pipeline transforms raw CMS records into embedded canonical documents.
// Provider selection is fixed at construction for the pipeline's lifetime;
// one Transform call never mixes providers.
type Pipeline struct {
	embedder ai.Embedder
	mapper   *normalize.Mapper
	pool     *ants.Pool
	limit    int
	provider string
	model    string
	logger   *slog.Logger
}

// Result is the output of one pipeline run.
type Result struct {
	// Documents are the assembled records, in input order.
	Documents []core.Document

	// Warnings describe recovered per-record problems (defaulted
	// timestamps, skipped invalid records). They never abort a run.
	Warnings []string

	// Dimension is the embedding vector length for this run, or zero if
	// no document was embedded.
	Dimension int
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLimit processes only the first n records of each batch,
// preserving original order. Zero or negative means no limit.
func WithLimit(n int) Option {
	return func(p *Pipeline) error {
		p.limit = n
		return nil
	}
}

// WithPoolSize sets the worker pool size for the extract/map stage.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithMapper sets a custom metadata mapper.
func WithMapper(mapper *normalize.Mapper) Option {
	return func(p *Pipeline) error {
		if mapper != nil {
			p.mapper = mapper
		}
		return nil
	}
}

// WithProviderInfo labels provider failures with the backend name and
// model so a failed run reports which stage and provider failed.
func WithProviderInfo(provider, model string) Option {
	return func(p *Pipeline) error {
		p.provider = provider
		p.model = model
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a document pipeline over the given embedder.
func NewPipeline(embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		embedder: embedder,
		mapper:   normalize.NewMapper(),
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "pipeline")

	return p, nil
}

// Transform processes one batch of raw records to completion and returns
// the assembled documents in input order. A nil batch is an input shape
// error; an embedding failure is fatal for the whole run.
func (p *Pipeline) Transform(ctx context.Context, records []core.Record) (*Result, error) {
	if records == nil {
		return nil, core.ErrInputShape
	}

	if p.limit > 0 && len(records) > p.limit {
		records = records[:p.limit]
	}
	p.logger.Info("transforming records", "records", len(records))

	docs := make([]*core.Document, len(records))
	needsEmbed := make([]bool, len(records))
	recordWarnings := make([][]string, len(records))

	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			// Already-canonical documents pass through unchanged,
			// embedding included.
			if doc, ok := record.AsDocument(); ok {
				docs[i] = doc
				return
			}
			meta, warnings := p.mapper.Map(record, i)
			docs[i] = &core.Document{
				Text:     normalize.ExtractText(record),
				Metadata: meta,
			}
			needsEmbed[i] = true
			recordWarnings[i] = warnings
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, submitErr
		}
	}
	wg.Wait()

	dimension, err := p.embed(ctx, docs, needsEmbed)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Documents: make([]core.Document, 0, len(docs)),
		Warnings:  []string{},
		Dimension: dimension,
	}
	for i, doc := range docs {
		result.Warnings = append(result.Warnings, recordWarnings[i]...)

		// Pass-through documents were assembled elsewhere; validate them
		// against the output contract but not against this run's dimension.
		checkDim := dimension
		if !needsEmbed[i] {
			checkDim = 0
		}
		if err := core.ValidateDocument(doc, checkDim); err != nil {
			p.logger.Warn("skipping invalid record", "record", doc.Metadata.ExternalID, "err", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("record %s: skipped: %v", doc.Metadata.ExternalID, err))
			continue
		}
		result.Documents = append(result.Documents, *doc)
	}

	p.logger.Info("transform complete",
		"documents", len(result.Documents), "warnings", len(result.Warnings), "dimension", dimension)
	return result, nil
}

// embed generates vectors for the documents flagged in needsEmbed and
// returns the run's embedding dimension. Vector i always corresponds to
// text i; a count mismatch from the provider is a provider error.
func (p *Pipeline) embed(ctx context.Context, docs []*core.Document, needsEmbed []bool) (int, error) {
	indices := make([]int, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for i, doc := range docs {
		if needsEmbed[i] {
			indices = append(indices, i)
			texts = append(texts, doc.Text)
		}
	}
	if len(texts) == 0 {
		return 0, nil
	}

	p.logger.Debug("generating embeddings", "count", len(texts))
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, &core.ProviderError{Provider: p.provider, Model: p.model, Err: err}
	}
	if len(vectors) != len(texts) {
		return 0, &core.ProviderError{
			Provider: p.provider,
			Model:    p.model,
			Err:      fmt.Errorf("embedding result mismatch: expected %d, received %d", len(texts), len(vectors)),
		}
	}

	for j, i := range indices {
		docs[i].Embedding = vectors[j]
	}
	return len(vectors[0]), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// DecodeRecords parses a JSON payload into a batch of raw records.
// A payload that is not an array of records is an input shape error,
// rejected before any processing begins.
func DecodeRecords(data []byte) ([]core.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, core.ErrInputShape
	}
	var records []core.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInputShape, err)
	}
	return records, nil
}
