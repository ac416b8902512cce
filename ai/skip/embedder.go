// Package skip implements the "none" embedding variant: zero vectors of
// a configured dimension, produced without contacting any backend.
package skip

import (
	"context"

	"github.com/poiesic/vectorpress/ai"
)

// Embedder emits zero vectors. It exists so documents produced by a
// skip-embeddings run still carry a fixed-length embedding field.
type Embedder struct {
	dim int
}

// NewEmbedder creates a skip embedder emitting zero vectors of the
// configured dimension. Dimensions below zero are treated as zero,
// which yields empty vectors.
func NewEmbedder(dim int) ai.Embedder {
	if dim < 0 {
		dim = 0
	}
	return &Embedder{dim: dim}
}

// EmbedText returns a zero vector.
func (e *Embedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return make([]float32, e.dim), nil
}

// EmbedTexts returns one zero vector per input text.
func (e *Embedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, e.dim)
	}
	return vectors, nil
}
