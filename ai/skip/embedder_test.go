package skip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedTextsZeroVectors(t *testing.T) {
	embedder := NewEmbedder(4)

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for _, vec := range vectors {
		assert.Equal(t, []float32{0, 0, 0, 0}, vec)
	}
}

func TestEmbedTextZeroDimension(t *testing.T) {
	embedder := NewEmbedder(0)
	vec, err := embedder.EmbedText(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotNil(t, vec)
	assert.Empty(t, vec)

	// Negative dimensions clamp to zero
	vec, err = NewEmbedder(-3).EmbedText(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, vec)
}
