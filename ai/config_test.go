package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.Model)
	assert.Equal(t, DefaultSkipDimension, cfg.SkipDimension)
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithProvider(ProviderLocal),
		WithModel("all-minilm"),
		WithHost("http://localhost:11434"),
		WithSkipDimension(16),
	)
	assert.Equal(t, ProviderLocal, cfg.Provider)
	assert.Equal(t, "all-minilm", cfg.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, 16, cfg.SkipDimension)
}

func TestConfigNormalizeAliases(t *testing.T) {
	cfg := NewConfig(WithProvider("local"), WithModel(""))
	cfg.Normalize()
	assert.Equal(t, ProviderLocal, cfg.Provider)
	assert.Equal(t, DefaultLocalModel, cfg.Model)

	cfg = NewConfig(WithProvider("skip"))
	cfg.Normalize()
	assert.Equal(t, ProviderNone, cfg.Provider)
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig(WithProvider(ProviderOpenAI))
	require.Error(t, cfg.Validate(), "openai without an API key must fail")

	cfg = NewConfig(WithProvider(ProviderOpenAI), WithAPIKey("sk-test"))
	require.NoError(t, cfg.Validate())

	cfg = NewConfig(WithProvider(ProviderNone))
	require.NoError(t, cfg.Validate(), "skip needs no credentials")

	cfg = NewConfig(WithProvider("carrier-pigeon"))
	require.Error(t, cfg.Validate())
}
