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


package ai

import (
	"errors"
	"fmt"
)

// Provider names accepted by Config.Provider.
const (
	// ProviderOpenAI embeds through the hosted OpenAI API.
	ProviderOpenAI = "openai"

	// ProviderLocal embeds through a local model served on an
	// Ollama-compatible endpoint. The name is kept for CLI backward
	// compatibility.
	ProviderLocal = "sentence-transformers"

	// ProviderNone skips embedding generation entirely.
	ProviderNone = "none"
)

// Default models per provider.
const (
	DefaultOpenAIModel = "text-embedding-3-small"
	DefaultLocalModel  = "all-minilm"
)

// DefaultSkipDimension is the zero-vector length used when embeddings
// are skipped and no dimension is configured.
const DefaultSkipDimension = 32

// Config holds embedding provider configuration for one pipeline run.
type Config struct {
	// Provider selects the embedding backend: ProviderOpenAI,
	// ProviderLocal, or ProviderNone.
	Provider string

	// Model is the embedding model identifier.
	// Example: "text-embedding-3-small", "all-minilm"
	Model string

	// APIKey authenticates against the hosted provider.
	// Required for ProviderOpenAI.
	APIKey string

	// Host is the base URL of the local embedding endpoint.
	// Empty means the client default (http://localhost:11434).
	Host string

	// SkipDimension is the zero-vector length emitted by ProviderNone.
	// Default: DefaultSkipDimension.
	SkipDimension int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the embedding backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the hosted provider credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithHost sets the local embedding endpoint base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithSkipDimension sets the zero-vector length for skipped embeddings.
func WithSkipDimension(dim int) ConfigOption {
	return func(c *Config) {
		c.SkipDimension = dim
	}
}

// DefaultConfig returns a Config with the hosted provider and its
// default model selected.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderOpenAI,
		Model:         DefaultOpenAIModel,
		SkipDimension: DefaultSkipDimension,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in canonical form: provider
// aliases are resolved and per-provider model defaults filled in.
func (c *Config) Normalize() {
	switch c.Provider {
	case "local", "ollama":
		c.Provider = ProviderLocal
	case "skip":
		c.Provider = ProviderNone
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderOpenAI:
			c.Model = DefaultOpenAIModel
		case ProviderLocal:
			c.Model = DefaultLocalModel
		}
	}
	if c.SkipDimension <= 0 {
		c.SkipDimension = DefaultSkipDimension
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKey == "" {
			return errors.New("ai config: APIKey is required for the openai provider")
		}
	case ProviderLocal, ProviderNone:
	default:
		return fmt.Errorf("ai config: unknown provider %q", c.Provider)
	}
	if c.Provider != ProviderNone && c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	return nil
}
