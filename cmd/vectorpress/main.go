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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/vectorpress"
	"github.com/poiesic/vectorpress/ai"
	"github.com/poiesic/vectorpress/pipeline"
	"github.com/poiesic/vectorpress/qdrant"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env file for credentials; absence is fine
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "vectorpress",
		Usage: "Transform raw CMS exports into vector-embedded documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "transform",
				Usage:  "Normalize and embed a CMS export file",
				Action: transformCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the raw CMS export JSON array",
						Value:   "data/raw_customer_api.json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the transformed document JSON",
						Value:   "output/documents.json",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Process only the first N records",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Embedding provider (openai, sentence-transformers, none)",
						Value: ai.ProviderOpenAI,
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Local embedding model name (used when provider=sentence-transformers)",
						Value: ai.DefaultLocalModel,
					},
					&cli.StringFlag{
						Name:  "openai-model",
						Usage: "OpenAI embedding model name (used when provider=openai)",
						Value: ai.DefaultOpenAIModel,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Local embedding endpoint base URL",
						EnvVars: []string{"OLLAMA_HOST"},
					},
					&cli.BoolFlag{
						Name:  "skip-embeddings",
						Usage: "Skip embedding generation",
					},
					&cli.IntFlag{
						Name:  "skip-dimension",
						Usage: "Zero-vector length when embeddings are skipped",
						Value: ai.DefaultSkipDimension,
					},
					&cli.StringFlag{
						Name:    "qdrant-url",
						Usage:   "Qdrant endpoint URL (upload skipped when unset)",
						EnvVars: []string{"QDRANT_URL"},
					},
					&cli.StringFlag{
						Name:    "qdrant-api-key",
						Usage:   "Qdrant API key (upload skipped when unset)",
						EnvVars: []string{"QDRANT_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "qdrant-collection",
						Usage:   "Qdrant collection name",
						Value:   qdrant.DefaultCollection,
						EnvVars: []string{"QDRANT_COLLECTION"},
					},
					&cli.StringFlag{
						Name:  "store-path",
						Usage: "Keep the processed collection on disk at this path",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func transformCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	records, err := pipeline.DecodeRecords(data)
	if err != nil {
		return err
	}

	provider := c.String("provider")
	model := c.String("model")
	if provider == ai.ProviderOpenAI {
		model = c.String("openai-model")
	}

	aiConfig := ai.NewConfig(
		ai.WithProvider(provider),
		ai.WithModel(model),
		ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
		ai.WithHost(c.String("embedding-host")),
		ai.WithSkipDimension(c.Int("skip-dimension")),
	)

	opts := []vectorpress.EngineOption{
		vectorpress.WithAIConfig(aiConfig),
		vectorpress.WithLimit(c.Int("limit")),
		vectorpress.WithVectorStore(&qdrant.Config{
			URL:        c.String("qdrant-url"),
			APIKey:     c.String("qdrant-api-key"),
			Collection: c.String("qdrant-collection"),
		}),
	}
	if c.Bool("skip-embeddings") {
		opts = append(opts, vectorpress.WithSkipEmbeddings())
	}
	if path := c.String("store-path"); path != "" {
		opts = append(opts, vectorpress.WithStorePath(path))
	}

	engine, err := vectorpress.NewEngine(opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, transformErr := engine.Transform(ctx, records)
	if result == nil {
		return transformErr
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if err := writeDocuments(c.String("output"), result); err != nil {
		return err
	}

	slog.Info("transform finished",
		"documents", len(result.Documents),
		"warnings", len(result.Warnings),
		"dimension", result.Dimension,
		"output", c.String("output"))

	// A vector-store failure surfaces after the documents are written;
	// the assembled output stays valid either way.
	return transformErr
}

func writeDocuments(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result.Documents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}
