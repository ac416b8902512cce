package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/vectorpress/core"
	"github.com/poiesic/vectorpress/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	app := &cli.App{
		Name: "vectorpress",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			err := app.Run([]string{"vectorpress", "--log-level", level})
			assert.NoError(t, err, level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := app.Run([]string{"vectorpress", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestWriteDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "documents.json")
	result := &pipeline.Result{
		Documents: []core.Document{
			{
				Text:      "body",
				Embedding: []float32{0.1},
				Metadata: core.Metadata{
					Title:      "T",
					URL:        "https://example.com/1",
					ExternalID: "ext-1",
					Sections:   []string{},
					Categories: []string{},
					Tags:       []string{},
				},
			},
		},
	}

	require.NoError(t, writeDocuments(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var docs []core.Document
	require.NoError(t, json.Unmarshal(data, &docs))
	assert.Equal(t, result.Documents, docs)
}
