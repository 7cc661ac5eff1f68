// Package embedding produces sentence vectors for semantic keyword matching.
// The concrete backend is a MiniLM-class transformer served through ONNX
// Runtime; everything above it talks to the Embedder interface so tests can
// swap in fixed vectors.
package embedding

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Embedder turns text into dense vectors. Implementations must be safe for
// repeated calls and must return vectors that are stable for equal input.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	ModelID() string
	Close() error
}

// Config locates the embedding model on disk.
type Config struct {
	// LibraryPath points at the onnxruntime shared library. Empty means the
	// platform default lookup.
	LibraryPath string `mapstructure:"library-path"`
	// ModelPath is the exported .onnx model file.
	ModelPath string `mapstructure:"model-path"`
	// TokenizerPath is the HuggingFace tokenizer.json shipped next to the
	// model.
	TokenizerPath string `mapstructure:"tokenizer-path"`
	// MaxSeqLen truncates tokenized input. Zero means the default.
	MaxSeqLen int `mapstructure:"max-seq-len"`
	// ModelID names the model inside cache keys. Empty derives it from the
	// model file name.
	ModelID string `mapstructure:"model-id"`
	// CacheDir enables the on-disk vector cache when set.
	CacheDir string `mapstructure:"cache-dir"`
}

const defaultMaxSeqLen = 256

// DefaultConfig returns the embedding defaults. Model and tokenizer paths
// have no sane default and must come from the config file.
func DefaultConfig() *Config {
	return &Config{MaxSeqLen: defaultMaxSeqLen}
}

// Validate checks that the config names the files the encoder cannot run
// without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("embedding model-path is required")
	}
	if strings.TrimSpace(c.TokenizerPath) == "" {
		return fmt.Errorf("embedding tokenizer-path is required")
	}
	return nil
}

// modelID resolves the cache identity of the configured model.
func (c *Config) modelID() string {
	if c.ModelID != "" {
		return c.ModelID
	}
	base := filepath.Base(c.ModelPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
