package logger

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldEmbeddingModel is the structured log field key for the embedding model identifier.
	FieldEmbeddingModel = "embedding_model"
	// FieldCacheDir is the structured log field key for the embedding cache directory.
	FieldCacheDir = "embedding_cache_dir"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// EmbeddingFields returns standard zap fields that describe the embedding model
// and its on-disk cache. Empty values are ignored to keep log entries compact
// when the cache is disabled or the model is unknown.
func EmbeddingFields(model, cacheDir string) []zap.Field {
	return StringFields(
		StringField{Key: FieldEmbeddingModel, Value: model},
		StringField{Key: FieldCacheDir, Value: cacheDir},
	)
}

// WithEmbeddingFields attaches the embedding fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithEmbeddingFields(logger *zap.Logger, model, cacheDir string) *zap.Logger {
	fields := EmbeddingFields(model, cacheDir)
	return WithFields(logger, fields...)
}

// DetailFields converts a detail map into zap fields with keys in sorted
// order, so repeated runs log identical entries.
func DetailFields(details map[string]string) []zap.Field {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, zap.String(key, details[key]))
	}

	return fields
}
