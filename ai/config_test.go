package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1024, cfg.Dimension)
	assert.Equal(t, 32, cfg.BatchSize)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://embeddings:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithAPIKeyEnv("EMBEDDINGS_KEY"),
		WithDimension(1536),
		WithBatchSize(8),
		WithMaxInputWords(512),
		WithTimeout(10*time.Second),
	)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://embeddings:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "EMBEDDINGS_KEY", cfg.APIKeyEnv)
	assert.Equal(t, 1536, cfg.Dimension)
	assert.Equal(t, 8, cfg.BatchSize)
	assert.Equal(t, 512, cfg.MaxInputWords)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestNormalize_AddsV1Suffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "no suffix", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "already normalized", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithEmbeddingHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
		})
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty host", mutate: func(c *Config) { c.EmbeddingHost = "" }},
		{name: "empty model", mutate: func(c *Config) { c.EmbeddingModel = "" }},
		{name: "zero dimension", mutate: func(c *Config) { c.Dimension = 0 }},
		{name: "negative dimension", mutate: func(c *Config) { c.Dimension = -1 }},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchSize = 0 }},
		{name: "zero max input words", mutate: func(c *Config) { c.MaxInputWords = 0 }},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
