package newsvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-data/newsvec/ai"
	"github.com/coriolis-data/newsvec/chunk"
	"github.com/coriolis-data/newsvec/index/qdrant"
	"github.com/coriolis-data/newsvec/normalize"
)

func testSystem(t *testing.T, opts ...SystemOption) *System {
	t.Helper()

	system, err := NewSystem(
		qdrant.Config{
			URL:        "http://localhost:6333",
			Collection: "articles",
			Dimension:  1024,
		},
		ai.NewConfig(
			ai.WithEmbeddingHost("http://localhost:11434"),
			ai.WithEmbeddingModel("jina-embeddings-v3"),
		),
		opts...,
	)
	require.NoError(t, err)
	t.Cleanup(func() { system.Close() })
	return system
}

func TestNewSystem(t *testing.T) {
	system := testSystem(t)

	assert.NotNil(t, system.Store())
	assert.NotNil(t, system.Provider())
	assert.Equal(t, 1024, system.Store().Dimension())

	// No ledger without a data dir.
	assert.Nil(t, system.FeedRepository())
	assert.Nil(t, system.CheckpointRepository())
}

func TestNewSystemWithDataDir(t *testing.T) {
	system := testSystem(t, WithDataDir(t.TempDir()))

	assert.NotNil(t, system.FeedRepository())
	assert.NotNil(t, system.CheckpointRepository())
}

func TestNewSystemRejectsBadConfig(t *testing.T) {
	_, err := NewSystem(
		qdrant.Config{Collection: "articles", Dimension: 1024},
		ai.DefaultConfig(),
	)
	assert.Error(t, err)

	_, err = NewSystem(
		qdrant.Config{URL: "http://localhost:6333", Collection: "articles", Dimension: 1024},
		ai.NewConfig(ai.WithEmbeddingModel("")),
	)
	assert.Error(t, err)
}

func TestSystemFactoryMethods(t *testing.T) {
	system := testSystem(t)

	normalizer, err := normalize.New(normalize.UnitSeconds)
	require.NoError(t, err)

	pipeline, err := system.NewIngestionPipeline(normalizer, chunk.New())
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	defer pipeline.Release()

	searcher, err := system.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)
}
