package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/index"
)

func entry(docKey string, seq int, text string, vector []float32) core.IndexEntry {
	return core.IndexEntry{
		Id:     core.ChunkID(docKey, seq, text),
		Vector: vector,
		Payload: core.Payload{
			DocumentKey:   docKey,
			PublishedAt:   "2026-01-01T00:00:00Z",
			SequenceIndex: seq,
			Text:          text,
		},
	}
}

func TestUpsertOverwritesByID(t *testing.T) {
	store := NewStore(3)
	ctx := context.Background()

	entries := []core.IndexEntry{
		entry("doc-1", 0, "alpha", []float32{1, 0, 0}),
		entry("doc-1", 1, "beta", []float32{0, 1, 0}),
	}

	n, err := store.Upsert(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Count())

	n, err = store.Upsert(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Count())
}

func TestUpsertRejectsWrongDimension(t *testing.T) {
	store := NewStore(3)
	_, err := store.Upsert(context.Background(), []core.IndexEntry{
		entry("doc-1", 0, "alpha", []float32{1, 0}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, index.ErrVectorDimension)
}

func TestSearchOrdersByCosine(t *testing.T) {
	store := NewStore(3)
	ctx := context.Background()

	_, err := store.Upsert(ctx, []core.IndexEntry{
		entry("doc-a", 0, "exact match", []float32{1, 0, 0}),
		entry("doc-b", 0, "orthogonal", []float32{0, 1, 0}),
		entry("doc-c", 0, "close", []float32{0.9, 0.1, 0}),
	})
	require.NoError(t, err)

	hits, err := store.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc-a", hits[0].DocumentKey)
	assert.Equal(t, "doc-c", hits[1].DocumentKey)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestSearchRespectsTopK(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := store.Upsert(ctx, []core.IndexEntry{
			entry("doc", i, string(rune('a'+i)), []float32{1, float32(i)}),
		})
		require.NoError(t, err)
	}

	hits, err := store.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestSearchEmptyStore(t *testing.T) {
	store := NewStore(3)
	hits, err := store.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchRejectsWrongDimension(t *testing.T) {
	store := NewStore(3)
	_, err := store.Search(context.Background(), []float32{1, 0}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, index.ErrVectorDimension)
}
