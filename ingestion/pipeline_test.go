package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-data/newsvec/ai"
	"github.com/coriolis-data/newsvec/ai/mock"
	"github.com/coriolis-data/newsvec/chunk"
	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/index/memory"
	"github.com/coriolis-data/newsvec/normalize"
)

func newTestPipeline(t *testing.T, store *memory.Store, provider ai.Provider, opts ...Option) *Pipeline {
	t.Helper()

	normalizer, err := normalize.New(normalize.UnitSeconds)
	require.NoError(t, err)

	chunker := chunk.New(chunk.WithMaxWords(100))

	opts = append([]Option{WithRetry(1, time.Millisecond)}, opts...)
	pipeline, err := NewPipeline(normalizer, chunker, store, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)
	return pipeline
}

func article(key string, words int) core.RawRecord {
	return core.RawRecord{
		"an":                   key,
		"publication_datetime": int64(1767225600), // 2026-01-01T00:00:00Z
		"word_count":           words,
		"body":                 strings.Repeat("word ", words-1) + "word",
	}
}

func TestNewPipelineValidation(t *testing.T) {
	normalizer, err := normalize.New(normalize.UnitSeconds)
	require.NoError(t, err)
	chunker := chunk.New()
	store := memory.NewStore(mock.DefaultDimension)
	provider := mock.NewMockProvider()

	_, err = NewPipeline(nil, chunker, store, provider)
	assert.ErrorIs(t, err, ErrNormalizerRequired)

	_, err = NewPipeline(normalizer, nil, store, provider)
	assert.ErrorIs(t, err, ErrChunkerRequired)

	_, err = NewPipeline(normalizer, chunker, nil, provider)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewPipeline(normalizer, chunker, store, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestNewPipelineRejectsDimensionMismatch(t *testing.T) {
	normalizer, err := normalize.New(normalize.UnitSeconds)
	require.NoError(t, err)

	store := memory.NewStore(1024) // mock embedder produces 64
	_, err = NewPipeline(normalizer, chunk.New(), store, mock.NewMockProvider())
	require.Error(t, err)
}

func TestIngestRecordsIndexesAllChunks(t *testing.T) {
	store := memory.NewStore(mock.DefaultDimension)
	pipeline := newTestPipeline(t, store, mock.NewMockProvider())

	records := []core.RawRecord{
		article("doc-1", 50),  // 1 chunk at 100-word max
		article("doc-2", 250), // 3 chunks
		article("doc-3", 100), // 1 chunk
	}

	report, err := pipeline.IngestRecords(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 3, report.RecordsAccepted)
	assert.Equal(t, 0, report.RecordsSkipped)
	assert.Equal(t, 5, report.ChunksIndexed)
	assert.Equal(t, 0, report.ChunksSkipped)
	assert.Equal(t, 5, store.Count())
}

func TestIngestRecordsIsIdempotent(t *testing.T) {
	store := memory.NewStore(mock.DefaultDimension)
	pipeline := newTestPipeline(t, store, mock.NewMockProvider())

	records := []core.RawRecord{article("doc-1", 250)}

	report, err := pipeline.IngestRecords(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 3, report.ChunksIndexed)
	require.Equal(t, 3, store.Count())

	// Rerunning the same feed overwrites each chunk in place.
	report, err = pipeline.IngestRecords(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, report.ChunksIndexed)
	assert.Equal(t, 3, store.Count())
}

func TestIngestRecordsSkipsMalformedRecords(t *testing.T) {
	store := memory.NewStore(mock.DefaultDimension)
	pipeline := newTestPipeline(t, store, mock.NewMockProvider())

	records := []core.RawRecord{
		article("doc-1", 20),
		{}, // empty record is the one unrecoverable shape
		article("doc-2", 20),
	}

	report, err := pipeline.IngestRecords(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, 2, report.RecordsAccepted)
	assert.Equal(t, 1, report.RecordsSkipped)
	assert.Equal(t, 2, store.Count())
}

func TestIngestRecordsEmptyInput(t *testing.T) {
	store := memory.NewStore(mock.DefaultDimension)
	pipeline := newTestPipeline(t, store, mock.NewMockProvider())

	report, err := pipeline.IngestRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)
}

func TestIngestRecordsFailedBatchSkipsOnlyItsChunks(t *testing.T) {
	store := memory.NewStore(mock.DefaultDimension)

	fallback := mock.NewMockEmbedder()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		for _, text := range texts {
			if strings.Contains(text, "poison") {
				return nil, errors.New("model refused input")
			}
		}
		return fallback.EmbedTexts(ctx, texts)
	}
	provider := mock.NewMockProviderWithEmbedder(embedder)

	pipeline := newTestPipeline(t, store, provider, WithBatchSize(1), WithPoolSize(1))

	records := []core.RawRecord{
		article("doc-1", 20),
		{
			"an":                   "doc-2",
			"publication_datetime": int64(1767225600),
			"word_count":           2,
			"body":                 "poison pill",
		},
		article("doc-3", 20),
	}

	report, err := pipeline.IngestRecords(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBatchFailed)

	assert.Equal(t, 3, report.RecordsAccepted)
	assert.Equal(t, 2, report.ChunksIndexed)
	assert.Equal(t, 1, report.ChunksSkipped)
	assert.Equal(t, 2, store.Count())
}

func TestIngestRecordsDeterministicAcrossRuns(t *testing.T) {
	records := []core.RawRecord{article("doc-1", 250)}

	first := memory.NewStore(mock.DefaultDimension)
	p1 := newTestPipeline(t, first, mock.NewMockProvider())
	_, err := p1.IngestRecords(context.Background(), records)
	require.NoError(t, err)

	second := memory.NewStore(mock.DefaultDimension)
	p2 := newTestPipeline(t, second, mock.NewMockProvider())
	_, err = p2.IngestRecords(context.Background(), records)
	require.NoError(t, err)

	// Both stores hold the same three IDs: identity depends only on
	// document key, sequence index, and chunk text.
	assert.Equal(t, first.Count(), second.Count())
}
