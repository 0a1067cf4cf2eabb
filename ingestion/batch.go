package ingestion

import (
	"context"
	"fmt"

	"github.com/coriolis-data/newsvec/core"
)

// processBatch embeds one batch of chunks and upserts the resulting
// entries. Both calls are retried with backoff; if either still fails,
// the whole batch is reported failed and nothing from it is indexed.
func (p *Pipeline) processBatch(ctx context.Context, batch []pendingChunk) (int, error) {
	texts := make([]string, len(batch))
	for i, pc := range batch {
		texts[i] = pc.chunk.Text
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, p.maxAttempts, p.retryDelay)
	if err != nil {
		p.logger.Error("embedding batch failed", "chunks", len(batch), "err", err)
		return 0, fmt.Errorf("%w: embedding %d chunks: %w", ErrBatchFailed, len(batch), err)
	}

	if len(vectors) != len(batch) {
		return 0, fmt.Errorf("%w: embedding result mismatch, expected %d, received %d",
			ErrBatchFailed, len(batch), len(vectors))
	}

	entries := make([]core.IndexEntry, len(batch))
	for i, pc := range batch {
		entries[i] = core.IndexEntry{
			Id:     pc.chunk.ID(),
			Vector: vectors[i],
			Payload: core.Payload{
				DocumentKey:   pc.chunk.DocumentKey,
				PublishedAt:   pc.publishedAt,
				SequenceIndex: pc.chunk.SequenceIndex,
				Text:          pc.chunk.Text,
			},
		}
		if err := core.ValidateIndexEntry(&entries[i]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBatchFailed, err)
		}
	}

	var indexed int
	err = RetryWithBackoff(ctx, func() error {
		var upsertErr error
		indexed, upsertErr = p.store.Upsert(ctx, entries)
		return upsertErr
	}, p.maxAttempts, p.retryDelay)
	if err != nil {
		p.logger.Error("upserting batch failed", "chunks", len(batch), "err", err)
		return 0, fmt.Errorf("%w: upserting %d entries: %w", ErrBatchFailed, len(entries), err)
	}

	p.logger.Debug("batch indexed", "chunks", indexed)
	return indexed, nil
}
