// Copyright 2026 Coriolis Data
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

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/coriolis-data/newsvec/ai"
	"github.com/coriolis-data/newsvec/chunk"
	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/index"
	"github.com/coriolis-data/newsvec/normalize"
)

const (
	// DefaultBatchSize is the number of chunks embedded and upserted per
	// batch when no override is given.
	DefaultBatchSize = 32

	// DefaultMaxAttempts bounds retries for embedding and upsert calls.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the base backoff delay between retries.
	DefaultRetryDelay = 500 * time.Millisecond
)

// Pipeline orchestrates the ingestion of raw feed records into the
// vector index. It manages concurrent embedding and upserting of chunk
// batches.
type Pipeline struct {
	normalizer  *normalize.Normalizer
	chunker     *chunk.Chunker
	store       index.Store
	embedder    ai.Embedder
	pool        *ants.Pool
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded and upserted per batch.
// Values below 1 are ignored.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size >= 1 {
			p.batchSize = size
		}
		return nil
	}
}

// WithRetry configures retry behavior for embedding and upsert calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		if baseDelay > 0 {
			p.retryDelay = baseDelay
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. The embedder's declared
// dimensionality must match the index's; a mismatch would poison every
// vector written, so it fails construction rather than individual records.
func NewPipeline(
	normalizer *normalize.Normalizer,
	chunker *chunk.Chunker,
	store index.Store,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	embedder := provider.Embedder()
	if embedder.Dimension() != store.Dimension() {
		return nil, fmt.Errorf("%w: embedder produces %d, index expects %d",
			ai.ErrDimensionMismatch, embedder.Dimension(), store.Dimension())
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		normalizer:  normalizer,
		chunker:     chunker,
		store:       store,
		embedder:    embedder,
		pool:        pool,
		batchSize:   DefaultBatchSize,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		logger:      slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Report accounts for a single ingestion run. Skipped records were
// malformed beyond normalization; skipped chunks belonged to batches
// that failed after all retries.
type Report struct {
	RecordsAccepted int
	RecordsSkipped  int
	ChunksIndexed   int
	ChunksSkipped   int
}

// pendingChunk pairs a chunk with article fields that belong in its
// index payload.
type pendingChunk struct {
	chunk       core.Chunk
	publishedAt string
}

// IngestRecords runs the full pipeline over a slice of raw records and
// blocks until every batch has settled. Malformed records and failed
// batches are reported, not fatal; the returned error joins per-batch
// failures so callers can decide whether to retry the run.
func (p *Pipeline) IngestRecords(ctx context.Context, records []core.RawRecord) (Report, error) {
	var report Report
	var pending []pendingChunk

	for _, record := range records {
		article, err := p.normalizer.Normalize(record)
		if err != nil {
			p.logger.Warn("skipping malformed record", "err", err)
			report.RecordsSkipped++
			continue
		}
		report.RecordsAccepted++

		for _, c := range p.chunker.Split(article.DocumentKey, article.Content) {
			pending = append(pending, pendingChunk{chunk: c, publishedAt: article.PublishedAt})
		}
	}

	if len(pending) == 0 {
		return report, nil
	}

	p.logger.Info("ingesting records",
		"records", report.RecordsAccepted,
		"skipped", report.RecordsSkipped,
		"chunks", len(pending))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		batchErrs []error
	)

	for start := 0; start < len(pending); start += p.batchSize {
		end := min(start+p.batchSize, len(pending))
		batch := pending[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			indexed, err := p.processBatch(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			report.ChunksIndexed += indexed
			if err != nil {
				report.ChunksSkipped += len(batch) - indexed
				batchErrs = append(batchErrs, err)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			report.ChunksSkipped += len(batch)
			batchErrs = append(batchErrs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()

	return report, errors.Join(batchErrs...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
