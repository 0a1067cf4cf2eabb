package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coriolis-data/newsvec/ai"
	"github.com/coriolis-data/newsvec/index"
)

// DefaultTopK is the number of passage hits retrieved when no override
// is given.
const DefaultTopK = 5

// Searcher provides semantic search over indexed article chunks.
type Searcher struct {
	store    index.Store
	embedder ai.Embedder
	topK     int
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithTopK sets how many passage hits are retrieved per query.
// Values below 1 are ignored.
func WithTopK(topK int) Option {
	return func(s *Searcher) error {
		if topK >= 1 {
			s.topK = topK
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "search")
		return nil
	}
}

// NewSearcher creates a new searcher. Like the ingestion pipeline it
// refuses an embedder whose dimensionality disagrees with the index.
func NewSearcher(store index.Store, provider ai.Provider, opts ...Option) (*Searcher, error) {
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

	s := &Searcher{
		store:    store,
		embedder: embedder,
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query, retrieves the topK nearest passages, and
// groups them by document. An empty or whitespace query is rejected
// before any network call.
func (s *Searcher) Search(ctx context.Context, query string) ([]DocumentResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error embedding query", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}

	hits, err := s.store.Search(ctx, vector, s.topK)
	if err != nil {
		s.logger.Error("error querying index", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	results := AssembleResults(hits)
	s.logger.Debug("search complete", "hits", len(hits), "documents", len(results))
	return results, nil
}
