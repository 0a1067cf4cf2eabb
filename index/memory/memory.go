// Package memory provides an in-process index.Store for tests. Entries
// live in a map keyed by chunk ID and search is brute-force cosine.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/index"
)

// Store is a mutex-guarded brute-force vector index.
type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   map[core.ID]core.IndexEntry
}

var _ index.Store = (*Store)(nil)

// NewStore creates an empty in-memory store with the given dimensionality.
func NewStore(dimension int) *Store {
	return &Store{
		dimension: dimension,
		entries:   map[core.ID]core.IndexEntry{},
	}
}

func (s *Store) Dimension() int {
	return s.dimension
}

// EnsureCollection is a no-op; the map is the collection.
func (s *Store) EnsureCollection(_ context.Context) error {
	return nil
}

// Upsert stores entries by ID. Writing an existing ID overwrites it, so
// re-ingestion leaves the store unchanged.
func (s *Store) Upsert(_ context.Context, entries []core.IndexEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		if len(entry.Vector) != s.dimension {
			return 0, fmt.Errorf("%w: entry %d has %d, store wants %d",
				index.ErrVectorDimension, entry.Id, len(entry.Vector), s.dimension)
		}
		s.entries[entry.Id] = entry
	}
	return len(entries), nil
}

// Search scores every entry against the query vector and returns the
// topK best by cosine similarity, highest first.
func (s *Store) Search(_ context.Context, vector []float32, topK int) ([]core.SearchHit, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has %d, store wants %d",
			index.ErrVectorDimension, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]core.SearchHit, 0, len(s.entries))
	for _, entry := range s.entries {
		hits = append(hits, core.SearchHit{
			DocumentKey:   entry.Payload.DocumentKey,
			PublishedAt:   entry.Payload.PublishedAt,
			SequenceIndex: entry.Payload.SequenceIndex,
			Text:          entry.Payload.Text,
			Score:         cosine(vector, entry.Vector),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Count reports the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cosine(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
