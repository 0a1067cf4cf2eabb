package index

import (
	"context"

	"github.com/coriolis-data/newsvec/core"
)

// Store persists (id, vector, payload) entries and answers nearest-neighbor
// queries. Implementations must be safe for concurrent use; the store is a
// long-lived handle shared by all ingestion and query operations, and it is
// the single source of truth; no other component caches index state.
type Store interface {
	// EnsureCollection declares the collection schema (dimensionality,
	// distance metric) if it does not exist, and verifies it when it does.
	// A schema that exists with a different dimensionality is a fatal
	// configuration error (ErrSchemaMismatch), not a per-record error.
	EnsureCollection(ctx context.Context) error

	// Upsert inserts-or-overwrites entries by ID and returns the number
	// written. Upserts are idempotent: re-submitting identical entries
	// leaves the stored state unchanged.
	Upsert(ctx context.Context, entries []core.IndexEntry) (int, error)

	// Search returns up to topK entries nearest to the vector, in the
	// index's descending score order.
	Search(ctx context.Context, vector []float32, topK int) ([]core.SearchHit, error)

	// Dimension returns the collection's declared vector dimensionality.
	Dimension() int
}
