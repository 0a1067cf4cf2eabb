package storage

import (
	"context"

	"github.com/coriolis-data/newsvec/core"
)

// FeedRepository tracks which feed files have been ingested.
// Implementations must be thread-safe and support concurrent access.
type FeedRepository interface {
	// MarkProcessed records a feed file as ingested, together with its
	// run report. Sets ProcessedAt if not already set. Marking the same
	// file again overwrites the previous entry.
	MarkProcessed(ctx context.Context, entry *core.FeedEntry) error

	// GetEntry retrieves the ledger entry for a feed file by name.
	// Returns ErrNotFound if the file has not been processed.
	GetEntry(ctx context.Context, name string) (*core.FeedEntry, error)

	// IsProcessed reports whether a feed file has already been ingested.
	IsProcessed(ctx context.Context, name string) (bool, error)

	// ListEntries retrieves all ledger entries, ordered by file name.
	ListEntries(ctx context.Context) ([]*core.FeedEntry, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// CheckpointRepository persists progress markers for pipeline components.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a component.
	// Updates the UpdatedAt timestamp automatically.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a component.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, component string) (*core.Checkpoint, error)
}
