package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/storage"
)

// FeedRepository implements storage.FeedRepository for BadgerDB.
type FeedRepository struct {
	backend *Backend
}

var _ storage.FeedRepository = (*FeedRepository)(nil)

// NewFeedRepository creates a new FeedRepository.
func NewFeedRepository(backend *Backend) (*FeedRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend required")
	}
	return &FeedRepository{
		backend: backend,
	}, nil
}

// MarkProcessed records a feed file as ingested.
func (r *FeedRepository) MarkProcessed(ctx context.Context, entry *core.FeedEntry) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if entry.ProcessedAt.IsZero() {
		entry.ProcessedAt = time.Now().UTC()
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFeedEntryKey(entry.Name)
		value := storage.MarshalFeedEntry(entry)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves the ledger entry for a feed file by name.
func (r *FeedRepository) GetEntry(ctx context.Context, name string) (*core.FeedEntry, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	var entry *core.FeedEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFeedEntryKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			entry, unmarshalErr = storage.UnmarshalFeedEntry(val)
			if unmarshalErr != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, unmarshalErr)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// IsProcessed reports whether a feed file has already been ingested.
func (r *FeedRepository) IsProcessed(ctx context.Context, name string) (bool, error) {
	if r.backend.IsClosed() {
		return false, storage.ErrStorageClosed
	}
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeFeedEntryKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// ListEntries retrieves all ledger entries, ordered by file name.
// BadgerDB iterates keys in lexicographic order, which is name order
// under the single feed-entry prefix.
func (r *FeedRepository) ListEntries(ctx context.Context) ([]*core.FeedEntry, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	var entries []*core.FeedEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(feedEntryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				entry, unmarshalErr := storage.UnmarshalFeedEntry(val)
				if unmarshalErr != nil {
					return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, unmarshalErr)
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the underlying backend.
func (r *FeedRepository) Close() error {
	return r.backend.Close()
}
