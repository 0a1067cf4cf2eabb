package badger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Backend owns the BadgerDB instance behind the feed ledger and the
// watcher checkpoints. It is safe for concurrent use.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// slogBadger routes badger's printf-style logging through slog.
type slogBadger struct {
	logger *slog.Logger
}

var _ badger.Logger = slogBadger{}

func (l slogBadger) Errorf(format string, args ...any)   { l.logger.Error(fmt.Sprintf(format, args...)) }
func (l slogBadger) Warningf(format string, args ...any) { l.logger.Warn(fmt.Sprintf(format, args...)) }
func (l slogBadger) Infof(format string, args ...any)    { l.logger.Info(fmt.Sprintf(format, args...)) }
func (l slogBadger) Debugf(format string, args ...any)   { l.logger.Debug(fmt.Sprintf(format, args...)) }

// OpenBackend opens the ledger database rooted at dir, creating the
// directory when it does not exist. With inMemory set, dir is ignored
// and nothing touches disk; tests use this mode.
func OpenBackend(dir string, inMemory bool) (*Backend, error) {
	logger := slog.Default().With("component", "ledger")

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = slogBadger{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	return &Backend{db: db, logger: logger}, nil
}

// Close closes the underlying database. Further operations on
// repositories built over this backend return ErrStorageClosed.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed reports whether Close has been called.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn inside a transaction, read-write when isWrite is set.
// The transaction is discarded when fn returns; write paths commit
// explicitly inside fn.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}
