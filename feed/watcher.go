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

package feed

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/ingestion"
	"github.com/coriolis-data/newsvec/storage"
)

// checkpointComponent names the watcher's checkpoint in the ledger.
const checkpointComponent = "watcher"

// DefaultSettleDelay is how long the watcher waits after a file event
// before reading the file, so producers can finish writing.
const DefaultSettleDelay = 2 * time.Second

// Ingestor consumes raw feed records. *ingestion.Pipeline satisfies it.
type Ingestor interface {
	IngestRecords(ctx context.Context, records []core.RawRecord) (ingestion.Report, error)
}

// Watcher ingests Avro batch files from a drop directory as they
// appear. The feed ledger makes processing once-only across restarts.
type Watcher struct {
	dir         string
	ingestor    Ingestor
	ledger      storage.FeedRepository
	checkpoints storage.CheckpointRepository
	settleDelay time.Duration
	logger      *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher) error

// WithSettleDelay sets how long to wait after a file event before
// reading the file. Values at or below zero are ignored.
func WithSettleDelay(delay time.Duration) Option {
	return func(w *Watcher) error {
		if delay > 0 {
			w.settleDelay = delay
		}
		return nil
	}
}

// WithCheckpoints enables progress checkpoints after each processed file.
func WithCheckpoints(repo storage.CheckpointRepository) Option {
	return func(w *Watcher) error {
		w.checkpoints = repo
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger.With("component", "watcher")
		return nil
	}
}

// NewWatcher creates a watcher over the given drop directory.
func NewWatcher(dir string, ingestor Ingestor, ledger storage.FeedRepository, opts ...Option) (*Watcher, error) {
	if dir == "" {
		return nil, ErrDirectoryRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}
	if ledger == nil {
		return nil, ErrLedgerRequired
	}

	w := &Watcher{
		dir:         dir,
		ingestor:    ingestor,
		ledger:      ledger,
		settleDelay: DefaultSettleDelay,
		logger:      slog.Default().With("component", "watcher"),
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Run processes any unprocessed files already in the directory, then
// blocks watching for new ones until the context is canceled. Per-file
// failures are logged and skipped; the watch itself keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.catchUp(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}

	w.logger.Info("watching feed directory", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isBatchFile(event.Name) {
				continue
			}

			// Give the producer time to finish writing.
			timer := time.NewTimer(w.settleDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}

			w.processFile(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "err", err)
		}
	}
}

// catchUp processes batch files that arrived while the watcher was down.
func (w *Watcher) catchUp(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && isBatchFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		w.processFile(ctx, filepath.Join(w.dir, name))
	}
	return nil
}

// processFile runs one batch file through the pipeline and records the
// outcome in the ledger. Already-processed files are skipped.
func (w *Watcher) processFile(ctx context.Context, path string) {
	name := filepath.Base(path)
	logger := w.logger.With("file", name)

	processed, err := w.ledger.IsProcessed(ctx, name)
	if err != nil {
		logger.Error("error consulting ledger", "err", err)
		return
	}
	if processed {
		logger.Debug("file already processed, skipping")
		return
	}

	records, err := ReadRecords(path)
	if err != nil {
		logger.Error("error reading feed file", "err", err)
		return
	}

	report, err := w.ingestor.IngestRecords(ctx, records)
	if err != nil {
		// Partial runs are not marked processed; upserts are idempotent,
		// so the next attempt redoes only what it must.
		logger.Error("error ingesting feed file", "err", err,
			"indexed", report.ChunksIndexed, "skipped", report.ChunksSkipped)
		return
	}

	entry := &core.FeedEntry{
		Name:            name,
		RecordsAccepted: report.RecordsAccepted,
		RecordsSkipped:  report.RecordsSkipped,
		ChunksIndexed:   report.ChunksIndexed,
		ChunksSkipped:   report.ChunksSkipped,
	}
	if err := w.ledger.MarkProcessed(ctx, entry); err != nil {
		logger.Error("error updating ledger", "err", err)
		return
	}

	if w.checkpoints != nil {
		checkpoint := &core.Checkpoint{Component: checkpointComponent, LastFile: name}
		if err := w.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
			logger.Error("error saving checkpoint", "err", err)
		}
	}

	logger.Info("feed file ingested",
		"records", report.RecordsAccepted,
		"recordsSkipped", report.RecordsSkipped,
		"chunks", report.ChunksIndexed,
		"chunksSkipped", report.ChunksSkipped)
}

func isBatchFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".avro")
}
