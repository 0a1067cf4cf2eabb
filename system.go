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

package newsvec

import (
	"log/slog"

	"github.com/coriolis-data/newsvec/ai"
	"github.com/coriolis-data/newsvec/ai/openai"
	"github.com/coriolis-data/newsvec/chunk"
	"github.com/coriolis-data/newsvec/index"
	"github.com/coriolis-data/newsvec/index/qdrant"
	"github.com/coriolis-data/newsvec/ingestion"
	"github.com/coriolis-data/newsvec/normalize"
	"github.com/coriolis-data/newsvec/search"
	"github.com/coriolis-data/newsvec/storage"
	badgerstore "github.com/coriolis-data/newsvec/storage/badger"
)

// System bundles the vector index, embedding provider, and optional
// feed ledger, and hands out the pipeline and searcher built on them.
type System struct {
	store          *qdrant.Store
	provider       ai.Provider
	backend        *badgerstore.Backend
	feedRepo       storage.FeedRepository
	checkpointRepo storage.CheckpointRepository
	logger         *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	dataDir string
}

// WithDataDir opens a feed ledger at the given directory. Without it
// the system has no ledger and the watcher cannot be used.
func WithDataDir(dir string) SystemOption {
	return func(o *systemOptions) {
		o.dataDir = dir
	}
}

// NewSystem wires a Qdrant store and an embedding provider together.
func NewSystem(indexConfig qdrant.Config, aiConfig *ai.Config, opts ...SystemOption) (*System, error) {
	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	store, err := qdrant.NewStore(indexConfig)
	if err != nil {
		return nil, err
	}

	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return nil, err
	}

	s := &System{
		store:    store,
		provider: provider,
		logger:   slog.Default(),
	}

	if options.dataDir != "" {
		backend, err := badgerstore.OpenBackend(options.dataDir, false)
		if err != nil {
			provider.Close()
			return nil, err
		}
		feedRepo, err := badgerstore.NewFeedRepository(backend)
		if err != nil {
			backend.Close()
			provider.Close()
			return nil, err
		}
		s.backend = backend
		s.feedRepo = feedRepo
		s.checkpointRepo = badgerstore.NewCheckpointRepository(backend)
	}

	return s, nil
}

// Close releases the provider and, when present, the ledger backend.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing ledger backend", "err", err)
			return err
		}
	}
	return nil
}

// Store returns the vector index store.
func (s *System) Store() index.Store {
	return s.store
}

// Provider returns the embedding provider.
func (s *System) Provider() ai.Provider {
	return s.provider
}

// FeedRepository returns the feed ledger, or nil without WithDataDir.
func (s *System) FeedRepository() storage.FeedRepository {
	return s.feedRepo
}

// CheckpointRepository returns the checkpoint store, or nil without
// WithDataDir.
func (s *System) CheckpointRepository() storage.CheckpointRepository {
	return s.checkpointRepo
}

// NewIngestionPipeline builds a pipeline over this system's store and
// provider.
func (s *System) NewIngestionPipeline(normalizer *normalize.Normalizer, chunker *chunk.Chunker, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(normalizer, chunker, s.store, s.provider, opts...)
}

// NewSearcher builds a searcher over this system's store and provider.
func (s *System) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.store, s.provider, opts...)
}
