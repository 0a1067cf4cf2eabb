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

// Package qdrant is a minimal REST client for a Qdrant vector index.
// It speaks the collections and points APIs directly over HTTP.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/index"
)

const defaultTimeout = 15 * time.Second

// Config contains connection details for a Qdrant store.
type Config struct {
	URL        string        // base URL, e.g. "http://localhost:6333"
	APIKey     string        // optional api-key header
	Collection string        // collection name
	Dimension  int           // declared vector dimensionality
	Distance   string        // distance metric; default "Cosine"
	Timeout    time.Duration // per-call bound; default 15s
}

// Store implements index.Store against a Qdrant service.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	distance   string
	client     *http.Client
	logger     *slog.Logger
}

var _ index.Store = (*Store)(nil)

// NewStore creates a Qdrant-backed store. It does not touch the network;
// call EnsureCollection before the first upsert or search.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, errors.New("qdrant: URL is required")
	}
	if cfg.Collection == "" {
		return nil, errors.New("qdrant: Collection is required")
	}
	if cfg.Dimension <= 0 {
		return nil, errors.New("qdrant: Dimension must be positive")
	}
	if cfg.Distance == "" {
		cfg.Distance = "Cosine"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		distance:   cfg.Distance,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default().With("component", "qdrant", "collection", cfg.Collection),
	}, nil
}

// Dimension returns the declared vector dimensionality.
func (s *Store) Dimension() int {
	return s.dimension
}

// EnsureCollection creates the collection if missing and verifies the
// schema when it already exists. A dimensionality or distance mismatch is
// ErrSchemaMismatch: every vector in the deployment is affected, so this
// must fail startup, not individual records.
func (s *Store) EnsureCollection(ctx context.Context) error {
	var info struct {
		Result struct {
			Config struct {
				Params struct {
					Vectors struct {
						Size     int    `json:"size"`
						Distance string `json:"distance"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
		} `json:"result"`
	}

	status, err := s.getJSON(ctx, s.collectionURL(), &info)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusNotFound:
		s.logger.Info("creating collection", "dimension", s.dimension, "distance", s.distance)
		body := map[string]any{
			"vectors": map[string]any{
				"size":     s.dimension,
				"distance": s.distance,
			},
		}
		return s.putJSON(ctx, s.collectionURL(), body)
	case status >= 300:
		return fmt.Errorf("%w: GET %s returned %d", index.ErrUnavailable, s.collectionURL(), status)
	}

	got := info.Result.Config.Params.Vectors
	if got.Size != s.dimension {
		return fmt.Errorf("%w: collection has dimension %d, configured %d",
			index.ErrSchemaMismatch, got.Size, s.dimension)
	}
	if got.Distance != "" && got.Distance != s.distance {
		return fmt.Errorf("%w: collection uses distance %s, configured %s",
			index.ErrSchemaMismatch, got.Distance, s.distance)
	}
	return nil
}

// Upsert submits entries in one idempotent points call. Either the whole
// call succeeds or the whole call is retriable; Qdrant applies points by
// ID, so there is no partial state to reconcile.
func (s *Store) Upsert(ctx context.Context, entries []core.IndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	points := make([]map[string]any, len(entries))
	for i, entry := range entries {
		if len(entry.Vector) != s.dimension {
			return 0, fmt.Errorf("%w: entry %d has %d, schema wants %d",
				index.ErrVectorDimension, entry.Id, len(entry.Vector), s.dimension)
		}
		points[i] = map[string]any{
			"id":     uint64(entry.Id),
			"vector": entry.Vector,
			"payload": map[string]any{
				"document_key":   entry.Payload.DocumentKey,
				"published_at":   entry.Payload.PublishedAt,
				"sequence_index": entry.Payload.SequenceIndex,
				"text":           entry.Payload.Text,
			},
		}
	}

	url := s.collectionURL() + "/points?wait=true"
	if err := s.putJSON(ctx, url, map[string]any{"points": points}); err != nil {
		return 0, err
	}
	return len(points), nil
}

// Search runs a nearest-neighbor query and returns hits in Qdrant's
// descending score order.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]core.SearchHit, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has %d, schema wants %d",
			index.ErrVectorDimension, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 5
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := s.collectionURL() + "/points/search"
	if err := s.postJSON(ctx, url, req, &resp); err != nil {
		return nil, err
	}

	hits := make([]core.SearchHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hit := core.SearchHit{
			DocumentKey:   core.UnknownDocumentKey,
			PublishedAt:   core.UnknownPublishedAt,
			SequenceIndex: -1,
			Score:         r.Score,
		}
		if v, ok := r.Payload["document_key"].(string); ok && v != "" {
			hit.DocumentKey = v
		}
		if v, ok := r.Payload["published_at"].(string); ok && v != "" {
			hit.PublishedAt = v
		}
		if v, ok := r.Payload["sequence_index"].(float64); ok {
			hit.SequenceIndex = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			hit.Text = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (s *Store) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", s.url, s.collection)
}

func (s *Store) newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	return req, nil
}

// getJSON returns the HTTP status alongside decoding, so callers can
// distinguish "collection missing" from "service down".
func (s *Store) getJSON(ctx context.Context, url string, out any) (int, error) {
	req, err := s.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", index.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: decoding response: %w", index.ErrUnavailable, err)
		}
	}
	return resp.StatusCode, nil
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	req, err := s.newRequest(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", index.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: PUT %s returned %s", index.ErrUnavailable, url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	req, err := s.newRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", index.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST %s returned %s", index.ErrUnavailable, url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %w", index.ErrUnavailable, err)
		}
	}
	return nil
}
