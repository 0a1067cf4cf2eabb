package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-data/newsvec/ai/mock"
	"github.com/coriolis-data/newsvec/chunk"
	"github.com/coriolis-data/newsvec/core"
	"github.com/coriolis-data/newsvec/index/memory"
	"github.com/coriolis-data/newsvec/ingestion"
	"github.com/coriolis-data/newsvec/normalize"
	"github.com/coriolis-data/newsvec/search"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	store := memory.NewStore(mock.DefaultDimension)
	provider := mock.NewMockProvider()

	normalizer, err := normalize.New(normalize.UnitSeconds)
	require.NoError(t, err)
	pipeline, err := ingestion.NewPipeline(normalizer, chunk.New(), store, provider,
		ingestion.WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	searcher, err := search.NewSearcher(store, provider)
	require.NoError(t, err)

	srv, err := NewServer(searcher, pipeline, store)
	require.NoError(t, err)
	return srv, store
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestIngestThenSearch(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/ingest", `{
		"records": [
			{"an": "doc-1", "publication_datetime": 1767225600, "word_count": 4, "body": "central bank raises rates"},
			{"an": "doc-2", "publication_datetime": 1767225600, "word_count": 4, "body": "local team wins championship"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var ingestResp IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ingestResp))
	assert.Equal(t, 2, ingestResp.RecordsAccepted)
	assert.Equal(t, 2, ingestResp.ChunksIndexed)
	assert.Equal(t, 2, store.Count())

	rec = doJSON(t, srv, http.MethodPost, "/search", `{"query": "central bank raises rates"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var searchResp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &searchResp))
	require.NotEmpty(t, searchResp.Results)
	assert.Equal(t, "doc-1", searchResp.Results[0].DocumentKey)
	require.NotEmpty(t, searchResp.Results[0].Passages)
	assert.Equal(t, "central bank raises rates", searchResp.Results[0].Passages[0].Text)
}

func TestSearchEmptyQueryIsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{`{"query": ""}`, `{"query": "   "}`, `{}`} {
		rec := doJSON(t, srv, http.MethodPost, "/search", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp, "error")
	}
}

func TestSearchMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/search", `{"query": 12`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestSkipsMalformedRecords(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/ingest", `{
		"records": [
			{"an": "doc-1", "publication_datetime": 1767225600, "word_count": 2, "body": "good record"},
			{}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.RecordsAccepted)
	assert.Equal(t, 1, resp.RecordsSkipped)
	assert.Equal(t, 1, store.Count())
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	// Generate one search so the counter exists.
	doJSON(t, srv, http.MethodPost, "/search", `{"query": "anything"}`)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "newsvec_search_requests_total")
}

func TestResponseShapeUniformAcrossChunkCounts(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	// Seed one single-chunk and one multi-chunk document directly.
	provider := mock.NewMockProvider()
	embedder := provider.Embedder()
	seed := func(docKey string, seq int, text string) {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		_, err = store.Upsert(ctx, []core.IndexEntry{{
			Id:     core.ChunkID(docKey, seq, text),
			Vector: vector,
			Payload: core.Payload{
				DocumentKey:   docKey,
				PublishedAt:   "2026-01-01T00:00:00Z",
				SequenceIndex: seq,
				Text:          text,
			},
		}})
		require.NoError(t, err)
	}
	seed("doc-single", 0, "markets rally on earnings")
	seed("doc-multi", 0, "markets open mixed")
	seed("doc-multi", 1, "markets close higher")

	rec := doJSON(t, srv, http.MethodPost, "/search", `{"query": "markets"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	for _, result := range resp.Results {
		assert.NotEmpty(t, result.DocumentKey)
		assert.NotEmpty(t, result.PublishedAt)
		assert.NotEmpty(t, result.Passages)
	}
}
