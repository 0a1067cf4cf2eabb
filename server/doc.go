// Package server exposes the pipeline over HTTP.
//
// Endpoints:
//   - POST /search   semantic query, grouped per-document results
//   - POST /ingest   one-shot ingestion of raw records
//   - GET  /healthz  readiness, including vector index reachability
//   - GET  /metrics  Prometheus metrics
//
// Typed pipeline errors map onto status codes: an empty query is 400,
// an unreachable embedding service or index is 503, everything else 500.
// Error responses are JSON objects with a single "error" field.
package server
