// Package index defines the vector index abstraction used for passage
// storage and top-k retrieval.
//
// Two implementations are provided:
//
//   - index/qdrant: REST client for a Qdrant service, the production store
//   - index/memory: brute-force cosine store for tests
package index
