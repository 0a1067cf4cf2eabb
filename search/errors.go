package search

import "errors"

var (
	// ErrStoreRequired is returned when a vector index store is not provided.
	ErrStoreRequired = errors.New("index store required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is returned when the query is empty or whitespace.
	// The query is rejected before any embedding call is made.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrEmbeddingUnavailable is returned when the embedding service
	// could not produce a vector for the query.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexUnavailable is returned when the vector index could not be
	// queried.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
