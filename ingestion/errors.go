package ingestion

import "errors"

var (
	// ErrNormalizerRequired is returned when a normalizer is not provided.
	ErrNormalizerRequired = errors.New("normalizer required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrStoreRequired is returned when a vector index store is not provided.
	ErrStoreRequired = errors.New("index store required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrInvalidMaxAttempts is returned when retry is configured with
	// fewer than one attempt.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")

	// ErrBatchFailed is returned when a batch could not be embedded or
	// upserted after all retry attempts.
	ErrBatchFailed = errors.New("batch failed")
)
