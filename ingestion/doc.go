// Package ingestion orchestrates the indexing pipeline for news articles.
//
// The Pipeline type takes raw feed records through normalization,
// chunking, embedding, and vector-index upserts:
//   - Normalizing records into articles (malformed records are skipped,
//     not fatal)
//   - Splitting article content into bounded chunks
//   - Generating embeddings in batches on a worker pool
//   - Upserting index entries under deterministic chunk IDs
//
// Embedding and upsert calls are retried with exponential backoff.
// A failed batch skips only its own chunks; the rest of the run
// proceeds, and the returned Report accounts for everything.
package ingestion
