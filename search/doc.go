// Package search provides query-time retrieval over the vector index.
//
// The Searcher type embeds a query, runs a nearest-neighbor search, and
// assembles the ranked passage hits into per-document results. Every
// response has the same grouped shape regardless of how many chunks an
// article was split into at ingestion time.
package search
