// Package storage defines the persistence interfaces for the feed
// ledger and pipeline checkpoints.
//
// The ledger answers one question: has this feed file already been
// ingested? Indexed vectors themselves live in the vector index, which
// stays the single source of truth; losing the ledger costs only a
// harmless re-ingestion, since upserts are idempotent.
//
// Concrete implementations live in subpackages (currently BadgerDB).
package storage
