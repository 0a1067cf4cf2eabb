package core

import "time"

// FeedEntry records one feed file that has been ingested, along with
// the report of that run. The vector index remains the source of truth
// for indexed content; the ledger only prevents reprocessing.
type FeedEntry struct {
	Name            string
	ProcessedAt     time.Time
	RecordsAccepted int
	RecordsSkipped  int
	ChunksIndexed   int
	ChunksSkipped   int
}

// Checkpoint marks how far a named component has progressed, such as
// the last feed file the watcher finished.
type Checkpoint struct {
	Component string
	LastFile  string
	UpdatedAt time.Time
}
