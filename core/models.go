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

package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for an index entry.
// It is derived from chunk content so that re-ingesting identical data
// produces identical IDs.
type ID uint64

// ChunkID derives a deterministic ID for a chunk from its owning document key,
// its position within the document, and its text, using BLAKE2b hashing.
// The same inputs always produce the same ID, across calls and across
// process restarts; this is what makes upserts idempotent.
func ChunkID(documentKey string, sequenceIndex int, text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(documentKey))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(sequenceIndex)))
	h.Write([]byte{0})
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RawRecord is one decoded record from the source feed: a flat mapping of
// field name to value. Its shape is not controlled by this system and any
// field may be missing.
type RawRecord map[string]any

// Sentinel values used where source records carry no usable data.
// They are explicit strings, never empty or null, so they survive
// serialization into payloads and comparisons at query time.
const (
	UnknownDocumentKey = "unknown"
	UnknownPublishedAt = "unknown"
)

// Article is a normalized news record, owned by the pipeline for the
// duration of one ingestion run.
type Article struct {
	DocumentKey string // stable external identifier (accession number)
	PublishedAt string // RFC3339 UTC, or UnknownPublishedAt
	WordCount   int    // non-negative; invalid input coerces to 0
	Content     string // merged text fields; empty only if all sources were empty
}

// Chunk is a bounded-length passage of an article's content, the unit
// that is embedded and indexed.
type Chunk struct {
	DocumentKey   string
	SequenceIndex int // 0-based, monotonic within a document
	Text          string
}

// ID returns the deterministic identity of this chunk.
func (c *Chunk) ID() ID {
	return ChunkID(c.DocumentKey, c.SequenceIndex, c.Text)
}

// Payload is the document-level metadata stored alongside each vector,
// needed to reassemble results per source document at query time.
type Payload struct {
	DocumentKey   string
	PublishedAt   string
	SequenceIndex int
	Text          string
}

// IndexEntry is one (id, vector, payload) triple submitted to the
// vector index. Entries are transient: recomputed on every ingestion
// run and never mutated, only superseded by a later run with the same ID.
type IndexEntry struct {
	Id      ID
	Vector  []float32
	Payload Payload
}

// SearchHit is one matched passage returned by the vector index,
// in descending score order.
type SearchHit struct {
	DocumentKey   string
	PublishedAt   string
	SequenceIndex int // -1 when the stored payload carried no sequence index
	Text          string
	Score         float32
}
