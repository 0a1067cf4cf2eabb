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

import "fmt"

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - DocumentKey must not be empty (UnknownDocumentKey is valid)
//   - PublishedAt must not be empty (UnknownPublishedAt is valid)
//   - WordCount must not be negative
//
// NOT validated:
//   - Content (empty content is a valid article; it still yields one chunk)
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}
	if article.DocumentKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyDocumentKey)
	}
	if article.PublishedAt == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyPublishedAt)
	}
	if article.WordCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrNegativeWordCount)
	}
	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - DocumentKey must not be empty
//   - SequenceIndex must not be negative
//
// NOT validated:
//   - Text (the empty chunk of an empty article is valid)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.DocumentKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocumentKey)
	}
	if chunk.SequenceIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeSequenceIndex)
	}
	return nil
}

// ValidateIndexEntry validates an IndexEntry before it is submitted for upsert.
//
// Validation rules:
//   - Vector must not be empty
//   - Payload.DocumentKey and Payload.PublishedAt must not be empty
//   - Payload.SequenceIndex must not be negative
func ValidateIndexEntry(entry *IndexEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidIndexEntry)
	}
	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrEmptyVector)
	}
	if entry.Payload.DocumentKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrEmptyDocumentKey)
	}
	if entry.Payload.PublishedAt == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrEmptyPublishedAt)
	}
	if entry.Payload.SequenceIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidIndexEntry, ErrNegativeSequenceIndex)
	}
	return nil
}
