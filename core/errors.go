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

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidIndexEntry indicates an IndexEntry failed validation.
	ErrInvalidIndexEntry = errors.New("invalid index entry")

	// ErrEmptyDocumentKey indicates the DocumentKey field is empty.
	// Records without a usable key must carry the explicit unknown
	// sentinel, never an empty string.
	ErrEmptyDocumentKey = errors.New("document key cannot be empty")

	// ErrEmptyPublishedAt indicates the PublishedAt field is empty.
	ErrEmptyPublishedAt = errors.New("published at cannot be empty")

	// ErrNegativeWordCount indicates a negative word count.
	ErrNegativeWordCount = errors.New("word count cannot be negative")

	// ErrNegativeSequenceIndex indicates a chunk with a negative position.
	ErrNegativeSequenceIndex = errors.New("sequence index cannot be negative")

	// ErrEmptyVector indicates an IndexEntry without an embedding vector.
	ErrEmptyVector = errors.New("vector cannot be empty")
)
