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

// Package chunk provides a fixed-size word-window text chunker.
package chunk

import (
	"strings"

	"github.com/coriolis-data/newsvec/core"
)

// DefaultMaxWords is the default number of words per chunk.
const DefaultMaxWords = 700

// Chunker splits article content into consecutive non-overlapping
// word windows.
type Chunker struct {
	maxWords int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxWords sets the chunk size in words.
func WithMaxWords(maxWords int) Option {
	return func(c *Chunker) {
		if maxWords > 0 {
			c.maxWords = maxWords
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxWords: DefaultMaxWords,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxWords returns the configured chunk size.
func (c *Chunker) MaxWords() int {
	return c.maxWords
}

// Split turns an article's content into an ordered sequence of chunks.
//
// Content at or under the word limit is emitted as a single chunk holding
// the content verbatim. Longer content is split on whitespace into windows
// of exactly maxWords words (the final window may be shorter), each window
// re-joined with single spaces. Splitting is lossless: re-joining all chunk
// texts with single spaces and re-splitting on whitespace reproduces the
// original word sequence.
//
// Empty content yields exactly one chunk containing the empty string, never
// zero chunks, so every article has at least one retrievable unit.
func (c *Chunker) Split(documentKey, content string) []core.Chunk {
	words := strings.Fields(content)
	if len(words) <= c.maxWords {
		return []core.Chunk{{
			DocumentKey:   documentKey,
			SequenceIndex: 0,
			Text:          content,
		}}
	}

	chunkCount := (len(words) + c.maxWords - 1) / c.maxWords
	chunks := make([]core.Chunk, 0, chunkCount)
	for start := 0; start < len(words); start += c.maxWords {
		end := start + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, core.Chunk{
			DocumentKey:   documentKey,
			SequenceIndex: len(chunks),
			Text:          strings.Join(words[start:end], " "),
		})
	}
	return chunks
}
