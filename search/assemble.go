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

package search

import (
	"sort"

	"github.com/coriolis-data/newsvec/core"
)

// Passage is one retrieved chunk of an article.
type Passage struct {
	Text          string  `json:"text"`
	Score         float32 `json:"score"`
	SequenceIndex int     `json:"sequence_index"`
}

// DocumentResult groups the retrieved passages of a single article.
type DocumentResult struct {
	DocumentKey string    `json:"document_key"`
	PublishedAt string    `json:"published_at"`
	Passages    []Passage `json:"passages"`
}

// AssembleResults groups ranked passage hits by document key. Documents
// appear in the order their best passage ranked; a document's metadata
// comes from that same passage. Within a document, passages follow
// article order when every hit carries a sequence index, and retain
// score order otherwise.
func AssembleResults(hits []core.SearchHit) []DocumentResult {
	results := make([]DocumentResult, 0, len(hits))
	position := make(map[string]int, len(hits))

	for _, hit := range hits {
		passage := Passage{
			Text:          hit.Text,
			Score:         hit.Score,
			SequenceIndex: hit.SequenceIndex,
		}

		if i, seen := position[hit.DocumentKey]; seen {
			results[i].Passages = append(results[i].Passages, passage)
			continue
		}

		position[hit.DocumentKey] = len(results)
		results = append(results, DocumentResult{
			DocumentKey: hit.DocumentKey,
			PublishedAt: hit.PublishedAt,
			Passages:    []Passage{passage},
		})
	}

	for i := range results {
		sortBySequence(results[i].Passages)
	}
	return results
}

// sortBySequence orders passages by sequence index when every passage
// has one. A single hit without an index leaves the score order alone:
// mixing the two orderings would be meaningless.
func sortBySequence(passages []Passage) {
	for _, p := range passages {
		if p.SequenceIndex < 0 {
			return
		}
	}
	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].SequenceIndex < passages[j].SequenceIndex
	})
}
