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

// Package ai provides the text embedding abstraction used by ingestion
// and search.
//
// The package defines two interfaces:
//
//   - Embedder: generates vector embeddings from text, single or batched
//   - Provider: owns the embedder's configuration and lifecycle
//
// Ingestion and retrieval must share the same Embedder: vectors produced
// by different models or dimensionalities are not comparable, so the
// provider is constructed once at startup and injected into both sides.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles, no external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to prevent coupling to a concrete implementation; mock
// constructors return concrete types so tests can inject behavior and
// assert on call counts.
package ai
