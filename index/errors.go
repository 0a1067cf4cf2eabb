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

package index

import "errors"

var (
	// ErrUnavailable indicates the index service errored or timed out.
	// The operation is retriable: upserts are idempotent by ID, so a
	// failed batch can simply be resubmitted.
	ErrUnavailable = errors.New("vector index unavailable")

	// ErrSchemaMismatch indicates the collection exists with a different
	// dimensionality or distance metric than configured. Fatal at startup.
	ErrSchemaMismatch = errors.New("collection schema mismatch")

	// ErrVectorDimension indicates an entry or query vector whose length
	// does not match the collection schema.
	ErrVectorDimension = errors.New("vector dimension does not match collection schema")
)
