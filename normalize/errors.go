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

package normalize

import "errors"

var (
	// ErrEmptyRecord is returned for a record with no fields at all,
	// the only input a normalizer may reject.
	ErrEmptyRecord = errors.New("record has no fields")

	// ErrInvalidTimestampUnit is returned for a timestamp unit other
	// than "s" or "ms". This is a configuration error, not a data error.
	ErrInvalidTimestampUnit = errors.New("invalid timestamp unit")
)
