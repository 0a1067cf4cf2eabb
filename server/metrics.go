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

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsvec_search_requests_total",
		Help: "Search requests by outcome.",
	}, []string{"status"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsvec_search_duration_seconds",
		Help:    "End-to-end search latency, embedding included.",
		Buckets: prometheus.DefBuckets,
	})

	ingestRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsvec_ingest_records_total",
		Help: "Raw records accepted by the ingestion endpoint.",
	})

	ingestChunks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsvec_ingest_chunks_total",
		Help: "Chunks successfully indexed by the ingestion endpoint.",
	})
)
