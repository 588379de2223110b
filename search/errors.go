// Copyright 2025 Poiesic Systems
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

import "errors"

var (
	// ErrSnapshotSourceRequired is returned when a snapshot source is not provided.
	ErrSnapshotSourceRequired = errors.New("snapshot source required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrCompleterRequired is returned when LLM reranking is configured
	// without a completer.
	ErrCompleterRequired = errors.New("completer required for llm rerank mode")

	// ErrInvalidWeights is returned when scoring weights are negative or
	// sum to zero.
	ErrInvalidWeights = errors.New("scoring weights must be non-negative and sum to a positive value")

	// ErrInvalidRerankMode is returned for an unrecognized rerank mode.
	ErrInvalidRerankMode = errors.New("invalid rerank mode")

	// ErrQueryEmbedding wraps embedder failures for the query text.
	ErrQueryEmbedding = errors.New("failed to embed query")
)
