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


// Package search ranks indexed passages against natural-language questions.
//
// The Searcher type implements a multi-stage retrieval algorithm that
// combines:
//   - Vector search using normalized embeddings over the index snapshot
//   - Lexical token-overlap scoring weighted toward titles
//   - Domain-aware re-weighting favoring doctrine publications
//   - An optional heuristic or LLM rerank pass over the top candidates
//
// Retrieval produces evidence items with stable per-response identifiers
// (E1, E2, ...) and a diagnostic trace. The grounding helpers decide
// whether a generated answer actually cites the evidence it was given.
package search
