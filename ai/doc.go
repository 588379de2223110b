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


// Package ai defines the interfaces for external AI services used by
// doctrina: text embedding and text completion.
//
// The retrieval core depends only on the interfaces defined here. The openai
// subpackage implements them against any OpenAI-compatible API; the mock
// subpackage provides deterministic test doubles.
//
// All calls to external services carry bounded timeouts. An embedding
// failure at query time is fatal to that query; a completion failure in the
// rerank pass is not and falls back to the pre-rerank ordering.
package ai
