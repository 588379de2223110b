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


// Package segment splits raw document text into heading-aware passages and
// infers structural metadata for each.
//
// Split produces ordered, size-bounded segments that preserve the closest
// enclosing section and subsection headings. Extractor infers publication
// code, domain tag, document type, and effective date from a document's
// title, source identifier, and text.
//
// Both operations are pure and deterministic, which together with
// content-hashed passage IDs makes re-ingestion idempotent.
package segment
