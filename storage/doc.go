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


// Package storage provides the storage abstraction layer for doctrina.
//
// This package defines repository interfaces that decouple storage
// implementation from retrieval logic, along with the in-memory Snapshot
// type that search operates on. Different backends (BadgerDB, in-memory,
// etc.) can be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - IndexRepository: builds and loads index snapshots
//   - TraceRepository: persists retrieval traces for inspection
//   - Snapshot: an immutable, query-ready generation of the index
//
// # Snapshot Lifecycle
//
// BuildSnapshot writes a fresh generation and atomically swaps the manifest
// pointer; a failed build leaves the previous generation untouched. Loaded
// snapshots are immutable and safe for concurrent search.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	repo := badger.NewIndexRepository(backend)
//
// Use in tests with in-memory storage:
//
//	indexRepo, traceRepo, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
