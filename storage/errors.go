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


package storage

import "errors"

var (
	// ErrIndexNotBuilt indicates that no index snapshot has been persisted
	// yet. Callers should instruct the operator to run ingestion; this is a
	// distinct condition, not a generic failure.
	ErrIndexNotBuilt = errors.New("index not built yet; run ingestion first")

	// ErrShapeMismatch indicates the vector count does not equal the
	// passage count at build time.
	ErrShapeMismatch = errors.New("vector count does not match passage count")

	// ErrDimensionMismatch indicates inconsistent vector dimensionality at
	// build time.
	ErrDimensionMismatch = errors.New("inconsistent vector dimensionality")

	// ErrEmptyBuild indicates a build was attempted with zero passages.
	ErrEmptyBuild = errors.New("cannot build an empty index")

	// ErrCorruptSnapshot indicates a persisted snapshot disagrees with its
	// manifest.
	ErrCorruptSnapshot = errors.New("snapshot does not match its manifest")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
