package storage

import (
	"context"

	"github.com/poiesic/doctrina/core"
)

// IndexRepository persists index snapshots: one generation of passage
// metadata and embedding vectors, stored and swapped as a unit.
// Implementations must be thread-safe and support concurrent access.
type IndexRepository interface {
	// BuildSnapshot persists a new index generation from parallel arrays of
	// vectors and passages and atomically makes it the current generation.
	// Vectors are L2-normalized before they are stored, so inner-product
	// search approximates cosine similarity.
	//
	// Fails with ErrShapeMismatch when the counts disagree, and with
	// ErrDimensionMismatch when any vector's dimensionality differs from
	// the rest; nothing is made visible to readers on failure. In-flight
	// queries against the previous generation keep reading consistent data.
	BuildSnapshot(ctx context.Context, vectors [][]float32, passages []*core.Passage, embeddingModel string) (*Snapshot, error)

	// LoadSnapshot deserializes the current index generation into memory.
	// Returns ErrIndexNotBuilt when no generation has been persisted,
	// signaling that ingestion has not yet run.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// Manifest returns the current generation's manifest without loading
	// the passages. Returns ErrIndexNotBuilt when no generation exists.
	Manifest(ctx context.Context) (*core.IndexManifest, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// TraceRepository persists retrieval traces: write-once, append-only
// diagnostic records of individual queries.
type TraceRepository interface {
	// Append stores one retrieval trace. Sets the trace ID and CreatedAt
	// timestamp if not already set.
	Append(ctx context.Context, trace *core.RetrievalTrace) error

	// Recent returns up to limit traces, most recent first.
	Recent(ctx context.Context, limit int) ([]*core.RetrievalTrace, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
