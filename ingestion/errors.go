package ingestion

import "errors"

var (
	// ErrIndexRepositoryRequired is returned when an index repository is not provided.
	ErrIndexRepositoryRequired = errors.New("index repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoSources is returned when ingestion is invoked with no sources.
	ErrNoSources = errors.New("no sources to ingest")

	// ErrNoPassages is returned when every source was skipped and nothing
	// remains to index.
	ErrNoPassages = errors.New("no passages produced from sources")

	// ErrEmbeddingFailed wraps embedder failures during indexing. Embedding
	// failures are fatal: a partially embedded corpus must never become the
	// visible index.
	ErrEmbeddingFailed = errors.New("embedding failed")
)
