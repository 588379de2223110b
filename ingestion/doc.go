// Package ingestion provides pipeline orchestration for building the index.
//
// The Pipeline type manages the ingestion workflow for policy documents,
// including:
//   - Segmenting sources into heading-aware passages
//   - Extracting publication, domain, and document-type metadata
//   - Generating embeddings concurrently over a worker pool
//   - Building a fresh index snapshot that atomically replaces the old one
//
// Malformed sources are skipped and counted per cause rather than failing
// the run. Embedding failures are fatal so a partially embedded corpus can
// never become the visible index.
package ingestion
