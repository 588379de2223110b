// Package reembed provides functionality for re-embedding the indexed
// passages with a new or updated embedding model.
//
// This package supports batch processing of passages, progress tracking,
// and retry logic with exponential backoff. The rebuilt index replaces the
// current snapshot atomically, so queries keep working against the old
// generation until the rebuild completes.
package reembed
