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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/doctrina/ai"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/storage"
)

// Config holds configuration for the re-embedding operation.
type Config struct {
	// BatchSize is the number of passages to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of passages)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// EmbeddingModel is recorded in the rebuilt manifest. Empty keeps the
	// previous manifest's model name.
	EmbeddingModel string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder rebuilds the index with fresh embeddings, typically after an
// embedding model change. The rebuilt snapshot replaces the current one
// atomically; a failed run leaves the existing index untouched.
type Reembedder struct {
	repo      storage.IndexRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.IndexRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(embedder, config.MaxRetries, config.RetryDelay),
	}
}

// Run executes the re-embedding operation. Every passage in the current
// snapshot is embedded with the configured embedder and a new generation
// is built from the results.
func (r *Reembedder) Run(ctx context.Context) error {
	snapshot, err := r.repo.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	total := snapshot.Len()
	if total == 0 {
		fmt.Fprintf(r.progress, "No passages found in index (0 passages)\n")
		return nil
	}

	model := r.config.EmbeddingModel
	if model == "" {
		model = snapshot.Manifest.EmbeddingModel
	}

	fmt.Fprintf(r.progress, "Starting re-embedding of %d passages (batch size: %d, model: %s)\n",
		total, r.config.BatchSize, model)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	vectors := make([][]float32, total)
	processed := 0

	iterator := NewPassageIterator(snapshot, r.config.BatchSize)
	err = iterator.ForEach(ctx, func(offset int, passages []*core.Passage) error {
		embeddings, err := r.processor.Process(ctx, passages)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		copy(vectors[offset:], embeddings)

		processed += len(passages)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := r.repo.BuildSnapshot(ctx, vectors, snapshot.Passages, model); err != nil {
		return fmt.Errorf("failed to rebuild snapshot: %w", err)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Re-embedding complete. Processed %d passages in %v (%.1f passages/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
