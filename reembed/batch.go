package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/doctrina/ai"
	"github.com/poiesic/doctrina/core"
)

// BatchProcessor handles embedding generation for batches of passages.
type BatchProcessor struct {
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds one batch of passages and returns the raw vectors in
// passage order. Normalization happens later when the snapshot is rebuilt.
func (bp *BatchProcessor) Process(ctx context.Context, passages []*core.Passage) ([][]float32, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	texts := make([]string, len(passages))
	for i, passage := range passages {
		texts[i] = passage.Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(passages) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(passages), len(embeddings))
	}

	return embeddings, nil
}
