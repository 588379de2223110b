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

	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/storage"
)

const (
	// DefaultBatchSize is the default number of passages per batch
	DefaultBatchSize = 100
)

// PassageIterator walks a snapshot's passages in batches, preserving index
// order so rebuilt vectors line up with their passages.
type PassageIterator struct {
	snapshot  *storage.Snapshot
	batchSize int
}

// NewPassageIterator creates a new passage iterator.
// batchSize: number of passages per batch (must be > 0)
func NewPassageIterator(snapshot *storage.Snapshot, batchSize int) *PassageIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &PassageIterator{
		snapshot:  snapshot,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch with the batch's starting offset.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
func (it *PassageIterator) ForEach(ctx context.Context, fn func(offset int, passages []*core.Passage) error) error {
	if it.snapshot.Len() == 0 {
		return nil
	}

	passages := it.snapshot.Passages
	for start := 0; start < len(passages); start += it.batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := min(start+it.batchSize, len(passages))
		if err := fn(start, passages[start:end]); err != nil {
			return err
		}
	}

	return nil
}
