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


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/storage"
)

// Passages per write transaction during a snapshot build. Badger caps
// transaction size, so large corpora are written in chunks.
const buildChunkSize = 256

// IndexRepository implements storage.IndexRepository for BadgerDB.
//
// Each snapshot build writes a fresh generation of passage records and then
// swaps the manifest pointer in a single transaction. Readers that loaded
// the previous generation keep working; a failed build never moves the
// pointer.
type IndexRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates a new IndexRepository. The caller keeps
// ownership of the backend.
func NewIndexRepository(backend *Backend) *IndexRepository {
	return &IndexRepository{
		backend: backend,
		logger:  slog.Default().With("component", "index-repository"),
	}
}

// Close releases repository resources. The backend stays open.
func (r *IndexRepository) Close() error {
	return nil
}

// BuildSnapshot persists a new index generation and atomically makes it the
// current one. Vectors are L2-normalized before storage so search reduces
// to an inner product. On any failure the previous generation remains the
// visible index.
func (r *IndexRepository) BuildSnapshot(ctx context.Context, vectors [][]float32, passages []*core.Passage, embeddingModel string) (*storage.Snapshot, error) {
	if len(passages) == 0 {
		return nil, storage.ErrEmptyBuild
	}
	if len(vectors) != len(passages) {
		return nil, fmt.Errorf("%w: %d vectors for %d passages",
			storage.ErrShapeMismatch, len(vectors), len(passages))
	}

	dim := len(vectors[0])
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: vector %d has dim %d, want %d",
				storage.ErrDimensionMismatch, i, len(vec), dim)
		}
	}

	now := time.Now().UTC()
	for i, passage := range passages {
		storage.Normalize(vectors[i])
		passage.Vector = vectors[i]
		if passage.InsertedAt.IsZero() {
			passage.InsertedAt = now
		}
	}

	oldManifest, err := r.readManifest()
	if err != nil && !errors.Is(err, storage.ErrIndexNotBuilt) {
		return nil, err
	}

	var generation uint64 = 1
	if oldManifest != nil {
		generation = oldManifest.Generation + 1
	}

	if err := r.writeGeneration(ctx, generation, passages); err != nil {
		// Orphaned keys from a partial write are invisible to readers;
		// clean them up before reporting the failure.
		r.dropGeneration(generation)
		return nil, err
	}

	manifest := core.IndexManifest{
		Generation:     generation,
		Count:          len(passages),
		Dim:            dim,
		EmbeddingModel: embeddingModel,
		BuiltAt:        now,
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(manifestKey), storage.MarshalManifest(&manifest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		r.dropGeneration(generation)
		return nil, err
	}

	r.logger.Info("index snapshot built",
		"generation", generation,
		"passages", len(passages),
		"dim", dim,
		"embedding_model", embeddingModel)

	if oldManifest != nil {
		r.dropGeneration(oldManifest.Generation)
	}

	return &storage.Snapshot{
		Manifest: manifest,
		Passages: passages,
	}, nil
}

// LoadSnapshot reads the current generation into memory. Returns
// storage.ErrIndexNotBuilt when no build has completed yet.
func (r *IndexRepository) LoadSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	manifest, err := r.readManifest()
	if err != nil {
		return nil, err
	}

	passages := make([]*core.Passage, 0, manifest.Count)
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePassagePrefix(manifest.Generation)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var passage *core.Passage
			err := iter.Item().Value(func(val []byte) error {
				var err error
				passage, err = storage.UnmarshalPassage(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, err)
			}
			passages = append(passages, passage)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if len(passages) != manifest.Count {
		return nil, fmt.Errorf("%w: manifest says %d passages, found %d",
			storage.ErrCorruptSnapshot, manifest.Count, len(passages))
	}

	return &storage.Snapshot{
		Manifest: *manifest,
		Passages: passages,
	}, nil
}

// Manifest returns the current index manifest without loading passages.
func (r *IndexRepository) Manifest(ctx context.Context) (*core.IndexManifest, error) {
	return r.readManifest()
}

func (r *IndexRepository) readManifest() (*core.IndexManifest, error) {
	var manifest *core.IndexManifest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(manifestKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrIndexNotBuilt
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			manifest, err = storage.UnmarshalManifest(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// writeGeneration stores passages under generation keys in chunked
// transactions. Positions preserve input order so loads reproduce it.
func (r *IndexRepository) writeGeneration(ctx context.Context, generation uint64, passages []*core.Passage) error {
	for start := 0; start < len(passages); start += buildChunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+buildChunkSize, len(passages))
		chunkStart := start
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for i := chunkStart; i < end; i++ {
				key := makePassageKey(generation, i)
				if err := tx.Set(key, storage.MarshalPassage(passages[i])); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// dropGeneration deletes all passage keys of a generation. Best effort;
// stale keys only cost disk until the next successful drop.
func (r *IndexRepository) dropGeneration(generation uint64) {
	prefix := makePassagePrefix(generation)
	err := r.backend.db.DropPrefix(prefix)
	if err != nil {
		r.logger.Warn("failed to drop index generation",
			"generation", generation,
			"error", err)
	}
}
