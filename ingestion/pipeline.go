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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/doctrina/ai"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/segment"
	"github.com/poiesic/doctrina/storage"
)

// Skip causes tracked in Result.SkippedByCause.
const (
	SkipEmptyText      = "empty_text"
	SkipEmptySourceID  = "empty_source_id"
	SkipNoSegments     = "no_segments"
	SkipInvalidPassage = "invalid_passage"
)

// Passages per embedding batch submitted to the worker pool.
const embedBatchSize = 32

// Source is one document handed to the pipeline. Kind and the locator
// fields flow through to evidence unchanged. Page is the 1-based page
// number for every passage the source yields; callers with paginated
// documents submit one source per page. Zero means no page locator.
type Source struct {
	ID        string
	Kind      core.SourceKind
	Title     string
	Text      string
	URL       string
	LocalPath string
	Page      int
}

// Result summarizes one ingestion run.
type Result struct {
	NumPassages    int
	Sources        int
	SkippedByCause map[string]int
	Generation     uint64
	IndexedAsOf    time.Time
}

// Pipeline segments sources into passages, embeds them concurrently, and
// builds a fresh index snapshot.
type Pipeline struct {
	indexRepository storage.IndexRepository
	embedder        ai.Embedder
	extractor       *segment.Extractor
	pool            *ants.Pool
	chunkSize       int
	overlap         int
	embeddingModel  string
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunking overrides the segmentation window. Non-positive values keep
// the defaults.
func WithChunking(chunkSize, overlap int) Option {
	return func(p *Pipeline) error {
		if chunkSize > 0 {
			p.chunkSize = chunkSize
		}
		if overlap >= 0 {
			p.overlap = overlap
		}
		return nil
	}
}

// WithExtractor overrides the metadata extractor, replacing the default
// corpus tables.
func WithExtractor(extractor *segment.Extractor) Option {
	return func(p *Pipeline) error {
		if extractor != nil {
			p.extractor = extractor
		}
		return nil
	}
}

// WithEmbeddingModel records the embedding model name in the manifest.
func WithEmbeddingModel(model string) Option {
	return func(p *Pipeline) error {
		p.embeddingModel = model
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(indexRepository storage.IndexRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if indexRepository == nil {
		return nil, ErrIndexRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		indexRepository: indexRepository,
		embedder:        embedder,
		extractor:       segment.NewExtractor(nil),
		pool:            pool,
		chunkSize:       segment.DefaultChunkSize,
		overlap:         segment.DefaultOverlap,
		logger:          slog.Default().With("component", "ingestion"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Ingest builds the index from the given sources. Malformed sources are
// skipped and counted rather than failing the run; embedding failures are
// fatal. On success the new snapshot atomically replaces the previous one.
func (p *Pipeline) Ingest(ctx context.Context, sources []Source) (*storage.Snapshot, *Result, error) {
	if len(sources) == 0 {
		return nil, nil, ErrNoSources
	}

	result := &Result{
		Sources:        len(sources),
		SkippedByCause: make(map[string]int),
	}

	passages := p.segmentSources(sources, result)
	if len(passages) == 0 {
		return nil, nil, ErrNoPassages
	}

	p.logger.Info("segmented sources",
		"sources", len(sources),
		"passages", len(passages))

	vectors, err := p.embedPassages(ctx, passages)
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := p.indexRepository.BuildSnapshot(ctx, vectors, passages, p.embeddingModel)
	if err != nil {
		return nil, nil, err
	}

	result.NumPassages = snapshot.Len()
	result.Generation = snapshot.Manifest.Generation
	result.IndexedAsOf = snapshot.Manifest.BuiltAt

	p.logger.Info("index built",
		"generation", result.Generation,
		"passages", result.NumPassages,
		"skipped", result.SkippedByCause)

	return snapshot, result, nil
}

// segmentSources splits each source into passages with extracted metadata.
func (p *Pipeline) segmentSources(sources []Source, result *Result) []*core.Passage {
	var passages []*core.Passage

	for _, source := range sources {
		if strings.TrimSpace(source.ID) == "" {
			result.SkippedByCause[SkipEmptySourceID]++
			continue
		}
		if strings.TrimSpace(source.Text) == "" {
			result.SkippedByCause[SkipEmptyText]++
			p.logger.Warn("skipping empty source", "source_id", source.ID)
			continue
		}

		segments := segment.Split(source.Text, p.chunkSize, p.overlap)
		if len(segments) == 0 {
			result.SkippedByCause[SkipNoSegments]++
			continue
		}

		meta := p.extractor.Extract(source.Title, source.ID, source.Text)

		for ordinal, seg := range segments {
			passage := &core.Passage{
				Id:         core.PassageID(source.ID, ordinal, seg.Text),
				SourceID:   source.ID,
				SourceKind: source.Kind,
				Title:      source.Title,
				Text:       seg.Text,
				Section:    seg.Section,
				Subsection: seg.Subsection,
				Page:       source.Page,
				URL:        source.URL,
				LocalPath:  source.LocalPath,
				Pub:        meta.Pub,
				Domain:     meta.Domain,
				DocType:    meta.DocType,
				Effective:  meta.Effective,
				Ordinal:    ordinal,
			}
			if err := core.ValidatePassage(passage); err != nil {
				result.SkippedByCause[SkipInvalidPassage]++
				p.logger.Warn("skipping invalid passage",
					"source_id", source.ID,
					"ordinal", ordinal,
					"err", err)
				continue
			}
			passages = append(passages, passage)
		}
	}

	return passages
}

// embedPassages embeds passage texts in concurrent batches. Results land
// at their batch offsets so passage order is preserved.
func (p *Pipeline) embedPassages(ctx context.Context, passages []*core.Passage) ([][]float32, error) {
	vectors := make([][]float32, len(passages))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(passages); start += embedBatchSize {
		end := min(start+embedBatchSize, len(passages))
		batchStart, batchEnd := start, end

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			texts := make([]string, batchEnd-batchStart)
			for i := batchStart; i < batchEnd; i++ {
				texts[i-batchStart] = passages[i].Text
			}

			embeddings, err := p.embedder.EmbedTexts(ctx, texts)
			if err == nil && len(embeddings) != len(texts) {
				err = fmt.Errorf("embedding result mismatch. expected %d, received %d",
					len(texts), len(embeddings))
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for i, embedding := range embeddings {
				vectors[batchStart+i] = embedding
			}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, firstErr)
	}
	return vectors, nil
}
