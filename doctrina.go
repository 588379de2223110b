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


// Package doctrina answers natural-language questions over a corpus of
// policy documents with citable evidence. The Engine type ties together
// ingestion, the vector index, hybrid retrieval, and trace persistence.
package doctrina

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/doctrina/ai"
	"github.com/poiesic/doctrina/ai/openai"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/ingestion"
	"github.com/poiesic/doctrina/reembed"
	"github.com/poiesic/doctrina/search"
	"github.com/poiesic/doctrina/storage"
	"github.com/poiesic/doctrina/storage/badger"
)

// Engine owns the storage backend, the AI provider, and the current index
// snapshot. One Engine serves many concurrent queries; retrievals read the
// snapshot through an atomic pointer while rebuilds swap it underneath.
type Engine struct {
	backend   *badger.Backend
	indexRepo storage.IndexRepository
	traceRepo storage.TraceRepository
	provider  ai.AIProvider
	snapshot  atomic.Pointer[storage.Snapshot]
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig overrides the AI provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStorage keeps all state in memory. Intended for tests.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens an engine over the database at filePath. An existing
// index is loaded eagerly; a missing one leaves the engine cold until the
// first ingestion.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	indexRepo := badger.NewIndexRepository(backend)

	traceRepo, err := badger.NewTraceRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		traceRepo.Close()
		backend.Close()
		return nil, err
	}

	engine := &Engine{
		backend:   backend,
		indexRepo: indexRepo,
		traceRepo: traceRepo,
		provider:  provider,
		logger:    slog.Default().With("component", "engine"),
	}

	if err := engine.Reload(context.Background()); err != nil {
		if !errors.Is(err, storage.ErrIndexNotBuilt) {
			engine.Close()
			return nil, err
		}
		engine.logger.Info("no index found; engine starts cold")
	}

	return engine, nil
}

// Close releases the AI provider, repositories, and storage backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.traceRepo.Close(); err != nil {
		e.logger.Error("error closing trace repository", "err", err)
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Current returns the live index snapshot, or nil when the engine is cold.
// Implements search.SnapshotSource.
func (e *Engine) Current() *storage.Snapshot {
	return e.snapshot.Load()
}

// Reload reads the persisted snapshot into memory and makes it current.
func (e *Engine) Reload(ctx context.Context) error {
	snapshot, err := e.indexRepo.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	e.snapshot.Store(snapshot)
	e.logger.Info("index snapshot loaded",
		"generation", snapshot.Manifest.Generation,
		"passages", snapshot.Len())
	return nil
}

// Manifest returns the persisted index manifest.
func (e *Engine) Manifest(ctx context.Context) (*core.IndexManifest, error) {
	return e.indexRepo.Manifest(ctx)
}

// Ingest builds the index from sources and makes the new snapshot current.
func (e *Engine) Ingest(ctx context.Context, sources []ingestion.Source, opts ...ingestion.Option) (*ingestion.Result, error) {
	pipeline, err := e.NewPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	snapshot, result, err := pipeline.Ingest(ctx, sources)
	if err != nil {
		return nil, err
	}
	e.snapshot.Store(snapshot)
	return result, nil
}

// Ask retrieves evidence for a question and persists the retrieval trace.
// Trace persistence is best effort; a trace write failure never fails the
// query.
func (e *Engine) Ask(ctx context.Context, question string, topK int, opts ...search.Option) (*search.Result, error) {
	searcher, err := e.NewSearcher(opts...)
	if err != nil {
		return nil, err
	}

	result, err := searcher.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	if err := e.traceRepo.Append(ctx, result.Trace); err != nil {
		e.logger.Warn("failed to persist retrieval trace", "err", err)
	}

	return result, nil
}

// RecentTraces returns the N most recent retrieval traces, newest first.
func (e *Engine) RecentTraces(ctx context.Context, limit int) ([]*core.RetrievalTrace, error) {
	return e.traceRepo.Recent(ctx, limit)
}

// Reembed rebuilds the index with fresh embeddings and reloads it.
func (e *Engine) Reembed(ctx context.Context, config *reembed.Config, progress io.Writer) error {
	reembedder := reembed.NewReembedder(e.indexRepo, e.provider.Embedder(), config, progress)
	if err := reembedder.Run(ctx); err != nil {
		return err
	}
	return e.Reload(ctx)
}

// NewSearcher creates a searcher bound to the engine's snapshot and
// embedder.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithCompleter(e.provider.Completer())}, opts...)
	return search.NewSearcher(e, e.provider.Embedder(), opts...)
}

// NewPipeline creates an ingestion pipeline bound to the engine's index
// repository and embedder.
func (e *Engine) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.indexRepo, e.provider.Embedder(), opts...)
}

// IndexRepository exposes the underlying index repository.
func (e *Engine) IndexRepository() storage.IndexRepository {
	return e.indexRepo
}

// TraceRepository exposes the underlying trace repository.
func (e *Engine) TraceRepository() storage.TraceRepository {
	return e.traceRepo
}
