package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/doctrina/ai/mock"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/storage"
	"github.com/poiesic/doctrina/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policyDoc = `1 Overview
This instruction establishes access to care standards for military treatment facilities.

1.1 Responsibilities
The MTF commander ensures patients receive appointments within the required timelines.

2 Procedures
Appointment booking follows the priority ordering defined in this chapter.`

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, func()) {
	t.Helper()
	indexRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	pipeline, err := NewPipeline(indexRepo, mock.NewMockEmbedder(), opts...)
	require.NoError(t, err)

	return pipeline, func() {
		pipeline.Release()
		backend.Close()
	}
}

func TestNewPipeline_Validation(t *testing.T) {
	indexRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrIndexRepositoryRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(indexRepo, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestIngest_BuildsIndex(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t, WithEmbeddingModel("embeddinggemma"))
	defer cleanup()

	sources := []Source{
		{
			ID:    "afi-44-102.txt",
			Kind:  core.SourceKindFile,
			Title: "AFI 44-102 Medical Care Management",
			Text:  policyDoc,
		},
		{
			ID:    "mentor-guide.txt",
			Kind:  core.SourceKindFile,
			Title: "MSC Mentor Guide",
			Text:  "Mentorship advice for junior officers covering assignments and career fields.",
		},
	}

	snapshot, result, err := pipeline.Ingest(context.Background(), sources)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, 2, result.Sources)
	assert.Equal(t, snapshot.Len(), result.NumPassages)
	assert.Positive(t, result.NumPassages)
	assert.Equal(t, uint64(1), result.Generation)
	assert.False(t, result.IndexedAsOf.IsZero())
	assert.Empty(t, result.SkippedByCause)

	// Metadata flows through segmentation into the stored passages.
	var sawPub, sawGuide bool
	for _, passage := range snapshot.Passages {
		require.NotEmpty(t, passage.Text)
		assert.NotZero(t, passage.Id)
		if passage.SourceID == "afi-44-102.txt" {
			assert.Equal(t, "AFI 44-102", passage.Pub)
			assert.Equal(t, "clinical", passage.Domain)
			sawPub = true
		}
		if passage.SourceID == "mentor-guide.txt" {
			assert.Equal(t, "guide", passage.DocType)
			assert.Empty(t, passage.Pub)
			sawGuide = true
		}
	}
	assert.True(t, sawPub)
	assert.True(t, sawGuide)
}

func TestIngest_SectionsAssigned(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t)
	defer cleanup()

	snapshot, _, err := pipeline.Ingest(context.Background(), []Source{{
		ID:    "doc.txt",
		Kind:  core.SourceKindFile,
		Title: "Structured Instruction",
		Text:  policyDoc,
	}})
	require.NoError(t, err)

	joined := ""
	for _, passage := range snapshot.Passages {
		joined += passage.Section + "|" + passage.Subsection + ";"
	}
	assert.Contains(t, joined, "1 Overview")
}

func TestIngest_PageLocatorsFlowThrough(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t)
	defer cleanup()

	// Paginated documents arrive as one source per page.
	snapshot, _, err := pipeline.Ingest(context.Background(), []Source{
		{
			ID:   "afi-44-102-p3",
			Kind: core.SourceKindFile,
			Text: "Routine appointments within seven calendar days.",
			Page: 3,
		},
		{
			ID:   "afi-44-102-p4",
			Kind: core.SourceKindFile,
			Text: "Specialty referrals booked within 28 calendar days.",
			Page: 4,
		},
		{
			ID:   "unpaged.txt",
			Kind: core.SourceKindFile,
			Text: "Document without page information.",
		},
	})
	require.NoError(t, err)

	for _, passage := range snapshot.Passages {
		switch passage.SourceID {
		case "afi-44-102-p3":
			assert.Equal(t, 3, passage.Page)
			assert.True(t, passage.HasLocator())
		case "afi-44-102-p4":
			assert.Equal(t, 4, passage.Page)
		case "unpaged.txt":
			assert.Zero(t, passage.Page)
		}
	}
}

func TestIngest_SkipAccounting(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t)
	defer cleanup()

	sources := []Source{
		{ID: "good.txt", Kind: core.SourceKindFile, Title: "Good", Text: "Usable content here."},
		{ID: "", Kind: core.SourceKindFile, Title: "No ID", Text: "content"},
		{ID: "empty.txt", Kind: core.SourceKindFile, Title: "Empty", Text: "   \n  "},
	}

	snapshot, result, err := pipeline.Ingest(context.Background(), sources)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Sources)
	assert.Equal(t, 1, result.SkippedByCause[SkipEmptySourceID])
	assert.Equal(t, 1, result.SkippedByCause[SkipEmptyText])
	assert.Equal(t, snapshot.Len(), result.NumPassages)
	assert.Positive(t, result.NumPassages)
}

func TestIngest_NoSources(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t)
	defer cleanup()

	_, _, err := pipeline.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestIngest_AllSkipped(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t)
	defer cleanup()

	_, _, err := pipeline.Ingest(context.Background(), []Source{
		{ID: "", Text: "content"},
		{ID: "x", Text: ""},
	})
	assert.ErrorIs(t, err, ErrNoPassages)
}

func TestIngest_EmbeddingFailureIsFatal(t *testing.T) {
	indexRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model offline")
	}

	pipeline, err := NewPipeline(indexRepo, embedder)
	require.NoError(t, err)
	defer pipeline.Release()

	_, _, err = pipeline.Ingest(context.Background(), []Source{{
		ID:   "doc.txt",
		Kind: core.SourceKindFile,
		Text: "content to embed",
	}})
	require.ErrorIs(t, err, ErrEmbeddingFailed)

	// The failed run must leave no visible index behind.
	_, err = indexRepo.LoadSnapshot(context.Background())
	assert.Error(t, err)
}

func TestIngest_LargeSourceMultipleBatches(t *testing.T) {
	pipeline, cleanup := newTestPipeline(t, WithChunking(200, 40), WithPoolSize(4))
	defer cleanup()

	// Long enough to produce well over one embedding batch of passages.
	text := strings.Repeat("Access to care standards require timely appointment booking for enrolled patients. ", 400)

	snapshot, result, err := pipeline.Ingest(context.Background(), []Source{{
		ID:    "big.txt",
		Kind:  core.SourceKindFile,
		Title: "Big Document",
		Text:  text,
	}})
	require.NoError(t, err)
	assert.Greater(t, result.NumPassages, embedBatchSize)

	// Every stored vector is unit normalized and positional order held.
	for i, passage := range snapshot.Passages {
		assert.Equal(t, i, passage.Ordinal)
		assert.InDelta(t, 1.0, float64(storage.Dot(passage.Vector, passage.Vector)), 1e-5)
	}
}
