package storage

import (
	"testing"
	"time"

	"github.com/poiesic/doctrina/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	for _, id := range []core.ID{0, 42, core.IDFromContent("afi 44-102")} {
		data := MarshalID(id)
		require.NotEmpty(t, data)
		decoded, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}

	_, err := UnmarshalID(nil)
	assert.Error(t, err)
}

func TestMarshalUnmarshalPassage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	passage := &core.Passage{
		Id:         core.ID(99),
		SourceID:   "afi-44-102.txt",
		SourceKind: core.SourceKindFile,
		Title:      "AFI 44-102 Medical Care Management",
		Text:       "1.1 Responsibilities. The MTF commander ensures access to care.",
		Section:    "1 Overview",
		Subsection: "1.1 Responsibilities",
		Page:       3,
		LocalPath:  "corpus/afi-44-102.txt",
		Pub:        "AFI 44-102",
		Domain:     "clinical",
		DocType:    "publication",
		Effective:  "12 July 2021",
		Ordinal:    2,
		Vector:     []float32{0.1, -0.2, 0.3},
		InsertedAt: now,
	}

	data := MarshalPassage(passage)
	require.NotEmpty(t, data)
	decoded, err := UnmarshalPassage(data)
	require.NoError(t, err)
	assert.Equal(t, passage, decoded)

	_, err = UnmarshalPassage([]byte{0xff})
	assert.Error(t, err)
}

func TestMarshalUnmarshalManifest(t *testing.T) {
	manifest := &core.IndexManifest{
		Generation:     7,
		Count:          1200,
		Dim:            384,
		EmbeddingModel: "embeddinggemma",
		BuiltAt:        time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalManifest(MarshalManifest(manifest))
	require.NoError(t, err)
	assert.Equal(t, manifest, decoded)
}

func TestMarshalUnmarshalTrace(t *testing.T) {
	trace := &core.RetrievalTrace{
		Id:              core.ID(5),
		Query:           "who approves leave for msc officers",
		NormalizedQuery: "who approves leave for medical service corps officers",
		Domain:          "personnel",
		TopK:            5,
		CandidateCount:  40,
		VectorWeight:    0.75,
		LexicalWeight:   0.25,
		RerankMode:      "heuristic",
		Selected: []core.TraceItem{
			{EvidID: "E1", PassageID: core.ID(9), Title: "AFI 36-3003", VectorScore: 0.81, LexicalScore: 0.4, Combined: 0.7, Final: 0.76},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalTrace(MarshalTrace(trace))
	require.NoError(t, err)
	assert.Equal(t, trace, decoded)
}

func TestSkipConsumesWholeRecord(t *testing.T) {
	// Skip must advance exactly one serialized record, so slice elements
	// can be stepped over without decoding.
	passage := &core.Passage{
		Id:         core.ID(7),
		SourceID:   "doc.txt",
		SourceKind: core.SourceKindFile,
		Title:      "AFI 44-102",
		Text:       "Access to care.",
		Vector:     []float32{0.5, 0.5},
		InsertedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	data := MarshalPassage(passage)
	n, err := core.PassageMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	trace := &core.RetrievalTrace{
		Id:    core.ID(3),
		Query: "leave approval",
		Selected: []core.TraceItem{
			{EvidID: "E1", PassageID: core.ID(7), Title: "AFI 44-102", Final: 0.8},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	data = MarshalTrace(trace)
	n, err = core.RetrievalTraceMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
}
