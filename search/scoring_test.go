package search

import (
	"testing"

	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/query"
	"github.com/poiesic/doctrina/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateWithScores(id core.ID, vector, lexical float64) *core.Candidate {
	return &core.Candidate{
		Passage:      &core.Passage{Id: id, Domain: "general"},
		VectorScore:  vector,
		LexicalScore: lexical,
	}
}

func TestNormalizeScores(t *testing.T) {
	t.Run("spreads to unit range", func(t *testing.T) {
		candidates := []*core.Candidate{
			candidateWithScores(1, 0.2, 0.0),
			candidateWithScores(2, 0.6, 0.5),
			candidateWithScores(3, 1.0, 1.0),
		}
		normalizeScores(candidates)

		assert.InDelta(t, 0.0, candidates[0].NormVector, 1e-9)
		assert.InDelta(t, 0.5, candidates[1].NormVector, 1e-9)
		assert.InDelta(t, 1.0, candidates[2].NormVector, 1e-9)
		assert.InDelta(t, 0.5, candidates[1].NormLexical, 1e-9)
	})

	t.Run("all equal positive collapses to one", func(t *testing.T) {
		candidates := []*core.Candidate{
			candidateWithScores(1, 0.7, 0.3),
			candidateWithScores(2, 0.7, 0.3),
		}
		normalizeScores(candidates)
		for _, candidate := range candidates {
			assert.Equal(t, 1.0, candidate.NormVector)
			assert.Equal(t, 1.0, candidate.NormLexical)
		}
	})

	t.Run("all equal zero collapses to zero", func(t *testing.T) {
		candidates := []*core.Candidate{
			candidateWithScores(1, 0.5, 0),
			candidateWithScores(2, 0.5, 0),
		}
		normalizeScores(candidates)
		for _, candidate := range candidates {
			assert.Equal(t, 1.0, candidate.NormVector)
			assert.Equal(t, 0.0, candidate.NormLexical)
		}
	})

	t.Run("empty set is a no-op", func(t *testing.T) {
		normalizeScores(nil)
	})
}

func TestScoreLexical(t *testing.T) {
	tokens := query.Tokenize("leave approval authority")

	t.Run("title overlap dominates", func(t *testing.T) {
		titleHit := &core.Candidate{Passage: &core.Passage{
			Title: "Leave Approval Authority Memo",
			Text:  "Unrelated body text.",
		}}
		bodyHit := &core.Candidate{Passage: &core.Passage{
			Title: "Miscellaneous Policy",
			Text:  "Leave approval authority belongs to the commander.",
		}}
		scoreLexical([]*core.Candidate{titleHit, bodyHit}, tokens)

		assert.InDelta(t, 0.7, titleHit.LexicalScore, 1e-9)
		assert.InDelta(t, 0.3, bodyHit.LexicalScore, 1e-9)
	})

	t.Run("partial overlap scales by query size", func(t *testing.T) {
		candidate := &core.Candidate{Passage: &core.Passage{
			Title: "Leave Program",
			Text:  "",
		}}
		scoreLexical([]*core.Candidate{candidate}, tokens)
		assert.InDelta(t, 0.7/3.0, candidate.LexicalScore, 1e-9)
	})

	t.Run("tokenless query scores nothing", func(t *testing.T) {
		candidate := &core.Candidate{Passage: &core.Passage{Title: "Anything"}}
		scoreLexical([]*core.Candidate{candidate}, nil)
		assert.Zero(t, candidate.LexicalScore)
	})
}

func TestMergeLexicalMatches(t *testing.T) {
	queryVector := []float32{1, 0, 0}
	tokens := query.Tokenize("leave approval authority")

	snapshot := &storage.Snapshot{Passages: []*core.Passage{
		{Id: 1, Domain: "general", Title: "Vector Hit", Text: "Nothing relevant."},
		{Id: 2, Domain: "general", Title: "Leave Approval Authority", Text: "", Vector: []float32{0, 1, 0}},
		{Id: 3, Domain: "general", Title: "Silent Bystander", Text: "No shared words."},
		{Id: 4, Domain: "travel", Title: "Leave Approval Authority", Text: ""},
	}}
	candidates := []*core.Candidate{
		{Passage: snapshot.Passages[0], VectorScore: 0.9},
	}

	t.Run("lexical hit outside vector matches joins", func(t *testing.T) {
		merged := mergeLexicalMatches(candidates, snapshot, queryVector, tokens, "general")
		require.Len(t, merged, 2)
		assert.Equal(t, core.ID(2), merged[1].Passage.Id)
		assert.Positive(t, merged[1].LexicalScore)
		// The merged candidate carries its true vector similarity.
		assert.Zero(t, merged[1].VectorScore)
	})

	t.Run("existing candidates are not duplicated", func(t *testing.T) {
		merged := mergeLexicalMatches(candidates, snapshot, queryVector, tokens, "general")
		ids := make(map[core.ID]int)
		for _, candidate := range merged {
			ids[candidate.Passage.Id]++
		}
		assert.Equal(t, 1, ids[core.ID(1)])
	})

	t.Run("ineligible domains stay out", func(t *testing.T) {
		merged := mergeLexicalMatches(candidates, snapshot, queryVector, tokens, "clinical")
		for _, candidate := range merged {
			assert.NotEqual(t, core.ID(4), candidate.Passage.Id)
		}
	})

	t.Run("tokenless query adds nothing", func(t *testing.T) {
		merged := mergeLexicalMatches(candidates, snapshot, queryVector, nil, "general")
		assert.Len(t, merged, 1)
	})
}

func TestCombineScores(t *testing.T) {
	searcher := &Searcher{
		vectorWeight:  DefaultVectorWeight,
		lexicalWeight: DefaultLexicalWeight,
	}

	t.Run("weighted combination", func(t *testing.T) {
		candidate := &core.Candidate{
			Passage:     &core.Passage{Domain: "general", Title: "Plain Document"},
			NormVector:  1.0,
			NormLexical: 0.0,
		}
		searcher.combineScores([]*core.Candidate{candidate}, "general", nil)
		assert.InDelta(t, 0.75, candidate.Combined, 1e-9)

		candidate.NormVector = 0.0
		candidate.NormLexical = 1.0
		searcher.combineScores([]*core.Candidate{candidate}, "general", nil)
		assert.InDelta(t, 0.25, candidate.Combined, 1e-9)
	})

	t.Run("doctrine bonus", func(t *testing.T) {
		doctrine := &core.Candidate{
			Passage:    &core.Passage{Pub: "AFI 44-102", Title: "AFI 44-102"},
			NormVector: 1.0,
		}
		plain := &core.Candidate{
			Passage:    &core.Passage{Title: "Some Briefing"},
			NormVector: 1.0,
		}
		searcher.combineScores([]*core.Candidate{doctrine, plain}, "general", nil)
		assert.InDelta(t, doctrineBonus, doctrine.Combined-plain.Combined, 1e-9)
	})

	t.Run("toolkit penalty", func(t *testing.T) {
		toolkit := &core.Candidate{
			Passage:    &core.Passage{Title: "Career Toolkit"},
			NormVector: 1.0,
		}
		searcher.combineScores([]*core.Candidate{toolkit}, "general", nil)
		assert.InDelta(t, 0.75-toolkitPenalty, toolkit.Combined, 1e-9)
	})

	t.Run("domain bonus skipped for general route", func(t *testing.T) {
		candidate := &core.Candidate{
			Passage:    &core.Passage{Domain: "general", Title: "Doc"},
			NormVector: 1.0,
		}
		searcher.combineScores([]*core.Candidate{candidate}, "general", nil)
		withoutBonus := candidate.Combined

		candidate.Passage.Domain = "clinical"
		searcher.combineScores([]*core.Candidate{candidate}, "clinical", nil)
		assert.InDelta(t, domainMatchBonus, candidate.Combined-withoutBonus, 1e-9)
	})

	t.Run("pub reference in title", func(t *testing.T) {
		cited := &core.Candidate{
			Passage:    &core.Passage{Pub: "DAFI 36-3003", Title: "DAFI 36-3003 Leave"},
			NormVector: 1.0,
		}
		other := &core.Candidate{
			Passage:    &core.Passage{Pub: "AFI 44-102", Title: "AFI 44-102 Care"},
			NormVector: 1.0,
		}
		searcher.combineScores([]*core.Candidate{cited, other}, "general", []string{"DAFI 36-3003"})
		assert.InDelta(t, pubInTitleBonus, cited.Combined-other.Combined, 1e-9)
	})
}

func TestTitleCitesPub(t *testing.T) {
	assert.True(t, titleCitesPub("dafi36-3003 military leave", []string{"DAFI 36-3003"}))
	assert.True(t, titleCitesPub("DAFI 36-3003 Military Leave", []string{"DAFI 36-3003"}))
	assert.False(t, titleCitesPub("AFI 44-102 Care", []string{"DAFI 36-3003"}))
	assert.False(t, titleCitesPub("Anything", nil))
}

func TestFilterCandidates(t *testing.T) {
	matches := []storage.Match{
		{Score: 0.9, Passage: &core.Passage{Id: 1, Domain: "clinical"}},
		{Score: 0.8, Passage: &core.Passage{Id: 2, Domain: "personnel"}},
		{Score: 0.7, Passage: &core.Passage{Id: 3, Domain: "personnel", Pub: "DAFI 36-3003"}},
		{Score: 0.6, Passage: &core.Passage{Id: 4, Domain: "general"}},
	}

	t.Run("general route keeps all", func(t *testing.T) {
		candidates := filterCandidates(matches, "general")
		assert.Len(t, candidates, 4)
	})

	t.Run("routed domain drops foreign non-doctrine", func(t *testing.T) {
		candidates := filterCandidates(matches, "clinical")
		require.Len(t, candidates, 3)
		ids := []core.ID{candidates[0].Passage.Id, candidates[1].Passage.Id, candidates[2].Passage.Id}
		assert.Equal(t, []core.ID{1, 3, 4}, ids)
	})

	t.Run("vector score carried over", func(t *testing.T) {
		candidates := filterCandidates(matches, "general")
		assert.InDelta(t, 0.9, candidates[0].VectorScore, 1e-6)
	})
}

func TestSortCandidates_TieBreak(t *testing.T) {
	a := &core.Candidate{Passage: &core.Passage{Id: 9}, Final: 0.5}
	b := &core.Candidate{Passage: &core.Passage{Id: 2}, Final: 0.5}
	c := &core.Candidate{Passage: &core.Passage{Id: 5}, Final: 0.9}
	candidates := []*core.Candidate{a, b, c}
	sortCandidates(candidates)

	assert.Equal(t, core.ID(5), candidates[0].Passage.Id)
	assert.Equal(t, core.ID(2), candidates[1].Passage.Id)
	assert.Equal(t, core.ID(9), candidates[2].Passage.Id)
}

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		name     string
		response string
		n        int
		want     []int
	}{
		{"clean list", "2, 1, 3", 3, []int{1, 0, 2}},
		{"prose wrapper", "The best order is 3, then 1.", 3, []int{2, 0}},
		{"out of range dropped", "1, 9, 2", 3, []int{0, 1}},
		{"duplicates dropped", "1, 1, 2", 3, []int{0, 1}},
		{"no numbers", "none of these help", 3, nil},
		{"zero rejected", "0, 1", 3, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseIndexList(tt.response, tt.n))
		})
	}
}
