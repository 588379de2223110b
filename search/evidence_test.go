package search

import (
	"strings"
	"testing"

	"github.com/poiesic/doctrina/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evidenceCandidate(id core.ID, title, text string) *core.Candidate {
	return &core.Candidate{
		Passage: &core.Passage{Id: id, SourceID: "src", Title: title, Text: text},
		Final:   1.0 / float64(id),
	}
}

func TestAssembleEvidence(t *testing.T) {
	candidates := []*core.Candidate{
		evidenceCandidate(1, "AFI 44-102", "Care standards."),
		evidenceCandidate(2, "MSC Mentor Guide", "Mentorship advice."),
		evidenceCandidate(3, "DAFI 36-3003", "Leave policy."),
		evidenceCandidate(4, "JTR", "Travel entitlements."),
	}

	t.Run("deny-listed titles do not consume slots", func(t *testing.T) {
		evidence, chosen := assembleEvidence(candidates, 3, 700, DefaultDenyPatterns(), nil, &noopMonitor{})
		require.Len(t, evidence, 3)
		require.Len(t, chosen, 3)
		assert.Equal(t, []string{"E1", "E2", "E3"},
			[]string{evidence[0].EvidID, evidence[1].EvidID, evidence[2].EvidID})
		assert.Equal(t, "AFI 44-102", evidence[0].Title)
		assert.Equal(t, "DAFI 36-3003", evidence[1].Title)
		assert.Equal(t, "JTR", evidence[2].Title)
	})

	t.Run("stops at topK", func(t *testing.T) {
		evidence, _ := assembleEvidence(candidates, 2, 700, nil, nil, &noopMonitor{})
		assert.Len(t, evidence, 2)
	})

	t.Run("chosen aligns with evidence", func(t *testing.T) {
		evidence, chosen := assembleEvidence(candidates, 4, 700, nil, nil, &noopMonitor{})
		require.Len(t, chosen, len(evidence))
		for i := range evidence {
			assert.Equal(t, chosen[i].Passage.Title, evidence[i].Title)
			assert.Equal(t, chosen[i].Final, evidence[i].Score)
		}
	})
}

func TestAssembleEvidence_AllowedSources(t *testing.T) {
	sourced := func(id core.ID, sourceID, title string) *core.Candidate {
		return &core.Candidate{
			Passage: &core.Passage{Id: id, SourceID: sourceID, Title: title},
			Final:   1.0 / float64(id),
		}
	}
	candidates := []*core.Candidate{
		sourced(1, "afi-44-102.txt", "AFI 44-102"),
		sourced(2, "jtr.txt", "JTR"),
		sourced(3, "dafi-36-3003.txt", "DAFI 36-3003"),
	}

	t.Run("filters to listed sources", func(t *testing.T) {
		allowed := []string{"afi-44-102.txt", "dafi-36-3003.txt"}
		evidence, _ := assembleEvidence(candidates, 3, 700, nil, allowed, &noopMonitor{})
		require.Len(t, evidence, 2)
		assert.Equal(t, "AFI 44-102", evidence[0].Title)
		assert.Equal(t, "DAFI 36-3003", evidence[1].Title)
		// Identifiers renumber the survivors.
		assert.Equal(t, "E2", evidence[1].EvidID)
	})

	t.Run("filtered sources do not consume slots", func(t *testing.T) {
		allowed := []string{"dafi-36-3003.txt"}
		evidence, _ := assembleEvidence(candidates, 1, 700, nil, allowed, &noopMonitor{})
		require.Len(t, evidence, 1)
		assert.Equal(t, "DAFI 36-3003", evidence[0].Title)
	})

	t.Run("empty list allows everything", func(t *testing.T) {
		evidence, _ := assembleEvidence(candidates, 3, 700, nil, nil, &noopMonitor{})
		assert.Len(t, evidence, 3)
	})

	t.Run("unknown source yields no evidence", func(t *testing.T) {
		evidence, _ := assembleEvidence(candidates, 3, 700, nil, []string{"missing.txt"}, &noopMonitor{})
		assert.Empty(t, evidence)
	})
}

func TestTruncateExcerpt(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "short", truncateExcerpt("short", 700))
	})

	t.Run("long text cut at word boundary", func(t *testing.T) {
		text := strings.Repeat("policy guidance ", 100)
		excerpt := truncateExcerpt(text, 50)
		assert.True(t, strings.HasSuffix(excerpt, "…"))
		assert.LessOrEqual(t, len([]rune(excerpt)), 51)
		assert.False(t, strings.Contains(strings.TrimSuffix(excerpt, "…"), "guidanc "))
	})

	t.Run("non-positive limit unchanged", func(t *testing.T) {
		assert.Equal(t, "anything", truncateExcerpt("anything", 0))
	})
}

func TestFilterLocatable(t *testing.T) {
	locatable := func(id string, page int) core.Evidence {
		return core.Evidence{EvidID: id, Page: page}
	}

	t.Run("keeps up to three locatable", func(t *testing.T) {
		evidence := []core.Evidence{
			locatable("E1", 1),
			{EvidID: "E2"},
			locatable("E3", 3),
			locatable("E4", 4),
			locatable("E5", 5),
		}
		filtered := FilterLocatable(evidence)
		require.Len(t, filtered, 3)
		assert.Equal(t, "E1", filtered[0].EvidID)
		assert.Equal(t, "E3", filtered[1].EvidID)
		assert.Equal(t, "E4", filtered[2].EvidID)
	})

	t.Run("section counts as locator", func(t *testing.T) {
		evidence := []core.Evidence{{EvidID: "E1", Section: "2 Access"}}
		assert.Len(t, FilterLocatable(evidence), 1)
	})

	t.Run("nothing locatable passes through", func(t *testing.T) {
		evidence := []core.Evidence{{EvidID: "E1"}, {EvidID: "E2"}}
		assert.Equal(t, evidence, FilterLocatable(evidence))
	})
}
