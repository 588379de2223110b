package search

import (
	"testing"

	"github.com/poiesic/doctrina/core"
	"github.com/stretchr/testify/assert"
)

func TestHasCitationMarkers(t *testing.T) {
	assert.True(t, HasCitationMarkers("Approval authority is the commander [E1]."))
	assert.True(t, HasCitationMarkers("[E12] covers this."))
	assert.False(t, HasCitationMarkers("Approval authority is the commander."))
	assert.False(t, HasCitationMarkers("See [E] for details."))
	assert.False(t, HasCitationMarkers(""))
}

func TestCitedEvidIDs(t *testing.T) {
	ids := CitedEvidIDs("Per [E2] and [E1], see also [E2].")
	assert.Equal(t, []string{"E2", "E1"}, ids)
	assert.Nil(t, CitedEvidIDs("no markers here"))
}

func TestIsGrounded(t *testing.T) {
	evidence := []core.Evidence{
		{EvidID: "E1", Title: "AFI 44-102", Score: 0.8},
		{EvidID: "E2", Title: "DAFI 36-3003", Score: 0.6},
	}

	t.Run("grounded answer passes", func(t *testing.T) {
		assert.True(t, IsGrounded("Standards are set in [E1].", evidence, 0.2))
	})

	t.Run("no evidence fails", func(t *testing.T) {
		assert.False(t, IsGrounded("Standards are set in [E1].", nil, 0.2))
	})

	t.Run("weak top score fails", func(t *testing.T) {
		weak := []core.Evidence{{EvidID: "E1", Score: 0.1}}
		assert.False(t, IsGrounded("Per [E1].", weak, 0.2))
	})

	t.Run("markerless answer fails", func(t *testing.T) {
		assert.False(t, IsGrounded("Standards are set by the commander.", evidence, 0.2))
	})

	t.Run("marker for unknown evidence fails", func(t *testing.T) {
		assert.False(t, IsGrounded("Per [E9].", evidence, 0.2))
	})

	t.Run("one known marker among unknown passes", func(t *testing.T) {
		assert.True(t, IsGrounded("Per [E9] and [E2].", evidence, 0.2))
	})

	t.Run("highest score governs regardless of order", func(t *testing.T) {
		// A rerank pass can move a lower-scored item first; the gate still
		// measures the strongest evidence.
		reordered := []core.Evidence{
			{EvidID: "E2", Score: 0.1},
			{EvidID: "E1", Score: 0.8},
		}
		assert.True(t, IsGrounded("Per [E1].", reordered, 0.5))
		assert.False(t, IsGrounded("Per [E1].", reordered, 0.9))
	})
}

func TestGroundingMonotonicity(t *testing.T) {
	// Raising the threshold can only flip grounded answers to refusals,
	// never the reverse.
	evidence := []core.Evidence{{EvidID: "E1", Score: 0.5}}
	answer := "Covered by [E1]."

	var previous = true
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.7} {
		current := IsGrounded(answer, evidence, threshold)
		if !previous {
			assert.False(t, current, "threshold %v regrounded a refused answer", threshold)
		}
		previous = current
	}
}
