package search

import (
	"regexp"

	"github.com/poiesic/doctrina/core"
)

// InsufficientEvidenceAnswer is the canonical refusal emitted when an
// answer fails the grounding gate.
const InsufficientEvidenceAnswer = "Insufficient evidence in the indexed sources."

var citationMarkerPattern = regexp.MustCompile(`\[E\d+\]`)

// HasCitationMarkers reports whether the answer contains at least one
// evidence citation marker such as [E1].
func HasCitationMarkers(answer string) bool {
	return citationMarkerPattern.MatchString(answer)
}

// CitedEvidIDs returns the distinct evidence identifiers cited by the
// answer, in order of first appearance, without brackets.
func CitedEvidIDs(answer string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, marker := range citationMarkerPattern.FindAllString(answer, -1) {
		id := marker[1 : len(marker)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// IsGrounded reports whether an answer is supported by its evidence. An
// answer passes only when evidence exists, the highest evidence score
// clears the threshold, and the answer cites at least one evidence item it
// was actually given. Everything else should be replaced with
// InsufficientEvidenceAnswer.
func IsGrounded(answer string, evidence []core.Evidence, minTopScore float64) bool {
	if len(evidence) == 0 {
		return false
	}
	top := evidence[0].Score
	for _, ev := range evidence[1:] {
		top = max(top, ev.Score)
	}
	if top < minTopScore {
		return false
	}

	known := make(map[string]bool, len(evidence))
	for _, ev := range evidence {
		known[ev.EvidID] = true
	}
	for _, id := range CitedEvidIDs(answer) {
		if known[id] {
			return true
		}
	}
	return false
}
