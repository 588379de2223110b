package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/doctrina/core"
)

// MaxLocatableCitations caps the precision filter: answers cite at most
// this many locatable sources.
const MaxLocatableCitations = 3

// DefaultDenyPatterns returns title substrings whose passages are excluded
// from evidence. Derived mentor material restates doctrine without being
// citable authority.
func DefaultDenyPatterns() []string {
	return []string{"msc mentor guide"}
}

// assembleEvidence converts the top candidates into the public evidence
// list. Passages outside the source allow-list and deny-listed titles are
// skipped and do not consume topK slots. Evidence identifiers E1, E2, ...
// number the surviving items in rank order. Returns the evidence alongside
// the candidates that produced it.
func assembleEvidence(candidates []*core.Candidate, topK, excerptLength int, denyPatterns, allowedSources []string, monitor RetrievalMonitor) ([]core.Evidence, []*core.Candidate) {
	evidence := make([]core.Evidence, 0, topK)
	chosen := make([]*core.Candidate, 0, topK)

	for _, candidate := range candidates {
		if len(evidence) == topK {
			break
		}
		passage := candidate.Passage
		if !sourceAllowed(passage.SourceID, allowedSources) {
			monitor.EvidenceSkipped(passage.Title)
			continue
		}
		if matchesAnyPattern(passage.Title, denyPatterns) {
			monitor.EvidenceSkipped(passage.Title)
			continue
		}

		evidence = append(evidence, core.Evidence{
			EvidID:     fmt.Sprintf("E%d", len(evidence)+1),
			SourceID:   passage.SourceID,
			Title:      passage.Title,
			Excerpt:    truncateExcerpt(passage.Text, excerptLength),
			URL:        passage.URL,
			LocalPath:  passage.LocalPath,
			Page:       passage.Page,
			Section:    passage.Section,
			Subsection: passage.Subsection,
			Pub:        passage.Pub,
			Domain:     passage.Domain,
			DocType:    passage.DocType,
			Score:      candidate.Final,
		})
		chosen = append(chosen, candidate)
	}

	return evidence, chosen
}

// sourceAllowed reports whether a passage's source survives the caller's
// allow-list. An empty list allows everything.
func sourceAllowed(sourceID string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	return slices.Contains(allowed, sourceID)
}

// FilterLocatable applies the citation precision filter: keep up to
// MaxLocatableCitations evidence items that carry a precise locator. When
// nothing is locatable the original list passes through, since an
// unlocatable citation still beats none.
func FilterLocatable(evidence []core.Evidence) []core.Evidence {
	locatable := make([]core.Evidence, 0, MaxLocatableCitations)
	for _, ev := range evidence {
		if !ev.HasLocator() {
			continue
		}
		locatable = append(locatable, ev)
		if len(locatable) == MaxLocatableCitations {
			break
		}
	}
	if len(locatable) == 0 {
		return evidence
	}
	return locatable
}

// truncateExcerpt cuts text at the rune limit, trimming back to the last
// space so excerpts never end mid-word.
func truncateExcerpt(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > limit/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
