package search

import (
	"slices"
	"strings"

	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/lexicon"
	"github.com/poiesic/doctrina/query"
	"github.com/poiesic/doctrina/storage"
)

// Re-weighting adjustments applied after score combination. Doctrine
// publications answer policy questions better than derived guides, and
// toolkit-style documents tend to restate doctrine without citable
// authority.
const (
	doctrineBonus    = 0.06
	toolkitPenalty   = 0.08
	domainMatchBonus = 0.04
	pubInTitleBonus  = 0.15

	titleOverlapWeight = 0.7
	bodyOverlapWeight  = 0.3
)

// toolkitTitlePatterns mark derived, non-authoritative document titles.
var toolkitTitlePatterns = []string{
	"mentor guide",
	"accession guide",
	"toolkit",
}

// filterCandidates keeps vector matches that are eligible for the routed
// domain: same-domain passages, general passages, and doctrine publications
// regardless of domain. A general route keeps everything.
func filterCandidates(matches []storage.Match, domain string) []*core.Candidate {
	candidates := make([]*core.Candidate, 0, len(matches))
	for _, match := range matches {
		if !eligible(match.Passage, domain) {
			continue
		}
		candidates = append(candidates, &core.Candidate{
			Passage:     match.Passage,
			VectorScore: float64(match.Score),
		})
	}
	return candidates
}

func eligible(passage *core.Passage, domain string) bool {
	if domain == lexicon.GeneralDomain {
		return true
	}
	if passage.Domain == domain || passage.Domain == lexicon.GeneralDomain {
		return true
	}
	// Doctrine publications stay eligible across domains; routing must
	// never hide a citable source.
	return passage.Pub != ""
}

// scoreLexical computes token-overlap scores against the query tokens.
// Title overlap dominates body overlap. A tokenless query scores zero
// everywhere, leaving ranking to the vector side.
func scoreLexical(candidates []*core.Candidate, queryTokens []string) {
	distinct := distinctTokens(queryTokens)
	if len(distinct) == 0 {
		return
	}

	total := float64(len(distinct))
	for _, candidate := range candidates {
		candidate.LexicalScore = lexicalOverlap(candidate.Passage, distinct, total)
	}
}

// mergeLexicalMatches runs the lexical pass over every indexed passage and
// merges the hits into the candidate set by passage ID, so a passage
// missing from the vector over-fetch window can still become a candidate
// on lexical strength alone. Merged passages get their true vector
// similarity; zero-overlap passages outside the vector matches stay out.
func mergeLexicalMatches(candidates []*core.Candidate, snapshot *storage.Snapshot, queryVector []float32, queryTokens []string, domain string) []*core.Candidate {
	distinct := distinctTokens(queryTokens)
	if len(distinct) == 0 {
		return candidates
	}
	total := float64(len(distinct))

	seen := make(map[core.ID]bool, len(candidates))
	for _, candidate := range candidates {
		seen[candidate.Passage.Id] = true
	}

	for _, passage := range snapshot.Passages {
		if seen[passage.Id] || !eligible(passage, domain) {
			continue
		}
		score := lexicalOverlap(passage, distinct, total)
		if score == 0 {
			continue
		}
		candidates = append(candidates, &core.Candidate{
			Passage:      passage,
			VectorScore:  float64(storage.Dot(queryVector, passage.Vector)),
			LexicalScore: score,
		})
	}
	return candidates
}

func distinctTokens(tokens []string) map[string]bool {
	distinct := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		distinct[token] = true
	}
	return distinct
}

func lexicalOverlap(passage *core.Passage, distinct map[string]bool, total float64) float64 {
	titleSet := query.TokenSet(passage.Title)
	bodySet := query.TokenSet(passage.Text)

	var titleHits, bodyHits float64
	for token := range distinct {
		if titleSet[token] {
			titleHits++
		}
		if bodySet[token] {
			bodyHits++
		}
	}

	return titleOverlapWeight*(titleHits/total) + bodyOverlapWeight*(bodyHits/total)
}

// normalizeScores min-max normalizes vector and lexical scores across the
// candidate set so the weighted combination is scale-free. When all values
// of a signal are equal, the signal normalizes to 1.0 if positive and 0.0
// otherwise.
func normalizeScores(candidates []*core.Candidate) {
	if len(candidates) == 0 {
		return
	}

	minVec, maxVec := candidates[0].VectorScore, candidates[0].VectorScore
	minLex, maxLex := candidates[0].LexicalScore, candidates[0].LexicalScore
	for _, candidate := range candidates[1:] {
		minVec = min(minVec, candidate.VectorScore)
		maxVec = max(maxVec, candidate.VectorScore)
		minLex = min(minLex, candidate.LexicalScore)
		maxLex = max(maxLex, candidate.LexicalScore)
	}

	for _, candidate := range candidates {
		candidate.NormVector = minMax(candidate.VectorScore, minVec, maxVec)
		candidate.NormLexical = minMax(candidate.LexicalScore, minLex, maxLex)
	}
}

func minMax(value, lo, hi float64) float64 {
	if hi == lo {
		if hi > 0 {
			return 1.0
		}
		return 0.0
	}
	return (value - lo) / (hi - lo)
}

// combineScores applies the weighted combination and domain re-weighting.
func (s *Searcher) combineScores(candidates []*core.Candidate, domain string, pubRefs []string) {
	for _, candidate := range candidates {
		passage := candidate.Passage
		score := s.vectorWeight*candidate.NormVector + s.lexicalWeight*candidate.NormLexical

		if passage.Pub != "" || lexicon.IsDoctrine(passage.Title) {
			score += doctrineBonus
		}
		if matchesAnyPattern(passage.Title, toolkitTitlePatterns) {
			score -= toolkitPenalty
		}
		if domain != lexicon.GeneralDomain && passage.Domain == domain {
			score += domainMatchBonus
		}
		if titleCitesPub(passage.Title, pubRefs) {
			score += pubInTitleBonus
		}

		candidate.Combined = score
		candidate.Final = score
	}
}

// titleCitesPub reports whether the title cites one of the publication
// references from the question. Titles are canonicalized first so "DAFI
// 36-3003" matches "dafi36-3003" in the query and vice versa.
func titleCitesPub(title string, pubRefs []string) bool {
	if len(pubRefs) == 0 {
		return false
	}
	canonTitle := strings.ToUpper(lexicon.Canonicalize(title))
	for _, ref := range pubRefs {
		if strings.Contains(canonTitle, strings.ToUpper(ref)) {
			return true
		}
	}
	return false
}

func matchesAnyPattern(title string, patterns []string) bool {
	lowered := strings.ToLower(title)
	for _, pattern := range patterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// sortCandidates orders by final score descending with passage ID as a
// tie-break, so identical inputs always produce identical rankings.
func sortCandidates(candidates []*core.Candidate) {
	slices.SortFunc(candidates, func(a, b *core.Candidate) int {
		if a.Final > b.Final {
			return -1
		}
		if a.Final < b.Final {
			return 1
		}
		if a.Passage.Id < b.Passage.Id {
			return -1
		}
		if a.Passage.Id > b.Passage.Id {
			return 1
		}
		return 0
	})
}
