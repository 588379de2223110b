package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/doctrina/core"
)

// RerankMode selects the optional second-pass reordering of top candidates.
type RerankMode string

const (
	// RerankOff leaves the combined-score ordering untouched.
	RerankOff RerankMode = "off"

	// RerankHeuristic nudges candidates with precise citation locators
	// ahead of locator-less ones within the rerank window.
	RerankHeuristic RerankMode = "heuristic"

	// RerankLLM asks a completion model to reorder the rerank window.
	// Failures fall back to the incoming order.
	RerankLLM RerankMode = "llm"
)

// Boost applied to locatable candidates in heuristic mode. Small enough
// that it only reorders near-ties.
const locatorBoost = 0.02

// rerank applies the configured rerank pass to the top of the candidate
// list. Candidates beyond the rerank depth keep their positions.
func (s *Searcher) rerank(ctx context.Context, question string, candidates []*core.Candidate) []*core.Candidate {
	if len(candidates) == 0 || s.rerankMode == RerankOff {
		return candidates
	}

	depth := min(s.rerankDepth, len(candidates))
	window := candidates[:depth]

	switch s.rerankMode {
	case RerankHeuristic:
		heuristicRerank(window)
	case RerankLLM:
		s.llmRerank(ctx, question, window)
	}

	return candidates
}

func heuristicRerank(window []*core.Candidate) {
	for _, candidate := range window {
		if candidate.Passage.HasLocator() {
			candidate.Final += locatorBoost
		}
	}
	sortCandidates(window)
}

// llmRerank asks the completer to reorder the window by relevance. The
// model returns comma-separated 1-based positions; anything it omits or
// garbles keeps the combined-score order. Rerank never fails a retrieval,
// and it only reorders: candidate scores stay untouched so the grounding
// threshold still measures real retrieval strength.
func (s *Searcher) llmRerank(ctx context.Context, question string, window []*core.Candidate) {
	prompt := buildRerankPrompt(question, window)

	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("llm rerank failed, keeping score order", "err", err)
		return
	}

	order := parseIndexList(response, len(window))
	if len(order) == 0 {
		s.logger.Warn("llm rerank returned no usable order, keeping score order",
			"response", response)
		return
	}

	reordered := make([]*core.Candidate, 0, len(window))
	seen := make(map[int]bool, len(window))
	for _, idx := range order {
		reordered = append(reordered, window[idx])
		seen[idx] = true
	}
	// Append anything the model skipped, preserving score order.
	for i, candidate := range window {
		if !seen[i] {
			reordered = append(reordered, candidate)
		}
	}

	copy(window, reordered)
}

func buildRerankPrompt(question string, window []*core.Candidate) string {
	var b strings.Builder
	b.WriteString("Rank the following passages by how well they answer the question.\n")
	b.WriteString("Respond with only the passage numbers in best-first order, comma separated.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	for i, candidate := range window {
		excerpt := candidate.Passage.Text
		if len(excerpt) > 400 {
			excerpt = excerpt[:400]
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, candidate.Passage.Title, excerpt)
	}
	return b.String()
}

// parseIndexList extracts distinct 1-based positions from a model response
// and converts them to 0-based indices. Out-of-range and duplicate entries
// are dropped rather than treated as errors.
func parseIndexList(response string, n int) []int {
	var indices []int
	seen := make(map[int]bool)
	for _, field := range strings.FieldsFunc(response, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		value, err := strconv.Atoi(field)
		if err != nil || value < 1 || value > n || seen[value] {
			continue
		}
		seen[value] = true
		indices = append(indices, value-1)
	}
	return indices
}
