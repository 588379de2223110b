package search

import (
	"github.com/poiesic/doctrina/core"
)

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during
// retrieval.
type RetrievalMonitor interface {
	Start(question string)
	AfterNormalize(normalized string, domain string, pubRefs []string)
	AfterVectorSearch(matchCount int)
	AfterFilter(candidates []*core.Candidate)
	AfterScoring(candidates []*core.Candidate)
	AfterRerank(candidates []*core.Candidate)
	EvidenceSkipped(title string)
	Finish(evidence []core.Evidence, trace *core.RetrievalTrace)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                   {}
func (n *noopMonitor) AfterNormalize(_ string, _ string, _ []string)    {}
func (n *noopMonitor) AfterVectorSearch(_ int)                          {}
func (n *noopMonitor) AfterFilter(_ []*core.Candidate)                  {}
func (n *noopMonitor) AfterScoring(_ []*core.Candidate)                 {}
func (n *noopMonitor) AfterRerank(_ []*core.Candidate)                  {}
func (n *noopMonitor) EvidenceSkipped(_ string)                         {}
func (n *noopMonitor) Finish(_ []core.Evidence, _ *core.RetrievalTrace) {}
