package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/doctrina/ai"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/query"
	"github.com/poiesic/doctrina/storage"
)

// Scoring and assembly defaults, tuned against the policy corpus.
const (
	DefaultTopK          = 5
	DefaultVectorWeight  = 0.75
	DefaultLexicalWeight = 0.25
	DefaultRerankDepth   = 12
	DefaultMinTopScore   = 0.2
	DefaultExcerptLength = 700

	// Vector search always over-fetches so lexical scoring and domain
	// filtering have enough candidates to work with.
	minOverfetch   = 40
	overfetchRatio = 8
)

// SnapshotSource supplies the current index snapshot for each query.
// Implementations return nil when no index has been built.
type SnapshotSource interface {
	Current() *storage.Snapshot
}

// Result is the outcome of one retrieval call.
type Result struct {
	Evidence []core.Evidence
	Trace    *core.RetrievalTrace
}

// Searcher ranks indexed passages against natural-language questions using
// hybrid vector and lexical scoring with domain-aware re-weighting.
type Searcher struct {
	source         SnapshotSource
	embedder       ai.Embedder
	completer      ai.Completer
	normalizer     *query.Normalizer
	vectorWeight   float64
	lexicalWeight  float64
	rerankMode     RerankMode
	rerankDepth    int
	minTopScore    float64
	excerptLength  int
	denyPatterns   []string
	allowedSources []string
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithWeights sets the vector and lexical score weights. The weights are
// renormalized to sum to one.
func WithWeights(vector, lexical float64) Option {
	return func(s *Searcher) error {
		if vector < 0 || lexical < 0 || vector+lexical == 0 {
			return ErrInvalidWeights
		}
		total := vector + lexical
		s.vectorWeight = vector / total
		s.lexicalWeight = lexical / total
		return nil
	}
}

// WithRerankMode selects the rerank pass: RerankOff, RerankHeuristic, or
// RerankLLM. Default is RerankHeuristic.
func WithRerankMode(mode RerankMode) Option {
	return func(s *Searcher) error {
		switch mode {
		case RerankOff, RerankHeuristic, RerankLLM:
			s.rerankMode = mode
			return nil
		default:
			return fmt.Errorf("%w: %q", ErrInvalidRerankMode, mode)
		}
	}
}

// WithRerankDepth sets how many top candidates the rerank pass considers.
func WithRerankDepth(depth int) Option {
	return func(s *Searcher) error {
		if depth > 0 {
			s.rerankDepth = depth
		}
		return nil
	}
}

// WithCompleter sets the completion model used by RerankLLM mode.
func WithCompleter(completer ai.Completer) Option {
	return func(s *Searcher) error {
		s.completer = completer
		return nil
	}
}

// WithNormalizer overrides the query normalizer, replacing the default
// corpus tables.
func WithNormalizer(normalizer *query.Normalizer) Option {
	return func(s *Searcher) error {
		if normalizer != nil {
			s.normalizer = normalizer
		}
		return nil
	}
}

// WithMinTopScore sets the grounding threshold applied to the top evidence
// score.
func WithMinTopScore(minTopScore float64) Option {
	return func(s *Searcher) error {
		s.minTopScore = minTopScore
		return nil
	}
}

// WithExcerptLength caps evidence excerpt length in runes.
func WithExcerptLength(length int) Option {
	return func(s *Searcher) error {
		if length > 0 {
			s.excerptLength = length
		}
		return nil
	}
}

// WithDenyPatterns sets title substrings whose passages never surface as
// evidence.
func WithDenyPatterns(patterns []string) Option {
	return func(s *Searcher) error {
		s.denyPatterns = patterns
		return nil
	}
}

// WithAllowedSources restricts evidence to passages from the given source
// IDs. An empty list allows every source.
func WithAllowedSources(sourceIDs []string) Option {
	return func(s *Searcher) error {
		s.allowedSources = sourceIDs
		return nil
	}
}

// NewSearcher creates a new searcher over the given snapshot source.
func NewSearcher(source SnapshotSource, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if source == nil {
		return nil, ErrSnapshotSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		source:        source,
		embedder:      embedder,
		normalizer:    query.NewNormalizer(),
		vectorWeight:  DefaultVectorWeight,
		lexicalWeight: DefaultLexicalWeight,
		rerankMode:    RerankHeuristic,
		rerankDepth:   DefaultRerankDepth,
		minTopScore:   DefaultMinTopScore,
		excerptLength: DefaultExcerptLength,
		denyPatterns:  DefaultDenyPatterns(),
		logger:        slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.rerankMode == RerankLLM && s.completer == nil {
		return nil, ErrCompleterRequired
	}

	return s, nil
}

// Retrieve answers a question with up to topK evidence items, ranked by the
// hybrid score. A non-positive topK uses DefaultTopK.
func (s *Searcher) Retrieve(ctx context.Context, question string, topK int) (*Result, error) {
	return s.RetrieveWithMonitor(ctx, question, topK, nil)
}

// RetrieveWithMonitor retrieves with monitoring. The monitor receives
// callbacks at each stage of the retrieval process.
func (s *Searcher) RetrieveWithMonitor(ctx context.Context, question string, topK int, monitor RetrievalMonitor) (*Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	monitor.Start(question)

	normalized := s.normalizer.Normalize(question)
	domain := s.normalizer.Route(question)
	monitor.AfterNormalize(normalized.Text, domain, normalized.PubRefs)

	snapshot := s.source.Current()
	if snapshot.Len() == 0 {
		return nil, storage.ErrIndexNotBuilt
	}

	queryVector, err := s.embedder.EmbedText(ctx, normalized.Text)
	if err != nil {
		s.logger.Error("query embedding failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrQueryEmbedding, err)
	}
	storage.Normalize(queryVector)

	fetch := max(topK*overfetchRatio, minOverfetch)
	matches := snapshot.Search(queryVector, fetch)
	monitor.AfterVectorSearch(len(matches))

	candidates := filterCandidates(matches, domain)
	scoreLexical(candidates, normalized.Tokens)
	// The lexical pass covers the whole index, not just the vector hits, so
	// a passage with strong token overlap always reaches scoring.
	candidates = mergeLexicalMatches(candidates, snapshot, queryVector, normalized.Tokens, domain)
	monitor.AfterFilter(candidates)

	normalizeScores(candidates)
	s.combineScores(candidates, domain, normalized.PubRefs)
	sortCandidates(candidates)
	monitor.AfterScoring(candidates)

	candidates = s.rerank(ctx, question, candidates)
	monitor.AfterRerank(candidates)

	evidence, chosen := assembleEvidence(candidates, topK, s.excerptLength, s.denyPatterns, s.allowedSources, monitor)

	trace := &core.RetrievalTrace{
		Query:           question,
		NormalizedQuery: normalized.Text,
		Domain:          domain,
		TopK:            topK,
		CandidateCount:  len(candidates),
		VectorWeight:    s.vectorWeight,
		LexicalWeight:   s.lexicalWeight,
		RerankMode:      string(s.rerankMode),
		Selected:        traceItems(evidence, chosen),
		CreatedAt:       time.Now().UTC(),
	}

	monitor.Finish(evidence, trace)

	s.logger.Debug("retrieval finished",
		"domain", domain,
		"candidates", len(candidates),
		"evidence", len(evidence))

	return &Result{Evidence: evidence, Trace: trace}, nil
}

// CheckGrounding reports whether an answer is adequately supported by the
// evidence it was generated from, using the searcher's score threshold.
func (s *Searcher) CheckGrounding(answer string, evidence []core.Evidence) bool {
	return IsGrounded(answer, evidence, s.minTopScore)
}

func traceItems(evidence []core.Evidence, chosen []*core.Candidate) []core.TraceItem {
	items := make([]core.TraceItem, 0, len(evidence))
	for i, ev := range evidence {
		candidate := chosen[i]
		items = append(items, core.TraceItem{
			EvidID:       ev.EvidID,
			PassageID:    candidate.Passage.Id,
			Title:        candidate.Passage.Title,
			VectorScore:  candidate.VectorScore,
			LexicalScore: candidate.LexicalScore,
			Combined:     candidate.Combined,
			Final:        candidate.Final,
		})
	}
	return items
}
