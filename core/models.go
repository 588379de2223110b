package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Passage IDs are content-based so re-ingestion is idempotent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PassageID derives the stable identifier for a passage from its source
// identifier, its ordinal position within the source, and its text.
func PassageID(sourceID string, ordinal int, text string) ID {
	return IDFromContent(fmt.Sprintf("%s:%d:%s", sourceID, ordinal, text))
}

// SourceKind identifies where a document came from.
type SourceKind int

const (
	// SourceKindWeb represents a document fetched from the web.
	SourceKindWeb SourceKind = iota + 1
	// SourceKindFile represents a document loaded from a local file.
	SourceKindFile
)

// String returns the wire name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceKindWeb:
		return "web"
	case SourceKindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Passage is the atomic unit of indexing and retrieval: a contiguous,
// heading-scoped slice of a source document plus inferred metadata.
//
// Passages are created once per ingestion run and are immutable thereafter;
// the next full re-ingestion supersedes them wholesale.
type Passage struct {
	Id         ID
	SourceID   string
	SourceKind SourceKind
	Title      string
	Text       string
	Section    string // Heading path, e.g. "3. Assignments"
	Subsection string // Finer numeric heading, e.g. "3.2.1"
	Page       int    // 1-based page number; 0 means no page locator
	URL        string
	LocalPath  string
	Pub        string // Inferred publication code, e.g. "AFI 44-102"
	Domain     string // Inferred domain tag; "general" when nothing matched
	DocType    string // guide | policy | reference | faq | publication
	Effective  string // Inferred effective date, verbatim as found
	Ordinal    int    // Position within the source, monotonic per source
	Vector     []float32
	InsertedAt time.Time
}

// HasLocator reports whether the passage carries a precise citation locator
// (page number, section, or subsection).
func (p *Passage) HasLocator() bool {
	if p.Page > 0 {
		return true
	}
	return p.Section != "" || p.Subsection != ""
}

// Candidate wraps a passage under consideration for one query, carrying
// transient scoring state. Candidates exist only for the duration of one
// retrieval call and are never persisted.
type Candidate struct {
	Passage      *Passage
	VectorScore  float64 // Raw inner-product similarity
	LexicalScore float64 // Raw token-overlap score
	NormVector   float64 // Min-max normalized across the candidate set
	NormLexical  float64
	Combined     float64 // Weighted combination plus re-weighting bonuses
	Final        float64 // Score after the optional rerank pass
}

// Evidence is the public output unit of retrieval. Identifiers ("E1", "E2",
// ...) are stable only within one response.
type Evidence struct {
	EvidID     string
	SourceID   string
	Title      string
	Excerpt    string
	URL        string
	LocalPath  string
	Page       int // 1-based; 0 means no page locator
	Section    string
	Subsection string
	Pub        string
	Domain     string
	DocType    string
	Score      float64
}

// HasLocator reports whether the evidence item carries a precise citation
// locator.
func (e *Evidence) HasLocator() bool {
	if e.Page > 0 {
		return true
	}
	return e.Section != "" || e.Subsection != ""
}

// TraceItem records one selected evidence item with its component scores.
type TraceItem struct {
	EvidID       string
	PassageID    ID
	Title        string
	VectorScore  float64
	LexicalScore float64
	Combined     float64
	Final        float64
}

// RetrievalTrace is a write-once diagnostic record of one query, used only
// for observability.
type RetrievalTrace struct {
	Id              ID
	Query           string
	NormalizedQuery string
	Domain          string
	TopK            int
	CandidateCount  int
	VectorWeight    float64
	LexicalWeight   float64
	RerankMode      string
	Selected        []TraceItem
	CreatedAt       time.Time
}

// IndexManifest describes one persisted generation of the vector index.
type IndexManifest struct {
	Generation     uint64
	Count          int
	Dim            int
	EmbeddingModel string
	BuiltAt        time.Time
}
