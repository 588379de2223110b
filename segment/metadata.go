package segment

import (
	"regexp"
	"strings"

	"github.com/poiesic/doctrina/lexicon"
)

// Document type tags inferred from titles.
const (
	DocTypeGuide       = "guide"
	DocTypePolicy      = "policy"
	DocTypeReference   = "reference"
	DocTypeFAQ         = "faq"
	DocTypePublication = "publication"
)

// dateScanLimit bounds how far into the body text the effective-date scan
// looks. Publication dates appear on the cover page.
const dateScanLimit = 4000

// Metadata holds the fields inferred for a passage from its title, source
// identifier, and text.
type Metadata struct {
	Pub       string // Publication code, e.g. "AFI 44-102"; "" when none found
	Domain    string // Domain tag; lexicon.GeneralDomain when nothing matched
	DocType   string // guide | policy | reference | faq | publication
	Effective string // First date-like substring found; "" when none
}

var (
	longDatePattern = regexp.MustCompile(
		`(?i)\b\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Extractor infers passage metadata. The zero value is not usable; construct
// with NewExtractor.
type Extractor struct {
	lexicon lexicon.Lexicon
}

// NewExtractor creates a metadata extractor using the given domain lexicon.
// A nil lexicon falls back to lexicon.Default().
func NewExtractor(lex lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{lexicon: lex}
}

// Extract infers metadata from a document's title, source identifier, and
// full text. It is a pure function of its inputs: same inputs always produce
// the same outputs, with no external calls.
func (e *Extractor) Extract(title, sourceID, text string) Metadata {
	return Metadata{
		Pub:       lexicon.FindPub(title, sourceID),
		Domain:    e.lexicon.Match(title + " " + sourceID),
		DocType:   inferDocType(title),
		Effective: findEffectiveDate(title, text),
	}
}

// inferDocType classifies a document from title keywords. Anything that is
// not recognizably a guide, policy, reference, or FAQ is a publication.
func inferDocType(title string) string {
	lowered := strings.ToLower(title)
	switch {
	case strings.Contains(lowered, "guide"):
		return DocTypeGuide
	case strings.Contains(lowered, "policy"):
		return DocTypePolicy
	case strings.Contains(lowered, "reference"):
		return DocTypeReference
	case strings.Contains(lowered, "faq"):
		return DocTypeFAQ
	default:
		return DocTypePublication
	}
}

// findEffectiveDate returns the first date-like substring in the title, then
// in the leading portion of the text. "12 July 2021" style dates win over
// bare years.
func findEffectiveDate(title, text string) string {
	if len(text) > dateScanLimit {
		text = text[:dateScanLimit]
	}
	for _, field := range []string{title, text} {
		if field == "" {
			continue
		}
		if m := longDatePattern.FindString(field); m != "" {
			return m
		}
		if m := yearPattern.FindString(field); m != "" {
			return m
		}
	}
	return ""
}
