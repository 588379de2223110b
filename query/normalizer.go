package query

import (
	"strings"

	"github.com/poiesic/doctrina/lexicon"
)

// Normalized is the canonical form of a question, carrying everything the
// retrieval layers need: the rewritten text, the searchable token list, and
// any publication references the question cited.
type Normalized struct {
	Text    string   // Question with pub references rewritten canonically
	Tokens  []string // Lowercase tokens plus acronym expansions
	PubRefs []string // Canonical publication references, e.g. "AFI 44-102"
}

// Normalizer canonicalizes questions and routes them to a coarse domain.
type Normalizer struct {
	acronyms lexicon.Acronyms
	lexicon  lexicon.Lexicon
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithAcronyms overrides the acronym expansion table.
func WithAcronyms(acronyms lexicon.Acronyms) Option {
	return func(n *Normalizer) {
		if acronyms != nil {
			n.acronyms = acronyms
		}
	}
}

// WithLexicon overrides the domain keyword table.
func WithLexicon(lex lexicon.Lexicon) Option {
	return func(n *Normalizer) {
		if lex != nil {
			n.lexicon = lex
		}
	}
}

// NewNormalizer creates a Normalizer with the default corpus tables.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		acronyms: lexicon.DefaultAcronyms(),
		lexicon:  lexicon.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize rewrites recognized publication references into canonical form,
// tokenizes the question, and appends the expansion of any token found in
// the acronym table so both the abbreviation and the phrase are searchable.
//
// An empty or punctuation-only question yields zero tokens; that is a valid
// degenerate query, not an error.
func (n *Normalizer) Normalize(question string) Normalized {
	canon := lexicon.Canonicalize(question)
	tokens := Tokenize(canon)

	for _, token := range tokens {
		if expansion := n.acronyms.Expand(token); expansion != "" {
			tokens = append(tokens, Tokenize(expansion)...)
		}
	}

	return Normalized{
		Text:    canon,
		Tokens:  tokens,
		PubRefs: lexicon.FindAllPubs(canon),
	}
}

// Route assigns the question a coarse domain by scanning the raw question
// text against the domain keyword lexicon. It returns the first matching
// domain, or lexicon.GeneralDomain, which matches everything downstream.
// Routing is a filter and boost signal only, never a hard gate.
func (n *Normalizer) Route(question string) string {
	return n.lexicon.Match(question)
}

// Tokenize splits text into lowercase alphanumeric-hyphen tokens.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var tokens []string
	var b strings.Builder
	for _, r := range lowered {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

// TokenSet returns the distinct tokens of text as a set.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range Tokenize(text) {
		set[token] = true
	}
	return set
}
