package lexicon

import (
	"regexp"
	"strings"
)

// PubPattern matches policy publication references such as "AFI 44-102",
// "DAFMAN 41-210" or "DHA-PI 6025.34": a known publication prefix followed by
// a dash-separated number, optionally dotted. The prefix list is corpus
// tuning; deployments covering other publication families can swap the
// pattern as long as it keeps the (prefix, number) submatch shape.
var PubPattern = regexp.MustCompile(
	`(?i)\b(AFI|AFMAN|AFPD|DAFI|DAFMAN|DAFPD|DHA-PI|DHA-AI|DHAI|DHA|DODI|DODD|JTR)[\s-]*(\d{1,2}-\d{2,4}(?:\.\d+)?|\d{4}\.\d+)\b`)

// FindPub returns the first publication reference found across the given
// fields, canonicalized, or "" when none is present. Fields are searched in
// order, so callers pass the most authoritative field (title) first.
func FindPub(fields ...string) string {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if m := PubPattern.FindStringSubmatch(field); m != nil {
			return canonical(m[1], m[2])
		}
	}
	return ""
}

// FindAllPubs returns every distinct publication reference in text, in order
// of first appearance, canonicalized.
func FindAllPubs(text string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, m := range PubPattern.FindAllStringSubmatch(text, -1) {
		ref := canonical(m[1], m[2])
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// Canonicalize rewrites every publication reference in text into the
// canonical "PREFIX NN-NNNN[.N]" form, so "afi44-102" and "AFI  44-102" both
// become "AFI 44-102".
func Canonicalize(text string) string {
	return PubPattern.ReplaceAllStringFunc(text, func(match string) string {
		m := PubPattern.FindStringSubmatch(match)
		return canonical(m[1], m[2])
	})
}

// IsDoctrine reports whether any of the given fields carries a publication
// reference. Doctrine passages are never filtered out by domain mismatch.
func IsDoctrine(fields ...string) bool {
	for _, field := range fields {
		if field != "" && PubPattern.MatchString(field) {
			return true
		}
	}
	return false
}

// canonical joins a prefix and number into the canonical form: the prefix
// uppercased, exactly one space, whitespace collapsed.
func canonical(prefix, number string) string {
	return strings.ToUpper(strings.TrimSpace(prefix)) + " " + strings.TrimSpace(number)
}
