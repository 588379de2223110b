package lexicon

// Acronyms maps lowercase tokens to their full expansion. Expansions are
// appended to normalized queries so both the abbreviation and the spelled-out
// phrase are searchable.
type Acronyms map[string]string

// DefaultAcronyms returns the acronym table tuned for the medical service
// corps policy corpus.
func DefaultAcronyms() Acronyms {
	return Acronyms{
		"afi":    "air force instruction",
		"afman":  "air force manual",
		"dafi":   "department of the air force instruction",
		"dafman": "department of the air force manual",
		"dha":    "defense health agency",
		"jtr":    "joint travel regulations",
		"msc":    "medical service corps",
		"mtf":    "military treatment facility",
		"opr":    "officer performance report",
		"pcs":    "permanent change of station",
		"tdy":    "temporary duty",
		"utc":    "unit type code",
	}
}

// Expand returns the expansion for a lowercase token, or "" when the token is
// not a known acronym.
func (a Acronyms) Expand(token string) string {
	return a[token]
}
