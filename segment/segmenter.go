package segment

import (
	"regexp"
	"strings"
)

// Default chunking parameters, in characters.
const (
	DefaultChunkSize = 1400
	DefaultOverlap   = 200
)

// Segment is one heading-scoped slice of a source document. Section and
// Subsection carry the closest enclosing headings, or "" when the document
// had no recognizable structure.
type Segment struct {
	Text       string
	Section    string
	Subsection string
}

var (
	// Numbered outline headings up to 5 levels: "3. Assignments", "2.1 Scope".
	sectionOutlinePattern = regexp.MustCompile(`^\d{1,2}(\.\d{1,3}){0,4}[.)]?\s+\S`)

	// Pure numeric outline with 2+ levels marks a subsection: "3.2.1".
	subsectionPattern = regexp.MustCompile(`^\d{1,2}(\.\d{1,3}){1,4}[.)]?(\s+|$)`)

	// Lines starting with a structural keyword.
	sectionKeywordPattern = regexp.MustCompile(`(?i)^(section|chapter|attachment|part)\b`)
)

// Split segments raw document text into heading-scoped, size-bounded
// segments. Lines accumulate into the current segment until the next heading
// boundary; segments longer than chunkSize are sliced into overlapping
// windows so no position in the source text is skipped.
//
// Split is deterministic: the same input always yields the same ordered
// segment list. Empty or whitespace-only text yields no segments.
//
// The overlap must be smaller than the chunk size; out-of-range parameters
// are clamped to sane values rather than rejected.
func Split(text string, chunkSize, overlap int) []Segment {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r", "\n"))
	if text == "" {
		return nil
	}

	var (
		segments   []Segment
		buf        []string
		section    string
		subsection string
	)

	flush := func() {
		joined := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		if joined == "" {
			return
		}
		for _, window := range slice(joined, chunkSize, overlap) {
			segments = append(segments, Segment{
				Text:       window,
				Section:    section,
				Subsection: subsection,
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case isSubsectionHeading(trimmed):
			flush()
			subsection = trimmed
		case isSectionHeading(trimmed):
			flush()
			section = trimmed
			subsection = ""
		}

		buf = append(buf, line)
	}
	flush()

	return segments
}

// slice cuts text into overlapping windows. Window i+1 starts at
// min(end_i - overlap, len(text)), which bounds duplication while
// guaranteeing no data loss. Text within the chunk size is returned whole.
// Offsets are rune positions, so a window never cuts a multi-byte rune.
func slice(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var windows []string
	start := 0
	for start < len(runes) {
		end := min(start+chunkSize, len(runes))
		windows = append(windows, string(runes[start:end]))
		if end >= len(runes) {
			break
		}
		next := max(end-overlap, 0)
		if next <= start {
			// Degenerate parameters; force progress.
			next = start + 1
		}
		start = next
	}
	return windows
}

// isSectionHeading reports whether a line opens a new section: a numbered
// outline entry, a short all-caps line, or a structural keyword line.
func isSectionHeading(line string) bool {
	if line == "" {
		return false
	}
	if sectionOutlinePattern.MatchString(line) {
		return true
	}
	if sectionKeywordPattern.MatchString(line) {
		return true
	}
	return isAllCapsHeading(line)
}

// isSubsectionHeading reports whether a line opens a finer subsection: a pure
// numeric outline entry with at least two levels.
func isSubsectionHeading(line string) bool {
	return subsectionPattern.MatchString(line)
}

// isAllCapsHeading reports whether a line looks like an all-caps heading:
// short, containing letters, and none of them lowercase.
func isAllCapsHeading(line string) bool {
	if len(line) < 3 || len(line) > 60 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
