// Package terminology extracts vocabulary candidates from chapter text.
// Candidates are words a young reader is likely to stumble on: long,
// uncommon, and not an acronym. The caller pairs them with definitions
// to build a chapter's word guide.
package terminology

import (
	"regexp"
	"sort"
	"strings"
)

// MaxCandidates caps how many words Candidates returns per text.
const MaxCandidates = 5

// minWordLength filters out short words that rarely need a definition.
const minWordLength = 6

var wordPattern = regexp.MustCompile(`\b[A-Za-z]{5,}\b`)

// commonWords are frequent English words excluded from candidacy even
// when long enough.
var commonWords = map[string]struct{}{
	"there": {}, "their": {}, "would": {}, "could": {}, "should": {},
	"about": {}, "which": {}, "these": {}, "those": {}, "were": {},
	"have": {}, "that": {}, "what": {}, "when": {}, "where": {},
	"while": {}, "from": {}, "been": {}, "being": {}, "other": {},
	"another": {}, "every": {}, "everything": {}, "something": {},
	"anything": {}, "nothing": {}, "through": {}, "although": {},
	"though": {}, "without": {}, "within": {},
}

// Candidates returns up to MaxCandidates vocabulary words from text,
// longest first with reverse-alphabetical tie-breaking. Duplicate words
// (case-insensitive) keep their first occurrence's casing. All-uppercase
// words are skipped as acronyms.
func Candidates(text string) []string {
	matches := wordPattern.FindAllString(text, -1)

	seen := make(map[string]struct{})
	var words []string
	for _, w := range matches {
		if len(w) < minWordLength {
			continue
		}
		if w == strings.ToUpper(w) {
			continue // acronym
		}
		lower := strings.ToLower(w)
		if _, common := commonWords[lower]; common {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		words = append(words, w)
	}

	// Longest first; ties break reverse-alphabetically for stable output
	sort.SliceStable(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return strings.ToLower(words[i]) > strings.ToLower(words[j])
	})

	if len(words) > MaxCandidates {
		words = words[:MaxCandidates]
	}
	return words
}
