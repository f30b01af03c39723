package pathment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sentenceBoundaryRegex = regexp.MustCompile(`[.,;]\s`)

const trailingPunctuation = `.,;:!?'">`

var closingBrackets = map[rune]rune{')': '(', ']': '[', '}': '{'}

// CleanCandidate trims whitespace, cuts the candidate at the first sentence
// boundary and strips trailing punctuation. Closing brackets are only removed
// when they have no opening partner. Applying it twice changes nothing.
func CleanCandidate(raw string) string {
	s := strings.TrimSpace(raw)
	if loc := sentenceBoundaryRegex.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}

	for s != "" {
		r, size := utf8.DecodeLastRuneInString(s)
		switch {
		case unicode.IsSpace(r) || strings.ContainsRune(trailingPunctuation, r):
			s = s[:len(s)-size]
		case closingBrackets[r] != 0 && strings.Count(s, string(closingBrackets[r])) < strings.Count(s, string(r)):
			s = s[:len(s)-size]
		default:
			return s
		}
	}
	return s
}
