package pathment

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

// candidateMatcher recognizes one kind of candidate at the start of the
// remaining text. Patterns are anchored with "^".
type candidateMatcher struct {
	name    string
	pattern *regexp.Regexp
	// bounded matchers must not be followed directly by a word character,
	// which RE2 cannot express as a lookahead.
	bounded bool
	// afterPlus matchers may also start right after a '+', as in
	// "git+https://".
	afterPlus bool
}

// candidateMatchers in priority order. The first matcher that succeeds at a
// position wins.
var candidateMatchers = []candidateMatcher{
	{
		name:      "scheme-url",
		pattern:   regexp.MustCompile("^(?i:(?:https?|ftp|ssh|telnet)://|file:)[^\\s<>\"'`]+"),
		afterPlus: true,
	},
	{
		name:    "email",
		pattern: regexp.MustCompile(`^(?i:mailto:)?[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}(?:\?[^\s<>"']*)?`),
	},
	{
		name:    "windows-unc-path",
		pattern: regexp.MustCompile(`^(?:[A-Za-z]:[\\/]|\\\\[^\s\\/<>"|*?]+\\)[^\s<>"|*?]*`),
	},
	{
		// Consumes URLs with schemes the classifier does not know so that no
		// other matcher restarts inside them.
		name:    "other-scheme-url",
		pattern: regexp.MustCompile("^[A-Za-z][A-Za-z0-9.-]*://[^\\s<>\"'`]+"),
	},
	{
		name:    "www",
		pattern: regexp.MustCompile(`^(?i:www\.)[^\s<>"']+`),
	},
	{
		name:    "unix-path",
		pattern: regexp.MustCompile(`^/(?:[^\s/<>"'|*?]+/)*[^\s/<>"'|*?]+\.[A-Za-z0-9]{1,10}`),
		bounded: true,
	},
	{
		name:    "relative-path",
		pattern: regexp.MustCompile(`^\.{1,2}[\\/][^\s<>"'|*?]+`),
	},
	{
		name:    "ip-localhost",
		pattern: regexp.MustCompile(`^(?:\d{1,3}(?:\.\d{1,3}){3}|(?i:localhost))(?::\d{1,5})?`),
		bounded: true,
	},
	{
		name: "hostname",
		pattern: regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)+` +
			`(?::\d{1,5})?(?:/[^\s<>"']*)?`),
		bounded: true,
	},
}

// Tokenizer scans a text block for candidate substrings.
type Tokenizer struct {
	matchers []candidateMatcher
}

// NewTokenizer returns a Tokenizer using the built-in matcher list.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{matchers: candidateMatchers}
}

// Candidates yields candidate substrings in order of appearance. Matching only
// starts at word boundaries and resumes after the end of each match.
func (t *Tokenizer) Candidates(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		pos := 0
		for pos < len(text) {
			start, afterPlus := isCandidateStart(text, pos), pos > 0 && text[pos-1] == '+'
			if start || afterPlus {
				if n := t.matchAt(text, pos, start); n > 0 {
					if !yield(text[pos : pos+n]) {
						return
					}
					pos += n
					continue
				}
			}
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
		}
	}
}

// Tokenize collects Candidates into a slice.
func (t *Tokenizer) Tokenize(text string) []string {
	var out []string
	for candidate := range t.Candidates(text) {
		out = append(out, candidate)
	}
	return out
}

// matchAt returns the length of the first match at pos. When pos is not a
// candidate start only afterPlus matchers are tried.
func (t *Tokenizer) matchAt(text string, pos int, start bool) int {
	rest := text[pos:]
	for _, m := range t.matchers {
		if !start && !m.afterPlus {
			continue
		}
		loc := m.pattern.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		if m.bounded && !isCandidateEnd(rest, loc[1]) {
			continue
		}
		return loc[1]
	}
	return 0
}

func isWordByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// isCandidateStart reports whether a candidate may begin at pos. Characters
// that join into addresses (letters, digits and ._-@%+) before pos mean pos is
// inside a larger token. A slash after ':' or '/' continues a "scheme://"
// prefix.
func isCandidateStart(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	prev := text[pos-1]
	if prev >= utf8.RuneSelf {
		return true
	}
	if text[pos] == '/' && (prev == ':' || prev == '/') {
		return false
	}
	return !isWordByte(prev) && !strings.ContainsRune("._-@%+", rune(prev))
}

// isCandidateEnd reports whether a match ending at end is not cut out of a
// longer word, e.g. "1.2.3.4" inside "1.2.3.4.5".
func isCandidateEnd(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	next := s[end]
	if isWordByte(next) || next == '_' || next == '@' {
		return false
	}
	if (next == '.' || next == '-') && end+1 < len(s) && isWordByte(s[end+1]) {
		return false
	}
	return true
}
