package pathment

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	driveLetterRegex    = regexp.MustCompile(`^[A-Za-z]:(?:[\\/]|$)`)
	uncPrefixRegex      = regexp.MustCompile(`^(?:\\\\|//)`)
	relativePrefixRegex = regexp.MustCompile(`^\.{1,2}[\\/]`)
)

// DetectProtocol classifies a cleaned candidate into a transfer protocol. It is
// the first dispatch key of the classifier and never fails.
func DetectProtocol(text string) TransferProtocol {
	s := strings.TrimSpace(text)
	if s == "" {
		return ProtocolNone
	}
	lower := strings.ToLower(s)

	if i := strings.Index(lower, "://"); i > 0 {
		if p, ok := webProtocolForScheme(lower[:i]); ok {
			return p
		}
	}

	switch {
	case strings.HasPrefix(lower, "mailto:"):
		return ProtocolMailto
	case strings.HasPrefix(lower, "file:"):
		if isStrictFileURI(s) {
			return ProtocolFile
		}
		return ProtocolMalformedFile
	case driveLetterRegex.MatchString(s):
		return ProtocolLocalFile
	case uncPrefixRegex.MatchString(s):
		return ProtocolUNC
	case strings.HasPrefix(s, "/"):
		return ProtocolLocalFile
	case relativePrefixRegex.MatchString(s):
		return ProtocolRelative
	}
	return ProtocolNone
}

// isStrictFileURI reports whether s is a file URI that a URI parser accepts
// as is: "file://" followed by a path without backslashes or blanks.
func isStrictFileURI(s string) bool {
	if len(s) < len("file://") || !strings.EqualFold(s[:len("file://")], "file://") {
		return false
	}
	rest := s[len("file://"):]
	if rest == "" || strings.ContainsAny(rest, "\\ \t|<>\"") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "file") && (u.Path != "" || u.Host != "")
}
