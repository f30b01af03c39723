package pathment

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// NoPort marks a WebURL without an explicit port.
const NoPort = -1

// WebURL is the structural decomposition of a web address. Path, query and
// fragment hold the raw, unencoded text.
type WebURL struct {
	Protocol string
	// UserInfo is the "user" or "user:password" part before the host.
	UserInfo  string
	Subdomain string
	Domain    string
	Port      int
	Path      string
	// RawPath is the path as written when its escapes differ from the default
	// encoding of Path, e.g. "/a%2Fb".
	RawPath  string
	Query    string
	Fragment string
}

// HasHost reports whether the main domain is set.
func (w WebURL) HasHost() bool {
	return strings.TrimSpace(w.Domain) != ""
}

// HasPort reports whether an explicit port was given.
func (w WebURL) HasPort() bool {
	return w.Port != NoPort
}

// Host joins subdomain and domain. The subdomain is ignored without a host.
func (w WebURL) Host() string {
	if !w.HasHost() {
		return ""
	}
	if w.Subdomain == "" {
		return w.Domain
	}
	return w.Subdomain + "." + w.Domain
}

// hostPort is Host with the explicit port appended.
func (w WebURL) hostPort(host string) string {
	if w.HasPort() {
		return host + ":" + strconv.Itoa(w.Port)
	}
	return host
}

// ToURIString renders the URL in a form suitable for opening: the host is
// converted to its ASCII (punycode) form and path, query and fragment are
// percent-encoded. Existing escapes are kept.
func (w WebURL) ToURIString() string {
	host := w.Host()
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		host = ascii
	}

	var b strings.Builder
	if w.Protocol != "" {
		b.WriteString(strings.ToLower(w.Protocol))
		b.WriteString("://")
	}
	if w.UserInfo != "" {
		b.WriteString(escapeLoose(w.UserInfo, isUserInfoByte))
		b.WriteByte('@')
	}
	b.WriteString(w.hostPort(strings.ToLower(host)))
	if w.Path != "" {
		b.WriteString((&url.URL{Path: w.Path, RawPath: w.RawPath}).EscapedPath())
	}
	if w.Query != "" {
		b.WriteByte('?')
		b.WriteString(escapeLoose(w.Query, isQueryByte))
	}
	if w.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(escapeLoose(w.Fragment, isQueryByte))
	}
	return b.String()
}

// DisplayString renders the URL for people: Unicode host, decoded path,
// query and fragment.
func (w WebURL) DisplayString() string {
	var b strings.Builder
	if w.Protocol != "" {
		b.WriteString(strings.ToLower(w.Protocol))
		b.WriteString("://")
	}
	if w.UserInfo != "" {
		b.WriteString(w.UserInfo)
		b.WriteByte('@')
	}
	b.WriteString(w.hostPort(w.displayHost()))
	b.WriteString(w.Path)
	if w.Query != "" {
		b.WriteByte('?')
		b.WriteString(unescapeLoose(w.Query))
	}
	if w.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(unescapeLoose(w.Fragment))
	}
	return b.String()
}

// AddressWithoutProtocol is DisplayString without the "scheme://" prefix.
func (w WebURL) AddressWithoutProtocol() string {
	display := w.DisplayString()
	if i := strings.Index(display, "://"); i >= 0 && w.Protocol != "" {
		return display[i+3:]
	}
	return display
}

func (w WebURL) displayHost() string {
	host := w.Host()
	if unicode, err := idna.Display.ToUnicode(host); err == nil && unicode != "" {
		return unicode
	}
	return host
}

func (w WebURL) String() string {
	return w.DisplayString()
}

func isQueryByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/?", c) >= 0
}

func isUserInfoByte(c byte) bool {
	return c != '@' && c != '/' && c != '?' && isQueryByte(c)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// escapeLoose percent-encodes every byte that allowed rejects, leaving
// well-formed %XX escapes untouched.
func escapeLoose(s string, allowed func(byte) bool) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(c)
			continue
		}
		if allowed(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0F])
	}
	return b.String()
}

// unescapeLoose decodes percent escapes, returning s unchanged when it is not
// a valid escape sequence.
func unescapeLoose(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
