package pathment

import (
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

const (
	maxPort       = 65535
	maxHostLength = 253
)

const hostLabel = `[\p{L}\p{N}_](?:[\p{L}\p{N}_-]*[\p{L}\p{N}_])?`

var (
	webURLRegex = regexp.MustCompile(`^(?:([A-Za-z][A-Za-z0-9+.-]*)://(?:([^\s/?#@]+)@)?)?` +
		`(localhost|\[[0-9A-Fa-f:.]+\]|\d{1,3}(?:\.\d{1,3}){3}|` + hostLabel + `(?:\.` + hostLabel + `)+)` +
		`(?::(\d+))?` +
		`(/[^?#]*)?` +
		`(?:\?([^#]*))?` +
		`(?:#(.*))?$`)

	strictHostnameRegex = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+` +
		`(?:[a-z]{2,63}|xn--[a-z0-9-]{1,59})$`)

	fileDriveRegex = regexp.MustCompile(`^/?([A-Za-z]):(/|$)`)
)

// SplitWebURL decomposes text into a WebURL. It checks shape only;
// ValidateAndFinalizeWebURL decides whether the result is usable.
func SplitWebURL(text string) (WebURL, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return WebURL{}, ErrEmptyInput
	}

	m := webURLRegex.FindStringSubmatch(s)
	if m == nil {
		return WebURL{}, newSplitError("split web url", s, "", ErrNoMatch)
	}

	w := WebURL{
		Protocol: strings.ToLower(m[1]),
		UserInfo: m[2],
		Port:     NoPort,
		Path:     m[5],
		Query:    m[6],
		Fragment: m[7],
	}
	if m[4] != "" {
		port, err := strconv.Atoi(m[4])
		if err != nil {
			return WebURL{}, newSplitError("split web url", s, "port is not a number", ErrNoMatch)
		}
		w.Port = port
	}
	if w.Path != "" {
		if decoded, err := url.PathUnescape(w.Path); err == nil {
			w.Path = decoded
			if (&url.URL{Path: decoded}).EscapedPath() != m[5] {
				w.RawPath = m[5]
			}
		}
	}
	w.Subdomain, w.Domain = splitHost(m[3])
	return w, nil
}

// splitHost separates the first label from hosts that are longer than their
// registrable domain. localhost and IP literals never carry a subdomain.
func splitHost(host string) (subdomain, domain string) {
	if strings.EqualFold(host, "localhost") || isIPLiteral(host) {
		return "", host
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return "", host
	}
	if strings.Count(host, ".") <= strings.Count(registrable, ".") {
		return "", host
	}
	first, rest, _ := strings.Cut(host, ".")
	return first, rest
}

func isIPLiteral(host string) bool {
	_, err := netip.ParseAddr(strings.Trim(host, "[]"))
	return err == nil
}

// ValidateAndFinalizeWebURL rejects a split WebURL whose host is blank,
// contains an underscore or is not a plausible host name, or whose port is
// out of range.
func ValidateAndFinalizeWebURL(w WebURL) (WebURL, error) {
	host := w.Host()
	if strings.TrimSpace(host) == "" {
		return WebURL{}, newSplitError("validate web url", host, "blank host", nil)
	}
	if strings.Contains(host, "_") {
		return WebURL{}, newSplitError("validate web url", host, "underscore in host", nil)
	}
	if w.HasPort() && (w.Port < 0 || w.Port > maxPort) {
		return WebURL{}, newSplitError("validate web url", host, "port out of range", nil)
	}

	if !strings.EqualFold(host, "localhost") && !isIPLiteral(host) {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return WebURL{}, newSplitError("validate web url", host, "", err)
		}
		if len(ascii) > maxHostLength || !strictHostnameRegex.MatchString(ascii) {
			return WebURL{}, newSplitError("validate web url", host, "invalid host name", nil)
		}
	}

	w.Protocol = strings.ToLower(w.Protocol)
	return w, nil
}

// SplitFilePath decomposes a local, UNC, relative or file URI path.
func SplitFilePath(text string) (FilePath, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return FilePath{}, ErrEmptyInput
	}

	var f FilePath
	if len(s) >= len("file:") && strings.EqualFold(s[:len("file:")], "file:") {
		f.SchemeFound = true
		s = s[len("file:"):]
		if strings.HasPrefix(s, "///") {
			s = s[2:]
		}
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
	}

	f.Backslash = strings.Contains(s, `\`)
	s = strings.ReplaceAll(s, `\`, "/")

	if m := fileDriveRegex.FindStringSubmatchIndex(s); m != nil {
		f.Drive = s[m[2]:m[3]] + ":"
		s = s[m[4]:]
		if s == "" {
			f.Directories = "/"
			return f, nil
		}
	}

	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		f.Directories = s[:i+1]
		s = s[i+1:]
	}
	if j := strings.LastIndexByte(s, '.'); j > 0 && j < len(s)-1 {
		f.Filename, f.Extension = s[:j], s[j+1:]
	} else {
		f.Filename = s
	}

	if f.Drive == "" && f.Directories == "" && f.Filename == "" {
		return FilePath{}, newSplitError("split file path", text, "", ErrNoMatch)
	}
	return f, nil
}

// fromFilePath assigns the file-based type. original is the trimmed text the
// FilePath was split from. It returns nil when no file type applies.
func fromFilePath(original string, protocol TransferProtocol, f FilePath) *Pathment {
	if protocol == ProtocolMalformedFile {
		return NewMalformedFileURL(original)
	}
	noDrive := f.Drive == ""
	switch {
	case noDrive && uncPrefixRegex.MatchString(original):
		return NewUNCPath(f)
	case noDrive && f.SchemeFound:
		return NewFileURL(f)
	case noDrive && relativePrefixRegex.MatchString(original):
		return NewRelativePath(f)
	case !noDrive || strings.HasPrefix(f.Directories, "/"):
		return NewLocalPath(f)
	}
	return nil
}
