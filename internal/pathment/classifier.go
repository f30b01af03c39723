package pathment

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	bareEmailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	ipv4PortRegex  = regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3}){3})(?::(\d{1,5}))?$`)
	ipv6PortRegex  = regexp.MustCompile(`^\[([0-9A-Fa-f:.]+)\](?::(\d{1,5}))?$`)
	localhostRegex = regexp.MustCompile(`^(?i:localhost)(?::(\d{1,5}))?$`)

	emailValidator = validator.New()
)

// Classifier turns one cleaned candidate into exactly one Pathment.
type Classifier struct {
	logger      zerolog.Logger
	titleLength int
}

// NewClassifier creates a Classifier. A titleLength of zero or less keeps
// DefaultTitleLength.
func NewClassifier(logger zerolog.Logger, titleLength int) *Classifier {
	if titleLength <= 0 {
		titleLength = DefaultTitleLength
	}
	return &Classifier{
		logger:      logger.With().Str("component", "Classifier").Logger(),
		titleLength: titleLength,
	}
}

// ParseSingle classifies text. It never returns nil; text that matches no
// rule comes back as Unspecified.
func (c *Classifier) ParseSingle(text string) *Pathment {
	s := strings.TrimSpace(text)
	if s == "" {
		return c.finish(NewUnspecified(""))
	}

	protocol := DetectProtocol(s)
	var result *Pathment
	switch protocol.Category() {
	case CategoryWeb:
		result = c.guard("web", s, func() *Pathment { return parseWeb(s) })
	case CategoryMail:
		result = c.guard("mail", s, func() *Pathment { return parseMail(s) })
	case CategoryFile:
		result = c.guard("file", s, func() *Pathment { return parseFile(s, protocol) })
	default:
		result = c.guard("heuristic", s, func() *Pathment { return parseWithoutProtocol(s) })
	}

	if result == nil || !result.IsSpecified() {
		return c.finish(NewUnspecified(s))
	}
	return c.finish(result)
}

func (c *Classifier) finish(p *Pathment) *Pathment {
	if c.titleLength != DefaultTitleLength {
		p.SetTitle(TruncateTitle(p.AddressForDisplay(), c.titleLength))
	}
	return p
}

// guard runs one classification branch. A panic inside the branch counts as
// no match.
func (c *Classifier) guard(branch, text string, fn func() *Pathment) (result *Pathment) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug().
				Str("branch", branch).
				Str("candidate", text).
				Interface("panic", r).
				Msg("Recovered while classifying candidate")
			result = nil
		}
	}()
	return fn()
}

func parseWeb(s string) *Pathment {
	w, err := SplitWebURL(s)
	if err != nil {
		return nil
	}
	w, err = ValidateAndFinalizeWebURL(w)
	if err != nil {
		return nil
	}
	p, err := NewWebAddress(w)
	if err != nil {
		return nil
	}
	return p
}

func parseMail(s string) *Pathment {
	address := s[len("mailto:"):]
	address, _, _ = strings.Cut(address, "?")
	address = unescapeLoose(strings.TrimSpace(address))
	if !isEmail(address) {
		return nil
	}
	return NewEmail(address)
}

func isEmail(address string) bool {
	if !bareEmailRegex.MatchString(address) {
		return false
	}
	return emailValidator.Var(address, "required,email") == nil
}

func parseFile(s string, protocol TransferProtocol) *Pathment {
	if protocol == ProtocolMalformedFile {
		return NewMalformedFileURL(s)
	}
	f, err := SplitFilePath(s)
	if err != nil {
		return nil
	}
	return fromFilePath(s, protocol, f)
}

// parseWithoutProtocol applies the heuristics for text without a recognized
// protocol, in order: email, IP address, www prefix, localhost, host with a
// path and bare host name. Any other text with an '@' is rejected.
func parseWithoutProtocol(s string) *Pathment {
	if isEmail(s) {
		return NewEmail(s)
	}
	if strings.Contains(s, "@") {
		return nil
	}
	if p := parseIPAddress(s); p != nil {
		return p
	}
	if strings.HasPrefix(strings.ToLower(s), "www.") {
		return parseWeb("https://" + s)
	}
	if m := localhostRegex.FindStringSubmatch(s); m != nil && validPort(m[1]) {
		return NewHostname(s)
	}
	return parseHostname(s)
}

func parseIPAddress(s string) *Pathment {
	if m := ipv4PortRegex.FindStringSubmatch(s); m != nil {
		addr, err := netip.ParseAddr(m[1])
		if err != nil || !addr.Is4() || !validPort(m[2]) {
			return nil
		}
		return NewIPAddress(s)
	}
	if m := ipv6PortRegex.FindStringSubmatch(s); m != nil {
		addr, err := netip.ParseAddr(m[1])
		if err != nil || !addr.Is6() || !validPort(m[2]) {
			return nil
		}
		return NewIPAddress(s)
	}
	if strings.Count(s, ":") >= 2 {
		if addr, err := netip.ParseAddr(s); err == nil && addr.Is6() {
			return NewIPAddress(s)
		}
	}
	return nil
}

// parseHostname accepts "host", "host:port" and "host/path" when the host ends
// in a known top-level domain that does not look like a file extension.
func parseHostname(s string) *Pathment {
	w, err := SplitWebURL("https://" + s)
	if err != nil {
		return nil
	}
	w, err = ValidateAndFinalizeWebURL(w)
	if err != nil {
		return nil
	}
	tld := lastLabel(w.Domain)
	if !IsKnownTLD(tld) || IsCommonFileExtension(tld) {
		return nil
	}
	if w.Path == "" && w.Query == "" && w.Fragment == "" {
		return NewHostname(s)
	}
	return NewURLAddress(w)
}

func validPort(port string) bool {
	if port == "" {
		return true
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 0 && n <= maxPort
}
