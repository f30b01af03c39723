package pathment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultTitleLength is the number of runes kept in a generated title.
const DefaultTitleLength = 80

// Pathment is a classified resource reference found in text. Values are
// created by the New* factories only, so the payload always agrees with the
// type: web types carry a WebURL, file types a FilePath, all others neither.
// The title is the only mutable field and takes no part in identity.
type Pathment struct {
	typ      Type
	protocol TransferProtocol
	title    string
	address  string
	web      *WebURL
	file     *FilePath
	original string
}

func newPathment(t Type, p TransferProtocol, address, original string) *Pathment {
	pm := &Pathment{typ: t, protocol: p, address: address, original: original}
	pm.title = TruncateTitle(pm.AddressForDisplay(), DefaultTitleLength)
	return pm
}

// NewWebAddress dispatches on the WebURL protocol to the matching web factory.
func NewWebAddress(w WebURL) (*Pathment, error) {
	p, ok := webProtocolForScheme(strings.ToLower(w.Protocol))
	if !ok {
		return nil, fmt.Errorf("unsupported web protocol %q", w.Protocol)
	}
	switch p {
	case ProtocolFTP:
		return NewFTPAddress(w), nil
	case ProtocolSSH:
		return NewSSHAddress(w), nil
	case ProtocolTelnet:
		return NewTelnetAddress(w), nil
	}
	return NewURLAddress(w), nil
}

// NewURLAddress builds an http or https address. Any other protocol is
// treated as https.
func NewURLAddress(w WebURL) *Pathment {
	w.Protocol = strings.ToLower(w.Protocol)
	protocol := ProtocolHTTPS
	if w.Protocol == "http" {
		protocol = ProtocolHTTP
	} else {
		w.Protocol = "https"
	}
	return newWebPathment(URLAddress, protocol, w)
}

func NewFTPAddress(w WebURL) *Pathment {
	w.Protocol = "ftp"
	return newWebPathment(FTPAddress, ProtocolFTP, w)
}

func NewSSHAddress(w WebURL) *Pathment {
	w.Protocol = "ssh"
	return newWebPathment(SSHAddress, ProtocolSSH, w)
}

func NewTelnetAddress(w WebURL) *Pathment {
	w.Protocol = "telnet"
	return newWebPathment(TelnetAddress, ProtocolTelnet, w)
}

func newWebPathment(t Type, p TransferProtocol, w WebURL) *Pathment {
	pm := &Pathment{typ: t, protocol: p, web: &w, address: w.AddressWithoutProtocol(), original: w.DisplayString()}
	pm.title = TruncateTitle(pm.AddressForDisplay(), DefaultTitleLength)
	return pm
}

// NewEmail builds an email address. address must not carry "mailto:".
func NewEmail(address string) *Pathment {
	address = strings.TrimSpace(address)
	return newPathment(Email, ProtocolMailto, address, address)
}

// NewIPAddress builds an IP address, optionally with a port.
func NewIPAddress(address string) *Pathment {
	address = strings.TrimSpace(address)
	return newPathment(IPAddress, ProtocolNone, address, address)
}

// NewHostname builds a bare host name, optionally with a port.
func NewHostname(host string) *Pathment {
	host = strings.TrimSpace(host)
	return newPathment(Hostname, ProtocolNone, host, host)
}

// NewFileURL builds a file URI without a drive letter.
func NewFileURL(f FilePath) *Pathment {
	f.SchemeFound = true
	return newFilePathment(FileURL, ProtocolFile, f)
}

// NewMalformedFileURL keeps a file URI that fails strict parsing so that it
// can still be shown and repaired.
func NewMalformedFileURL(raw string) *Pathment {
	raw = strings.TrimSpace(raw)
	address := raw
	if len(address) >= len("file:") && strings.EqualFold(address[:len("file:")], "file:") {
		address = strings.TrimLeft(address[len("file:"):], `/\`)
	}
	return newPathment(FileURL, ProtocolMalformedFile, address, raw)
}

// NewLocalPath builds a drive-letter or Unix-rooted path. Paths that came
// from a file URI keep the file protocol.
func NewLocalPath(f FilePath) *Pathment {
	protocol := ProtocolLocalFile
	if f.SchemeFound {
		protocol = ProtocolFile
	}
	return newFilePathment(LocalPath, protocol, f)
}

func NewUNCPath(f FilePath) *Pathment {
	f.SchemeFound = false
	return newFilePathment(UNCPath, ProtocolUNC, f)
}

func NewRelativePath(f FilePath) *Pathment {
	f.SchemeFound = false
	return newFilePathment(RelativePath, ProtocolRelative, f)
}

func newFilePathment(t Type, p TransferProtocol, f FilePath) *Pathment {
	pm := &Pathment{typ: t, protocol: p, file: &f, address: f.PathWithoutProtocol(), original: f.FullPath()}
	pm.title = TruncateTitle(pm.AddressForDisplay(), DefaultTitleLength)
	return pm
}

// NewExecCommand builds a command line to be executed.
func NewExecCommand(command string) *Pathment {
	command = strings.TrimSpace(command)
	return newPathment(ExecCommand, ProtocolNone, command, command)
}

// NewPrompt builds a free text prompt.
func NewPrompt(text string) *Pathment {
	text = strings.TrimSpace(text)
	return newPathment(Prompt, ProtocolNone, text, text)
}

// NewUnspecified wraps text that could not be classified.
func NewUnspecified(text string) *Pathment {
	text = strings.TrimSpace(text)
	return newPathment(Unspecified, ProtocolNone, text, text)
}

func (p *Pathment) Type() Type { return p.typ }

func (p *Pathment) Protocol() TransferProtocol { return p.protocol }

func (p *Pathment) Title() string { return p.title }

// SetTitle replaces the display title.
func (p *Pathment) SetTitle(title string) { p.title = title }

// AddressWithoutProtocol is the address with any "scheme:" notation removed.
func (p *Pathment) AddressWithoutProtocol() string { return p.address }

// IsSpecified reports whether the type is anything but Unspecified.
func (p *Pathment) IsSpecified() bool {
	return p.typ != Unspecified
}

// WebURL returns a copy of the web payload.
func (p *Pathment) WebURL() (WebURL, bool) {
	if p.web == nil {
		return WebURL{}, false
	}
	return *p.web, true
}

// FilePath returns a copy of the file payload.
func (p *Pathment) FilePath() (FilePath, bool) {
	if p.file == nil {
		return FilePath{}, false
	}
	return *p.file, true
}

// AddressForDisplay is the human readable form of the address.
func (p *Pathment) AddressForDisplay() string {
	switch {
	case p.web != nil:
		return p.web.DisplayString()
	case p.protocol == ProtocolMalformedFile:
		return p.original
	case p.typ == FileURL && p.file != nil:
		return p.file.FullPath()
	case p.file != nil:
		return p.file.PathWithoutProtocol()
	}
	return p.address
}

// AddressForURI is the form handed to whatever opens the resource.
func (p *Pathment) AddressForURI() string {
	switch {
	case p.web != nil:
		return p.web.ToURIString()
	case p.typ == Email:
		return "mailto:" + p.address
	case p.protocol == ProtocolMalformedFile:
		return p.original
	case p.file != nil:
		return p.file.URI()
	}
	return p.address
}

// Key is the identity of a Pathment: type, protocol and the case-folded
// address without protocol.
func (p *Pathment) Key() string {
	return fmt.Sprintf("%d|%d|%s", p.typ, p.protocol, strings.ToLower(p.address))
}

// Equal reports whether both refer to the same resource.
func (p *Pathment) Equal(other *Pathment) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.typ == other.typ && p.protocol == other.protocol &&
		strings.EqualFold(p.address, other.address)
}

// Clone returns an independently owned copy.
func (p *Pathment) Clone() *Pathment {
	if p == nil {
		return nil
	}
	c := *p
	if p.web != nil {
		w := *p.web
		c.web = &w
	}
	if p.file != nil {
		f := *p.file
		c.file = &f
	}
	return &c
}

func (p *Pathment) String() string {
	return p.typ.String() + " " + p.AddressForDisplay()
}

// TruncateTitle shortens s to at most limit runes, marking the cut with "...".
func TruncateTitle(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return string([]rune(s)[:limit])
	}
	return string([]rune(s)[:limit-3]) + "..."
}
