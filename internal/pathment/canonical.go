package pathment

import (
	"strconv"
	"strings"
)

// CanonicalOptions selects which components are left out of a canonical
// address. User info is never part of a canonical address.
type CanonicalOptions struct {
	ExcludeProtocol  bool `json:"exclude_protocol" yaml:"exclude_protocol"`
	ExcludeSubdomain bool `json:"exclude_subdomain" yaml:"exclude_subdomain"`
	ExcludeQuery     bool `json:"exclude_query" yaml:"exclude_query"`
	ExcludeFragment  bool `json:"exclude_fragment" yaml:"exclude_fragment"`
}

// CanonicalAddress returns a normalized address for comparisons between
// Pathments. Web addresses are rebuilt from the selected components with a
// lower-case host, file paths get forward slashes and lower case, everything
// else uses the display address verbatim.
func (p *Pathment) CanonicalAddress(opts CanonicalOptions) string {
	switch {
	case p.web != nil:
		return canonicalWebURL(*p.web, opts)
	case p.typ.IsFileBased():
		return strings.ToLower(strings.ReplaceAll(p.address, `\`, "/"))
	}
	return p.AddressForDisplay()
}

func canonicalWebURL(w WebURL, opts CanonicalOptions) string {
	var b strings.Builder
	if !opts.ExcludeProtocol && w.Protocol != "" {
		b.WriteString(w.Protocol)
		b.WriteString("://")
	}
	if !opts.ExcludeSubdomain && w.Subdomain != "" {
		b.WriteString(strings.ToLower(w.Subdomain))
		b.WriteByte('.')
	}
	b.WriteString(strings.ToLower(w.Domain))
	if w.HasPort() {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(w.Port))
	}
	path := w.Path
	if w.RawPath != "" {
		path = w.RawPath
	}
	if path != "/" {
		b.WriteString(path)
	}
	if !opts.ExcludeQuery && w.Query != "" {
		b.WriteByte('?')
		b.WriteString(w.Query)
	}
	if !opts.ExcludeFragment && w.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(w.Fragment)
	}
	return b.String()
}
