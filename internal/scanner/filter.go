package scanner

import (
	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/pathment"
	"github.com/rs/zerolog"
)

// Filter drops Pathments by type and by regular expressions matched against
// the display address. Deny wins over allow.
type Filter struct {
	allow *common.RegexSet
	deny  *common.RegexSet
	types map[pathment.Type]struct{}
}

// NewFilter builds a Filter from scan settings.
func NewFilter(cfg config.ScanConfig, logger zerolog.Logger) *Filter {
	f := &Filter{
		allow: common.CompileRegexSet(cfg.Allowlist, logger),
		deny:  common.CompileRegexSet(cfg.Denylist, logger),
	}
	if len(cfg.Types) > 0 {
		f.types = make(map[pathment.Type]struct{}, len(cfg.Types))
		for _, name := range cfg.Types {
			f.types[pathment.ParseType(name)] = struct{}{}
		}
	}
	return f
}

// Keep reports whether p passes the filter.
func (f *Filter) Keep(p *pathment.Pathment) bool {
	if f.types != nil {
		if _, ok := f.types[p.Type()]; !ok {
			return false
		}
	}
	return f.keepAddress(p.AddressForDisplay())
}

func (f *Filter) keepAddress(address string) bool {
	if f.deny.MatchString(address) {
		return false
	}
	return f.allow.Len() == 0 || f.allow.MatchString(address)
}

// Apply filters both lists of an extraction result. The type restriction
// does not apply to interesting candidates, which are always unspecified.
func (f *Filter) Apply(result pathment.ScanResult) pathment.ScanResult {
	out := pathment.ScanResult{
		Pathments:   make([]*pathment.Pathment, 0, len(result.Pathments)),
		Interesting: make([]*pathment.Pathment, 0, len(result.Interesting)),
	}
	for _, p := range result.Pathments {
		if f.Keep(p) {
			out.Pathments = append(out.Pathments, p)
		}
	}
	for _, p := range result.Interesting {
		if f.keepAddress(p.AddressForDisplay()) {
			out.Interesting = append(out.Interesting, p)
		}
	}
	return out
}
