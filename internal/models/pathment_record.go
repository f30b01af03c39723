package models

import (
	"slices"
	"strings"

	"github.com/henrykdz/pathment/internal/pathment"
)

// PathmentRecord is the flat form of a Pathment used by reports, history
// storage and Parquet exports.
type PathmentRecord struct {
	Type          string `json:"type" yaml:"type" parquet:"type"`
	Protocol      string `json:"protocol" yaml:"protocol" parquet:"protocol"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty" parquet:"title"`
	Address       string `json:"address" yaml:"address" parquet:"address"`
	URI           string `json:"uri,omitempty" yaml:"uri,omitempty" parquet:"uri"`
	Canonical     string `json:"canonical,omitempty" yaml:"canonical,omitempty" parquet:"canonical"`
	Source        string `json:"source,omitempty" yaml:"source,omitempty" parquet:"source"`
	Interesting   bool   `json:"interesting,omitempty" yaml:"interesting,omitempty" parquet:"interesting"`
	ScanTimestamp int64  `json:"scan_timestamp,omitempty" yaml:"scan_timestamp,omitempty" parquet:"scan_timestamp"`
}

// FromPathment flattens p. The canonical address is computed with opts.
func FromPathment(p *pathment.Pathment, source string, opts pathment.CanonicalOptions) PathmentRecord {
	return PathmentRecord{
		Type:      p.Type().String(),
		Protocol:  p.Protocol().String(),
		Title:     p.Title(),
		Address:   p.AddressForDisplay(),
		URI:       p.AddressForURI(),
		Canonical: p.CanonicalAddress(opts),
		Source:    source,
	}
}

// FromScanResult flattens a whole extraction, interesting items last.
func FromScanResult(result pathment.ScanResult, source string, opts pathment.CanonicalOptions) []PathmentRecord {
	records := make([]PathmentRecord, 0, len(result.Pathments)+len(result.Interesting))
	for _, p := range result.Pathments {
		records = append(records, FromPathment(p, source, opts))
	}
	for _, p := range result.Interesting {
		r := FromPathment(p, source, opts)
		r.Interesting = true
		records = append(records, r)
	}
	return records
}

// ToPathment rebuilds a Pathment by classifying the stored address again.
// When that does not reproduce the stored type the URI form is tried, and
// failing both the record comes back as an unspecified Pathment.
func (r PathmentRecord) ToPathment() *pathment.Pathment {
	want := pathment.ParseType(r.Type)

	p := pathment.ParseSingle(r.Address)
	if p.Type() != want && r.URI != "" {
		if alt := pathment.ParseSingle(r.URI); alt.Type() == want {
			p = alt
		}
	}
	if r.Title != "" {
		p.SetTitle(r.Title)
	}
	return p
}

// Key identifies the record within a result set, ignoring address case.
func (r PathmentRecord) Key() string {
	return r.Type + "|" + r.Protocol + "|" + strings.ToLower(r.Address)
}

// SortRecords orders records like SortPathments, interesting records last.
func SortRecords(records []PathmentRecord) {
	slices.SortStableFunc(records, func(a, b PathmentRecord) int {
		if a.Interesting != b.Interesting {
			if a.Interesting {
				return 1
			}
			return -1
		}
		if c := pathment.CompareEntries(pathment.ParseType(a.Type), a.Address, pathment.ParseType(b.Type), b.Address); c != 0 {
			return c
		}
		return strings.Compare(a.Protocol, b.Protocol)
	})
}
