package config

import "github.com/henrykdz/pathment/internal/pathment"

// DiffConfig defines how two result sets are compared
type DiffConfig struct {
	ExcludeProtocol  bool `json:"exclude_protocol" yaml:"exclude_protocol"`
	ExcludeSubdomain bool `json:"exclude_subdomain" yaml:"exclude_subdomain"`
	ExcludeQuery     bool `json:"exclude_query" yaml:"exclude_query"`
	ExcludeFragment  bool `json:"exclude_fragment" yaml:"exclude_fragment"`
	// ShowLineDiff adds a line diff of the sorted address lists.
	ShowLineDiff    bool `json:"show_line_diff" yaml:"show_line_diff"`
	SemanticCleanup bool `json:"semantic_cleanup" yaml:"semantic_cleanup"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ExcludeFragment: true,
		ShowLineDiff:    false,
		SemanticCleanup: true,
	}
}

// CanonicalOptions returns the address normalization used for matching
func (dc DiffConfig) CanonicalOptions() pathment.CanonicalOptions {
	return pathment.CanonicalOptions{
		ExcludeProtocol:  dc.ExcludeProtocol,
		ExcludeSubdomain: dc.ExcludeSubdomain,
		ExcludeQuery:     dc.ExcludeQuery,
		ExcludeFragment:  dc.ExcludeFragment,
	}
}
