package common

import (
	"regexp"

	"github.com/rs/zerolog"
)

// RegexSet is a list of compiled patterns matched as a union.
type RegexSet struct {
	patterns []*regexp.Regexp
}

// CompileRegexSet compiles patterns, logging and skipping the ones that
// fail to compile.
func CompileRegexSet(patterns []string, logger zerolog.Logger) *RegexSet {
	set := &RegexSet{}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Error().Err(err).Str("regex", pattern).Msg("Failed to compile regex, skipping.")
			continue
		}
		set.patterns = append(set.patterns, re)
	}
	return set
}

// Len returns the number of usable patterns.
func (rs *RegexSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.patterns)
}

// MatchString reports whether any pattern matches s.
func (rs *RegexSet) MatchString(s string) bool {
	if rs == nil {
		return false
	}
	for _, re := range rs.patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
