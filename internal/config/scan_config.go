package config

// ScanConfig controls how text is turned into Pathments
type ScanConfig struct {
	// MultilineThreshold is the length above which pasted text goes through
	// full extraction instead of single classification.
	MultilineThreshold int  `json:"multiline_threshold,omitempty" yaml:"multiline_threshold,omitempty" validate:"omitempty,min=1"`
	TitleLength        int  `json:"title_length,omitempty" yaml:"title_length,omitempty" validate:"omitempty,min=4"`
	IncludeInteresting bool `json:"include_interesting" yaml:"include_interesting"`
	// CacheSize bounds the paste classification cache, 0 disables it.
	CacheSize int `json:"cache_size" yaml:"cache_size" validate:"min=0"`
	// Allowlist and Denylist are regular expressions matched against the
	// display address of each Pathment.
	Allowlist []string `json:"allowlist,omitempty" yaml:"allowlist,omitempty" validate:"omitempty,regexes"`
	Denylist  []string `json:"denylist,omitempty" yaml:"denylist,omitempty" validate:"omitempty,regexes"`
	// Types restricts results to the named Pathment types, e.g. URL_ADDRESS.
	Types []string `json:"types,omitempty" yaml:"types,omitempty" validate:"omitempty,dive,pathmenttype"`
}

// NewDefaultScanConfig creates default scan configuration
func NewDefaultScanConfig() ScanConfig {
	return ScanConfig{
		MultilineThreshold: DefaultScanMultilineThreshold,
		TitleLength:        DefaultScanTitleLength,
		IncludeInteresting: DefaultScanIncludeInteresting,
		CacheSize:          DefaultScanCacheSize,
		Allowlist:          []string{},
		Denylist:           []string{},
		Types:              []string{},
	}
}

// InputConfig controls discovery and decoding of input files
type InputConfig struct {
	Include               []string `json:"include,omitempty" yaml:"include,omitempty" validate:"omitempty,globs"`
	Exclude               []string `json:"exclude,omitempty" yaml:"exclude,omitempty" validate:"omitempty,globs"`
	MaxFileSizeMB         int      `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty" validate:"omitempty,min=1"`
	MaxPDFPages           int      `json:"max_pdf_pages" yaml:"max_pdf_pages" validate:"min=0"`
	HarvestHTMLAttributes bool     `json:"harvest_html_attributes" yaml:"harvest_html_attributes"`
	AnalyzeJavaScript     bool     `json:"analyze_javascript" yaml:"analyze_javascript"`
}

// NewDefaultInputConfig creates default input configuration
func NewDefaultInputConfig() InputConfig {
	return InputConfig{
		Include:               []string{},
		Exclude:               append([]string(nil), DefaultInputExclude...),
		MaxFileSizeMB:         DefaultInputMaxFileSizeMB,
		MaxPDFPages:           DefaultInputMaxPDFPages,
		HarvestHTMLAttributes: true,
		AnalyzeJavaScript:     true,
	}
}

// MaxFileSizeBytes returns the size limit in bytes
func (ic InputConfig) MaxFileSizeBytes() int64 {
	if ic.MaxFileSizeMB <= 0 {
		return int64(DefaultInputMaxFileSizeMB) * 1024 * 1024
	}
	return int64(ic.MaxFileSizeMB) * 1024 * 1024
}

// WatchConfig controls watch mode
type WatchConfig struct {
	DebounceMs int `json:"debounce_ms" yaml:"debounce_ms" validate:"min=0"`
}

// NewDefaultWatchConfig creates default watch configuration
func NewDefaultWatchConfig() WatchConfig {
	return WatchConfig{DebounceMs: DefaultWatchDebounceMs}
}
