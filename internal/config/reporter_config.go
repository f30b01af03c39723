package config

// ReporterConfig defines configuration for printing results
type ReporterConfig struct {
	Format          string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,reportformat"`
	NoColor         bool   `json:"no_color" yaml:"no_color"`
	ShowTitles      bool   `json:"show_titles" yaml:"show_titles"`
	ShowInteresting bool   `json:"show_interesting" yaml:"show_interesting"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Format:          DefaultReporterFormat,
		ShowInteresting: true,
	}
}
