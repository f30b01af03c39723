package reporter

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Reporter prints scan results, diffs, history and watch changes in the
// configured format.
type Reporter struct {
	cfg    config.ReporterConfig
	format string
	out    io.Writer
	colors palette
	html   *htmlRenderer
	logger zerolog.Logger
}

// NewReporter creates a Reporter writing to out.
func NewReporter(cfg config.ReporterConfig, out io.Writer, logger zerolog.Logger) (*Reporter, error) {
	if out == nil {
		return nil, common.NewValidationError("out", out, "report writer cannot be nil")
	}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = FormatText
	}

	r := &Reporter{
		cfg:    cfg,
		format: format,
		out:    out,
		colors: newPalette(cfg.NoColor),
		logger: logger.With().Str("component", "Reporter").Logger(),
	}

	switch format {
	case FormatText, FormatJSON, FormatYAML:
	case FormatHTML:
		html, err := newHTMLRenderer()
		if err != nil {
			return nil, err
		}
		r.html = html
	default:
		return nil, common.NewValidationError("format", cfg.Format, "unsupported report format")
	}
	r.logger.Debug().Str("format", format).Bool("no_color", cfg.NoColor).Msg("Reporter initialized")
	return r, nil
}

// Format returns the effective output format.
func (r *Reporter) Format() string {
	return r.format
}

// ReportScan prints a scan summary.
func (r *Reporter) ReportScan(summary *models.ScanSummary) error {
	if summary == nil {
		return common.NewValidationError("summary", summary, "scan summary cannot be nil")
	}
	switch r.format {
	case FormatJSON:
		return r.writeJSON(summary)
	case FormatYAML:
		return r.writeYAML(summary)
	case FormatHTML:
		return r.html.render(r.out, r.scanPage(summary))
	}
	r.writeScanText(summary)
	return nil
}

// ReportRecords prints a flat list of records, e.g. a classification.
func (r *Reporter) ReportRecords(records []models.PathmentRecord) error {
	if records == nil {
		records = []models.PathmentRecord{}
	}
	switch r.format {
	case FormatJSON:
		return r.writeJSON(records)
	case FormatYAML:
		return r.writeYAML(records)
	case FormatHTML:
		return r.html.render(r.out, r.recordsPage(records))
	}
	r.writeRecordsText(records)
	return nil
}

// ReportDiff prints the comparison of two inputs.
func (r *Reporter) ReportDiff(result *models.PathmentDiffResult) error {
	if result == nil {
		return common.NewValidationError("result", result, "diff result cannot be nil")
	}
	switch r.format {
	case FormatJSON:
		return r.writeJSON(result)
	case FormatYAML:
		return r.writeYAML(result)
	case FormatHTML:
		return r.html.render(r.out, r.diffPage(result))
	}
	r.writeDiffText(result)
	return nil
}

// ReportSessions prints stored scan sessions.
func (r *Reporter) ReportSessions(sessions []models.ScanSession) error {
	if sessions == nil {
		sessions = []models.ScanSession{}
	}
	switch r.format {
	case FormatJSON:
		return r.writeJSON(sessions)
	case FormatYAML:
		return r.writeYAML(sessions)
	case FormatHTML:
		return r.html.render(r.out, r.sessionsPage(sessions))
	}
	r.writeSessionsText(sessions)
	return nil
}

// ChangeReport is the serializable form of a watch change.
type ChangeReport struct {
	Path    string                  `json:"path" yaml:"path"`
	Added   []models.PathmentRecord `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []models.PathmentRecord `json:"removed,omitempty" yaml:"removed,omitempty"`
	Error   string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// ReportChange prints what a re-scan of a watched file changed. Structured
// formats emit one document per change so the output can be streamed.
func (r *Reporter) ReportChange(change ChangeReport) error {
	switch r.format {
	case FormatJSON:
		return json.NewEncoder(r.out).Encode(change)
	case FormatYAML:
		return r.writeYAML(change)
	}
	r.writeChangeText(change)
	return nil
}

func (r *Reporter) writeJSON(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return common.WrapError(err, "failed to encode JSON report")
	}
	return nil
}

func (r *Reporter) writeYAML(v any) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return common.WrapError(err, "failed to encode YAML report")
	}
	return encoder.Close()
}
