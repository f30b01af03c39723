package reporter

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

const (
	// typeColumnWidth fits the longest Pathment type name.
	typeColumnWidth = 14

	timeLayout = "2006-01-02 15:04:05"

	defaultReportTitle     = "Pathment Scan Report"
	defaultDiffReportTitle = "Pathment Diff Report"
	defaultHTMLTemplate    = "report.html.tmpl"
)
