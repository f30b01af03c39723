package reporter

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/models"
)

//go:embed templates/report.html.tmpl
var templatesFS embed.FS

// htmlPage is the data handed to the report template.
type htmlPage struct {
	Title       string
	GeneratedAt time.Time
	Summary     []string
	Sections    []htmlSection
}

type htmlSection struct {
	Heading string
	Note    string
	Headers []string
	Rows    []htmlRow
}

type htmlRow struct {
	Class string
	Cells []htmlCell
}

type htmlCell struct {
	Text string
	Href string
}

type htmlRenderer struct {
	template *template.Template
}

func newHTMLRenderer() (*htmlRenderer, error) {
	tmpl, err := template.New(defaultHTMLTemplate).Funcs(templateFunctions()).ParseFS(templatesFS, "templates/"+defaultHTMLTemplate)
	if err != nil {
		return nil, common.WrapError(err, "failed to parse embedded report template")
	}
	return &htmlRenderer{template: tmpl}, nil
}

func (h *htmlRenderer) render(w io.Writer, page htmlPage) error {
	if page.GeneratedAt.IsZero() {
		page.GeneratedAt = time.Now()
	}
	if err := h.template.Execute(w, page); err != nil {
		return common.WrapError(err, "failed to render HTML report")
	}
	return nil
}

var recordHeaders = []string{"Type", "Protocol", "Address", "Title"}

// recordRow links the address to its URI form for schemes a browser can
// open from a report.
func recordRow(class string, rec models.PathmentRecord) htmlRow {
	href := ""
	switch rec.Protocol {
	case "http", "https", "mailto":
		href = rec.URI
	}
	return htmlRow{
		Class: class,
		Cells: []htmlCell{
			{Text: titleCase(rec.Type)},
			{Text: rec.Protocol},
			{Text: rec.Address, Href: href},
			{Text: rec.Title},
		},
	}
}

func (r *Reporter) recordSections(heading string, records []models.PathmentRecord) []htmlSection {
	main := htmlSection{Heading: heading, Headers: recordHeaders}
	interesting := htmlSection{Heading: heading + ": interesting", Headers: recordHeaders}
	for _, rec := range records {
		if rec.Interesting {
			interesting.Rows = append(interesting.Rows, recordRow("interesting", rec))
			continue
		}
		main.Rows = append(main.Rows, recordRow("", rec))
	}

	sections := []htmlSection{main}
	if r.cfg.ShowInteresting && len(interesting.Rows) > 0 {
		sections = append(sections, interesting)
	}
	return sections
}

func (r *Reporter) scanPage(summary *models.ScanSummary) htmlPage {
	page := htmlPage{
		Title:       defaultReportTitle,
		GeneratedAt: summary.StartedAt.Add(summary.Duration),
		Summary: []string{
			fmt.Sprintf("%d inputs, %d failed", summary.TotalInputs, summary.FailedInputs),
			"Duration: " + summary.Duration.Round(time.Millisecond).String(),
		},
	}
	if summary.SessionID != "" {
		page.Summary = append(page.Summary, "Session: "+summary.SessionID)
	}

	types := make([]string, 0, len(summary.TypeCounts))
	for t := range summary.TypeCounts {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		page.Summary = append(page.Summary, titleCase(t)+": "+strconv.Itoa(summary.TypeCounts[t]))
	}

	for _, doc := range summary.Documents {
		if doc.Error != "" {
			page.Sections = append(page.Sections, htmlSection{Heading: doc.Source, Note: "Error: " + doc.Error})
			continue
		}
		sections := r.recordSections(doc.Source, doc.Records)
		sections[0].Note = doc.Kind
		page.Sections = append(page.Sections, sections...)
	}
	return page
}

func (r *Reporter) recordsPage(records []models.PathmentRecord) htmlPage {
	return htmlPage{
		Title:    defaultReportTitle,
		Summary:  []string{strconv.Itoa(len(records)) + " pathments"},
		Sections: r.recordSections("Pathments", records),
	}
}

func (r *Reporter) diffPage(result *models.PathmentDiffResult) htmlPage {
	section := htmlSection{Heading: result.OldSource + " → " + result.NewSource, Headers: append([]string{"Status"}, recordHeaders...)}
	for _, d := range result.Results {
		row := recordRow(string(d.Status), d.Record)
		row.Cells = append([]htmlCell{{Text: titleCase(string(d.Status))}}, row.Cells...)
		section.Rows = append(section.Rows, row)
	}

	page := htmlPage{
		Title:    defaultDiffReportTitle,
		Summary:  []string{fmt.Sprintf("%d new, %d removed, %d existing", result.New, result.Removed, result.Existing)},
		Sections: []htmlSection{section},
	}
	if len(result.Lines) > 0 {
		lines := htmlSection{Heading: "Line diff", Headers: []string{"Operation", "Line"}}
		for _, l := range result.Lines {
			lines.Rows = append(lines.Rows, htmlRow{Class: l.Operation, Cells: []htmlCell{{Text: l.Operation}, {Text: l.Text}}})
		}
		page.Sections = append(page.Sections, lines)
	}
	return page
}

func (r *Reporter) sessionsPage(sessions []models.ScanSession) htmlPage {
	section := htmlSection{
		Heading: "Scan sessions",
		Headers: []string{"Session", "Status", "Started", "Finished", "Inputs", "Pathments", "New", "Target"},
	}
	for _, s := range sessions {
		section.Rows = append(section.Rows, htmlRow{
			Class: strings.ToLower(s.Status),
			Cells: []htmlCell{
				{Text: s.SessionID},
				{Text: s.Status},
				{Text: models.FormatTimeOptional(s.StartTime, timeLayout)},
				{Text: models.FormatTimeOptional(s.EndTime, timeLayout)},
				{Text: strconv.Itoa(s.NumInputs)},
				{Text: strconv.Itoa(s.NumPathments)},
				{Text: strconv.Itoa(s.NewPathments)},
				{Text: s.TargetSource},
			},
		})
	}
	return htmlPage{Title: defaultReportTitle, Sections: []htmlSection{section}}
}
