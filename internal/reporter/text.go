package reporter

import (
	"fmt"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/henrykdz/pathment/internal/models"
)

func (r *Reporter) writeScanText(summary *models.ScanSummary) {
	for _, doc := range summary.Documents {
		r.colors.header.Fprintf(r.out, "%s", doc.Source)
		if doc.Kind != "" {
			r.colors.muted.Fprintf(r.out, " (%s)", doc.Kind)
		}
		fmt.Fprintln(r.out)

		if doc.Error != "" {
			r.colors.failure.Fprintf(r.out, "  error: %s\n", doc.Error)
			continue
		}
		r.writeRecordLines(doc.Records, "  ")
	}

	fmt.Fprintln(r.out)
	total := 0
	for _, n := range summary.TypeCounts {
		total += n
	}
	fmt.Fprintf(r.out, "%d inputs, %d failed, %d pathments in %s\n",
		summary.TotalInputs, summary.FailedInputs, total, summary.Duration.Round(time.Millisecond))

	types := make([]string, 0, len(summary.TypeCounts))
	for t := range summary.TypeCounts {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		r.colors.muted.Fprintf(r.out, "  %-*s %d\n", typeColumnWidth, t, summary.TypeCounts[t])
	}
}

func (r *Reporter) writeRecordsText(records []models.PathmentRecord) {
	r.writeRecordLines(records, "")
}

// writeRecordLines prints one line per record. Interesting records follow
// the specified ones when enabled.
func (r *Reporter) writeRecordLines(records []models.PathmentRecord, indent string) {
	for _, rec := range records {
		if rec.Interesting {
			continue
		}
		r.writeRecordLine(r.colors.kept, indent, "", rec)
	}
	if !r.cfg.ShowInteresting {
		return
	}
	for _, rec := range records {
		if rec.Interesting {
			r.colors.warn.Fprintf(r.out, "%s? %s\n", indent, rec.Address)
		}
	}
}

func (r *Reporter) writeRecordLine(c *color.Color, indent, marker string, rec models.PathmentRecord) {
	c.Fprintf(r.out, "%s%s%-*s %s", indent, marker, typeColumnWidth, rec.Type, rec.Address)
	if r.cfg.ShowTitles && rec.Title != "" && rec.Title != rec.Address {
		r.colors.muted.Fprintf(r.out, "  %q", rec.Title)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) writeDiffText(result *models.PathmentDiffResult) {
	r.colors.removed.Fprintf(r.out, "--- %s\n", result.OldSource)
	r.colors.added.Fprintf(r.out, "+++ %s\n", result.NewSource)

	for _, d := range result.Results {
		switch d.Status {
		case models.StatusNew:
			r.writeRecordLine(r.colors.added, "", "+ ", d.Record)
		case models.StatusRemoved:
			r.writeRecordLine(r.colors.removed, "", "- ", d.Record)
		default:
			r.writeRecordLine(r.colors.kept, "", "  ", d.Record)
		}
	}

	if len(result.Lines) > 0 {
		fmt.Fprintln(r.out)
		r.colors.header.Fprintln(r.out, "line diff:")
		for _, line := range result.Lines {
			switch line.Operation {
			case models.LineInsert:
				r.colors.added.Fprintf(r.out, "+%s\n", line.Text)
			case models.LineDelete:
				r.colors.removed.Fprintf(r.out, "-%s\n", line.Text)
			default:
				r.colors.kept.Fprintf(r.out, " %s\n", line.Text)
			}
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d new, %d removed, %d existing\n", result.New, result.Removed, result.Existing)
}

func (r *Reporter) writeSessionsText(sessions []models.ScanSession) {
	if len(sessions) == 0 {
		r.colors.muted.Fprintln(r.out, "no scan sessions recorded")
		return
	}
	r.colors.header.Fprintf(r.out, "%-20s %-10s %-19s %8s %6s %9s %5s  %s\n",
		"SESSION", "STATUS", "STARTED", "DURATION", "INPUTS", "PATHMENTS", "NEW", "TARGET")
	for _, s := range sessions {
		duration := "-"
		if !s.EndTime.IsZero() {
			duration = s.EndTime.Sub(s.StartTime).Round(time.Millisecond).String()
		}
		c := r.colors.kept
		switch s.Status {
		case models.SessionFailed:
			c = r.colors.failure
		case models.SessionStarted:
			c = r.colors.warn
		}
		c.Fprintf(r.out, "%-20s %-10s %-19s %8s %6d %9d %5d  %s\n",
			s.SessionID, s.Status, models.FormatTimeOptional(s.StartTime, timeLayout), duration,
			s.NumInputs, s.NumPathments, s.NewPathments, s.TargetSource)
	}
}

func (r *Reporter) writeChangeText(change ChangeReport) {
	r.colors.header.Fprintf(r.out, "%s %s\n", time.Now().Format(timeLayout), change.Path)
	if change.Error != "" {
		r.colors.failure.Fprintf(r.out, "  error: %s\n", change.Error)
		return
	}
	for _, rec := range change.Added {
		r.writeRecordLine(r.colors.added, "  ", "+ ", rec)
	}
	for _, rec := range change.Removed {
		r.writeRecordLine(r.colors.removed, "  ", "- ", rec)
	}
}
