package reporter

import "github.com/fatih/color"

// palette holds the colors of the text format.
type palette struct {
	header  *color.Color
	added   *color.Color
	removed *color.Color
	kept    *color.Color
	muted   *color.Color
	warn    *color.Color
	failure *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		header:  color.New(color.FgCyan, color.Bold),
		added:   color.New(color.FgGreen, color.Bold),
		removed: color.New(color.FgRed, color.Bold),
		kept:    color.New(color.FgWhite),
		muted:   color.New(color.FgHiBlack),
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.header, p.added, p.removed, p.kept, p.muted, p.warn, p.failure} {
			c.DisableColor()
		}
	}
	return p
}
