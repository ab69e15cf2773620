package change

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Placeholder stands in for absent values in reports.
const Placeholder = "-"

// Summary counts the files of one run.
type Summary struct {
	// Changed is the number of files whose tag was rewritten.
	Changed int

	// Pending is the number of files with at least one detected change,
	// whether or not it was written.
	Pending int

	// Total is the number of files found by the scan.
	Total int
}

// Reporter prints per-file change listings and the run summary.
//
// Output format:
//
//	File: music/Hits/01 Song.mp3:
//	  Title: - --> Song
//	  Track: 01 --> 1
//
//	1/3 files changed
type Reporter struct {
	w io.Writer

	fileStyle    lipgloss.Style
	labelStyle   lipgloss.Style
	oldStyle     lipgloss.Style
	newStyle     lipgloss.Style
	summaryStyle lipgloss.Style
}

// NewReporter creates a Reporter writing to w. With color disabled the
// output is plain text regardless of the terminal.
func NewReporter(w io.Writer, color bool) *Reporter {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		w:            w,
		fileStyle:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		labelStyle:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		oldStyle:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		newStyle:     r.NewStyle().Foreground(lipgloss.Color("#73F59F")),
		summaryStyle: r.NewStyle().Bold(true),
	}
}

// File prints the header line for a file with pending changes.
func (r *Reporter) File(path string) {
	fmt.Fprintf(r.w, "%s\n", r.fileStyle.Render("File: "+path+":"))
}

// Change prints one change line.
func (r *Reporter) Change(c Change) {
	fmt.Fprintf(r.w, "  %s %s --> %s\n",
		r.labelStyle.Render(c.Property.Label+":"),
		r.oldStyle.Render(c.Current.Or(Placeholder)),
		r.newStyle.Render(c.New.Or(Placeholder)),
	)
}

// EndFile prints the blank line separating files.
func (r *Reporter) EndFile() {
	fmt.Fprintln(r.w)
}

// Changes prints a complete file block: header, change lines and separator.
func (r *Reporter) Changes(path string, changes []Change) {
	r.File(path)
	for _, c := range changes {
		r.Change(c)
	}
	r.EndFile()
}

// Summary prints the final count line. In a test run the number of files
// that would change is printed as well.
func (r *Reporter) Summary(s Summary, dryRun bool) {
	fmt.Fprintln(r.w, r.summaryStyle.Render(fmt.Sprintf("%d/%d files changed", s.Changed, s.Total)))
	if dryRun {
		fmt.Fprintf(r.w, "%d/%d files would change (test run, nothing written)\n", s.Pending, s.Total)
	}
}

// Line formats a change as plain text, as used by the interactive UI.
func Line(c Change) string {
	return fmt.Sprintf("%s: %s --> %s", c.Property.Label, c.Current.Or(Placeholder), c.New.Or(Placeholder))
}
