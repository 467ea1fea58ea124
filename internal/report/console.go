package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/alexshd/asymptote"
)

const clearLine = "\r\033[K"

// Thresholds for coloring R².
const (
	goodFit = 0.95
	fairFit = 0.90
)

// Console writes run progress and summaries to a terminal or plain writer.
//
// On a terminal each progress update rewrites the current line; otherwise
// only final summaries are written.
type Console struct {
	w    io.Writer
	live bool

	name    *color.Color
	good    *color.Color
	fair    *color.Color
	poor    *color.Color
	dim     *color.Color
	heading *color.Color
}

// NewConsole wraps w. Live line rewriting and colors are enabled only when
// w is a terminal; noColor forces colors off.
func NewConsole(w io.Writer, noColor bool) *Console {
	tty := IsTerminal(w)
	c := &Console{
		w:       w,
		live:    tty,
		name:    color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		fair:    color.New(color.FgYellow),
		poor:    color.New(color.FgRed),
		dim:     color.New(color.Faint),
		heading: color.New(color.Bold),
	}

	for _, col := range []*color.Color{c.name, c.good, c.fair, c.poor, c.dim, c.heading} {
		if noColor || !tty {
			col.DisableColor()
		} else {
			col.EnableColor()
		}
	}
	return c
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Progress rewrites the live line with the latest fit.
func (c *Console) Progress(p asymptote.Progress) {
	if !c.live {
		return
	}
	fmt.Fprintf(c.w, "%s%s: %s %s", clearLine, c.name.Sprint(p.Name), c.fitColor(p.Results).Sprint(Fit(p.Results)),
		c.dim.Sprintf("(n=%d, %d samples, %s)", p.Sample.Size, p.Samples, p.Elapsed.Round(10*time.Millisecond)))
}

// Finish writes the final line for a run. expected is the theoretical
// dominant component, or -1 when unknown.
func (c *Console) Finish(r asymptote.Report, expected asymptote.Component, err error) {
	if c.live {
		fmt.Fprint(c.w, clearLine)
	}

	line := fmt.Sprintf("%s: ", c.name.Sprint(r.Name))
	if r.Results.Samples == 0 {
		line += c.poor.Sprint("no fit")
	} else {
		line += c.fitColor(r.Results).Sprint(Fit(r.Results))
	}
	line += c.dim.Sprintf("  [%d samples in %s", len(r.Samples), r.Elapsed.Round(10*time.Millisecond))
	if expected.Valid() {
		line += c.dim.Sprintf(", expected %s", expected)
	}
	line += c.dim.Sprint("]")
	if err != nil {
		line += " " + c.poor.Sprint(err.Error())
	}
	fmt.Fprintln(c.w, line)
}

// Ranking writes single-component fits, best first.
func (c *Console) Ranking(fits []asymptote.Fit) {
	fmt.Fprintln(c.w, c.heading.Sprint("Component   R²      Coefficient   Constant"))
	fmt.Fprintln(c.w, strings.Repeat("-", 46))
	for i, f := range fits {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		row := fmt.Sprintf("%s %-9s %-7s %-13s %s", marker, f.Component, RSquared(f.Results),
			Coefficient(f.Results.Components[f.Component]), Coefficient(f.Results.Constant))
		fmt.Fprintln(c.w, c.fitColor(f.Results).Sprint(row))
	}
}

// Workloads lists names with their expected complexity.
func (c *Console) Workloads(rows [][3]string) {
	for _, r := range rows {
		fmt.Fprintf(c.w, "%s %-7s %s\n", c.name.Sprintf("%-16s", r[0]), r[1], c.dim.Sprint(r[2]))
	}
}

func (c *Console) fitColor(r asymptote.Results) *color.Color {
	switch {
	case r.Degenerate:
		return c.fair
	case r.RSquared >= goodFit:
		return c.good
	case r.RSquared >= fairFit:
		return c.fair
	default:
		return c.poor
	}
}
