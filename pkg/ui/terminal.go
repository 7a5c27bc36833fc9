package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	neonCyan    = lipgloss.Color("#00FFFF")
	neonMagenta = lipgloss.Color("#FF00FF")
	neonGreen   = lipgloss.Color("#39FF14")
	neonYellow  = lipgloss.Color("#FFFF00")
	alertRed    = lipgloss.Color("#FF0000")
	dimWhite    = lipgloss.Color("#B0B0B0")
)

// Printer writes styled messages for humans. Colors are dropped when the
// writer is not a terminal.
type Printer struct {
	w io.Writer

	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	failure   lipgloss.Style
	highlight lipgloss.Style
	dim       lipgloss.Style
	panel     lipgloss.Style
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)

	return &Printer{
		w:         w,
		title:     r.NewStyle().Foreground(neonCyan).Bold(true),
		label:     r.NewStyle().Foreground(neonCyan).Bold(true),
		value:     r.NewStyle().Foreground(neonYellow),
		success:   r.NewStyle().Foreground(neonGreen).Bold(true),
		warning:   r.NewStyle().Foreground(neonYellow),
		failure:   r.NewStyle().Foreground(alertRed).Bold(true),
		highlight: r.NewStyle().Foreground(neonMagenta),
		dim:       r.NewStyle().Foreground(dimWhite),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(neonMagenta).
			Padding(0, 1),
	}
}

// Stderr is the printer used by the interactive commands
func Stderr() *Printer {
	return NewPrinter(os.Stderr)
}

func (p *Printer) Title(msg string) {
	fmt.Fprintln(p.w, p.title.Render(msg))
}

func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.success.Render("✓ "+msg))
}

// Error prints msg, followed by err when given
func (p *Printer) Error(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	fmt.Fprintln(p.w, p.failure.Render("✗ "+msg))
}

func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, p.warning.Render("! "+msg))
}

// Info prints a label: value pair
func (p *Printer) Info(label, value string) {
	fmt.Fprintf(p.w, "%s: %s\n", p.label.Render(label), p.value.Render(value))
}

func (p *Printer) Highlight(msg string) {
	fmt.Fprintln(p.w, p.highlight.Render(msg))
}

func (p *Printer) Dim(msg string) {
	fmt.Fprintln(p.w, p.dim.Render(msg))
}

// Panel prints body inside a rounded border
func (p *Printer) Panel(body string) {
	fmt.Fprintln(p.w, p.panel.Render(strings.TrimRight(body, "\n")))
}

// Prompt prints msg without a newline, for input that follows on the same line
func (p *Printer) Prompt(msg string) {
	fmt.Fprint(p.w, p.label.Render(msg))
}
