package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/openkraft/luals-check/internal/domain"
)

const (
	indent = "    "
	bullet = "•"
	// minWrap keeps messages readable on absurdly narrow terminals.
	minWrap = 20
)

// Options configures diagnostic rendering.
type Options struct {
	// Color enables ANSI styling of severity labels and codes.
	Color bool
	// Width is the terminal width in columns; 0 means DefaultWidth.
	Width int
	// ProjectRoot is used to shorten related-information paths.
	ProjectRoot string
}

// DiagnosticRenderer formats findings as plain text with an optional color overlay.
type DiagnosticRenderer struct {
	opts   Options
	styles map[domain.Severity]lipgloss.Style
	code   lipgloss.Style
}

// NewDiagnosticRenderer creates a renderer. Styles are bound to their own
// lipgloss renderer so that color output does not depend on what
// lipgloss detects for the process stdout.
func NewDiagnosticRenderer(opts Options) *DiagnosticRenderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}

	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.ANSI)

	return &DiagnosticRenderer{
		opts: opts,
		styles: map[domain.Severity]lipgloss.Style{
			domain.SeverityError:       lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			domain.SeverityWarning:     lr.NewStyle().Foreground(lipgloss.Color("11")),
			domain.SeverityInformation: lr.NewStyle().Foreground(lipgloss.Color("15")),
			domain.SeverityHint:        lr.NewStyle().Foreground(lipgloss.Color("14")),
		},
		code: lr.NewStyle().Bold(true),
	}
}

// RenderResult renders every finding of a run, each preceded by a blank
// line. A trailing newline follows when the run failed, so the error
// message printed afterwards starts on its own line.
func (r *DiagnosticRenderer) RenderResult(res *domain.CheckResult) string {
	var b strings.Builder
	for _, f := range res.Findings {
		b.WriteString("\n")
		b.WriteString(r.RenderFinding(f))
	}
	if res.Failures > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFinding renders one diagnostic: a location header, the wrapped
// severity-prefixed message and any related locations that add information.
func (r *DiagnosticRenderer) RenderFinding(f domain.Finding) string {
	var b strings.Builder
	d := f.Diagnostic

	b.WriteString(f.File)
	b.WriteString(":")
	b.WriteString(d.Range.String())
	if d.Code != nil {
		b.WriteString(" [")
		b.WriteString(r.paint(r.code, d.Code.String()))
		b.WriteString("]")
	}
	b.WriteString("\n")

	b.WriteString(r.wrap(r.severityLabel(d.Severity) + ": " + d.Message))
	b.WriteString("\n")

	for _, info := range d.RelatedInformation {
		if d.IsRedundant(info) {
			continue
		}
		b.WriteString(indent + bullet + " ")
		b.WriteString(r.location(info.Location))
		if info.Message != "" {
			b.WriteString(": ")
			b.WriteString(info.Message)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (r *DiagnosticRenderer) severityLabel(sev *domain.Severity) string {
	if sev == nil {
		return ""
	}
	style, ok := r.styles[*sev]
	if !ok {
		return ""
	}
	return r.paint(style, sev.String())
}

// paint is the only place styling is applied; everything else is plain text.
func (r *DiagnosticRenderer) paint(style lipgloss.Style, s string) string {
	if !r.opts.Color {
		return s
	}
	return style.Render(s)
}

func (r *DiagnosticRenderer) location(loc domain.Location) string {
	display := loc.URI
	if r.opts.ProjectRoot != "" {
		if rel, err := domain.Relativize(loc.URI, r.opts.ProjectRoot); err == nil {
			display = rel
		}
	}
	return display + ":" + loc.Range.String()
}

// wrap fills text to the terminal width less one indent, with every line
// indented. Escape sequences do not count towards the width.
func (r *DiagnosticRenderer) wrap(text string) string {
	limit := r.opts.Width - 2*len(indent)
	if limit < minWrap {
		limit = minWrap
	}

	lines := strings.Split(ansi.Wrap(text, limit, ""), "\n")
	for i, line := range lines {
		lines[i] = indent + strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
