package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/fjord/lang"
	"github.com/ardnew/fjord/lang/eval"
)

// styles color diagnostics. They are bound to the writer they render to,
// so output that is not a terminal stays plain.
type styles struct {
	severity lipgloss.Style
	message  lipgloss.Style
	location lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
	hint     lipgloss.Style
	name     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		severity: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		message:  r.NewStyle().Bold(true),
		location: r.NewStyle().Foreground(lipgloss.Color("6")),
		gutter:   r.NewStyle().Foreground(lipgloss.Color("8")),
		caret:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		hint:     r.NewStyle().Foreground(lipgloss.Color("8")),
		name:     r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// report writes err, raised while processing s, to w. Syntax and
// evaluation errors are shown with the offending source line.
func report(w io.Writer, s script, err error) {
	st := newStyles(w)

	var (
		parseErr *lang.ParseError
		evalErr  *eval.Error
	)

	switch {
	case errors.As(err, &parseErr):
		for _, d := range parseErr.Diagnostics() {
			st.diagnostic(w, "syntax error", s.name, d, nil)
		}

	case errors.As(err, &evalErr):
		d := lang.Diagnose(s.text, evalErr.Range, evalErr.Message())
		st.diagnostic(w, "error", s.name, d, evalErr.Suggestions)

	default:
		fmt.Fprintf(w, "%s: %s\n", st.severity.Render("error"), st.message.Render(err.Error()))
	}
}

// diagnostic renders one located message:
//
//	error: binding "fo" does not exist
//	  --> main.fj:2:1
//	  2 | $fo + 1
//	    | ^^^
//	  = did you mean foo?
func (st styles) diagnostic(w io.Writer, severity, name string, d lang.Diagnostic, hints []string) {
	var sb strings.Builder

	sb.WriteString(st.severity.Render(severity) + ": " + st.message.Render(d.Message) + "\n")
	sb.WriteString("  " + st.gutter.Render("-->") + " " +
		st.location.Render(name+":"+d.Position()) + "\n")

	source, marks, _ := strings.Cut(d.Snippet(), "\n")
	if bar := strings.Index(source, "|"); bar >= 0 {
		sb.WriteString(st.gutter.Render(source[:bar+1]) + source[bar+1:] + "\n")
	}

	if bar := strings.Index(marks, "|"); bar >= 0 {
		sb.WriteString(st.gutter.Render(marks[:bar+1]) + st.caret.Render(marks[bar+1:]) + "\n")
	}

	if len(hints) > 0 {
		named := make([]string, len(hints))
		for i, h := range hints {
			named[i] = st.name.Render(h)
		}

		sb.WriteString("  " + st.hint.Render("= did you mean") + " " +
			strings.Join(named, st.hint.Render(", ")) + st.hint.Render("?") + "\n")
	}

	_, _ = io.WriteString(w, sb.String())
}
