package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"calfmt/internal/diag"
	"calfmt/internal/source"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
	noteColor    = color.New(color.FgBlue)
)

// Pretty renders diagnostics in a human readable form.
// It walks bag.Items() (call bag.Sort() beforehand). For each diagnostic:
//
//	<label>:<col>: <SEV> <CODE>: <Message>
//	  <text>
//	  ^~~~
//
// followed by notes in the same shape when enabled.
func Pretty(w io.Writer, bag *diag.Bag, text string, opts PrettyOpts) {
	label := opts.Label
	if label == "" {
		label = "pattern"
	}
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}
	for _, d := range bag.Items() {
		sev := paint(severityColor(d.Severity), d.Severity.String())
		fmt.Fprintf(w, "%s:%d: %s %s: %s\n", label, column(text, d.Primary.Start), sev, d.Code.ID(), d.Message)
		writeSnippet(w, text, d.Primary, paint)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", paint(noteColor, "note:"), n.Msg)
			writeSnippet(w, text, n.Span, paint)
		}
	}
}

type diagnoser interface {
	Diagnostic() diag.Diagnostic
}

// PrettyError renders err like Pretty when it carries a diagnostic and
// reports whether it did. text is what the diagnostic span points into.
func PrettyError(w io.Writer, err error, text string, opts PrettyOpts) bool {
	var d diagnoser
	if !errors.As(err, &d) {
		return false
	}
	bag := diag.NewBag(1)
	bag.Add(d.Diagnostic())
	Pretty(w, bag, text, opts)
	return true
}

func writeSnippet(w io.Writer, text string, sp source.Span, paint func(*color.Color, string) string) {
	if text == "" {
		return
	}
	line := strings.ReplaceAll(text, "\n", " ")
	indent, marker := caret(line, sp)
	fmt.Fprintf(w, "  %s\n  %s%s\n", line, strings.Repeat(" ", indent), paint(caretColor, marker))
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
