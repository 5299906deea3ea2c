package diag

import (
	"fmt"

	"calfmt/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Error renders the diagnostic as a single line so it can travel as an error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s %s at %s: %s", d.Severity, d.Code.ID(), d.Primary, d.Message)
}
