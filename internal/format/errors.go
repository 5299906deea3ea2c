package format

import (
	"errors"
	"fmt"

	"calfmt/internal/diag"
	"calfmt/internal/source"
)

var (
	// ErrConstruction matches every *ConstructionError.
	ErrConstruction = errors.New("construction error")
	// ErrPrint matches every *PrintError.
	ErrPrint = errors.New("print error")
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")
)

// ConstructionError reports an invalid builder call or pattern.
// Pattern and Span are set when the failure comes from a pattern string.
type ConstructionError struct {
	Code    diag.Code
	Msg     string
	Pattern string
	Span    source.Span
}

func (e *ConstructionError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("%s: %s in pattern %q at %s", e.Code.ID(), e.Msg, e.Pattern, e.Span)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// Diagnostic converts the error for rendering against the pattern.
func (e *ConstructionError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.SevError, Code: e.Code, Message: e.Msg, Primary: e.Span}
}

func constructionErr(code diag.Code, format string, args ...any) *ConstructionError {
	return &ConstructionError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// PrintError reports a value that cannot be rendered.
type PrintError struct {
	Code  diag.Code
	Msg   string
	Field string
}

func (e *PrintError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code.ID(), e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *PrintError) Is(target error) bool { return target == ErrPrint }

// Diagnostic converts the error; print errors carry no span.
func (e *PrintError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.SevError, Code: e.Code, Message: e.Error()}
}

// ParseError reports text that does not match the pipeline. Pos is the byte
// offset of the failure and Parsed holds the fields set before it.
type ParseError struct {
	Code   diag.Code
	Msg    string
	Text   string
	Pos    int
	Parsed *Parsed
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at position %d in %q", e.Code.ID(), e.Msg, e.Pos, e.Text)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Diagnostic converts the error for rendering against the parsed text.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	end := e.Pos
	if end < len(e.Text) {
		end++
	}
	return diag.Diagnostic{Severity: diag.SevError, Code: e.Code, Message: e.Msg, Primary: source.Range(e.Pos, end)}
}
