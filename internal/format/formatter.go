package format

import (
	"io"

	"calfmt/internal/field"
	"calfmt/internal/trace"
)

// Formatter is a compiled, immutable pipeline. It is safe for concurrent
// use; the With* methods return modified copies.
type Formatter struct {
	root          *node
	caseSensitive bool
	strict        bool
	text          field.TextProvider
	zones         field.ZoneProvider
	tracer        trace.Tracer
}

func newFormatter(root *node) *Formatter {
	return &Formatter{
		root:          root,
		caseSensitive: true,
		strict:        true,
		tracer:        trace.Nop,
	}
}

// String renders the pipeline in its canonical form.
func (f *Formatter) String() string {
	return f.root.String()
}

// WithText returns a copy using p for textual fields.
func (f *Formatter) WithText(p field.TextProvider) *Formatter {
	c := *f
	c.text = p
	return &c
}

// WithZones returns a copy using p to validate and name zones.
func (f *Formatter) WithZones(p field.ZoneProvider) *Formatter {
	c := *f
	c.zones = p
	return &c
}

// WithTracer returns a copy that reports calls to t.
func (f *Formatter) WithTracer(t trace.Tracer) *Formatter {
	c := *f
	if t == nil {
		t = trace.Nop
	}
	c.tracer = t
	return &c
}

// WithParseDefaults returns a copy with the initial parse flags changed.
// Control nodes in the pipeline still override them.
func (f *Formatter) WithParseDefaults(caseSensitive, strict bool) *Formatter {
	c := *f
	c.caseSensitive = caseSensitive
	c.strict = strict
	return &c
}

// Text returns the configured text provider, or nil.
func (f *Formatter) Text() field.TextProvider { return f.text }

// Zones returns the configured zone provider, or nil.
func (f *Formatter) Zones() field.ZoneProvider { return f.zones }

// Format prints cal.
func (f *Formatter) Format(cal field.Calendrical) (string, error) {
	span := trace.Begin(f.tracer, trace.ScopeCall, "format", 0)
	out, err := f.format(cal)
	if err != nil {
		span.End(err.Error())
		return "", err
	}
	span.End(out)
	return out, nil
}

// FormatTo prints cal into w.
func (f *Formatter) FormatTo(w io.Writer, cal field.Calendrical) error {
	out, err := f.Format(cal)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Parse parses the whole of text.
func (f *Formatter) Parse(text string) (*Parsed, error) {
	return f.parse(text, 0, true)
}

// ParseAt parses from pos and stops where the pipeline ends; the end
// position is reported in Parsed.Pos.
func (f *Formatter) ParseAt(text string, pos int) (*Parsed, error) {
	return f.parse(text, pos, false)
}
