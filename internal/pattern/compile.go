package pattern

import (
	"errors"
	"fmt"
	"strings"

	"calfmt/internal/diag"
	"calfmt/internal/field"
	"calfmt/internal/format"
	"calfmt/internal/iso"
	"calfmt/internal/lexer"
	"calfmt/internal/source"
	"calfmt/internal/token"
	"calfmt/internal/trace"
)

type Options struct {
	Reporter diag.Reporter // receives the failing diagnostic; may be nil
	Tracer   trace.Tracer  // compile spans; nil disables tracing
	Locale   string        // text catalog used by Compile
	// Zones validates zone ids; nil uses a shared iso.Zones.
	Zones field.ZoneProvider
}

var defaultZones = iso.NewZones()

// compiler is the state for one pattern string.
type compiler struct {
	lx    *lexer.Lexer
	b     *format.Builder
	src   string
	depth int // optional groups opened by this pattern
	elems int
}

// Append compiles src into b. On failure b is left as it was before the call.
func Append(b *format.Builder, src string, opts Options) error {
	span := trace.Begin(opts.Tracer, trace.ScopeCompile, "compile", 0).WithExtra("pattern", src)
	cp := b.Checkpoint()
	c := &compiler{lx: lexer.New(src, lexer.Options{}), b: b, src: src}
	if err := c.run(); err != nil {
		_ = b.Restore(cp) // cp comes from b
		if opts.Reporter != nil {
			d := err.Diagnostic()
			opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
		}
		span.End(err.Error())
		return err
	}
	span.End(fmt.Sprintf("%d elements", c.elems))
	return nil
}

// Compile builds a formatter for src with the locale's text catalog and the
// zone provider attached.
func Compile(src string, opts Options) (*format.Formatter, error) {
	b := format.NewBuilder()
	if err := Append(b, src, opts); err != nil {
		return nil, err
	}
	zones := opts.Zones
	if zones == nil {
		zones = defaultZones
	}
	f := b.ToFormatter().
		WithText(iso.NewText(opts.Locale)).
		WithZones(zones).
		WithTracer(opts.Tracer)
	return f, nil
}

// MustCompile is Compile with default options that panics on error.
func MustCompile(src string) *format.Formatter {
	f, err := Compile(src, Options{})
	if err != nil {
		panic(err)
	}
	return f
}

func (c *compiler) run() *format.ConstructionError {
	for {
		tok := c.lx.Next()
		switch tok.Kind {
		case token.EOF:
			return nil
		case token.Invalid:
			return c.errAt(diag.LexUnterminatedQuote, tok.Span, "unterminated quoted literal")
		case token.Quoted, token.Char:
			if err := c.b.AppendLiteral(tok.Value); err != nil {
				return c.wrap(err, tok.Span)
			}
			c.elems++
		case token.LBracket:
			c.b.OptionalStart()
			c.depth++
		case token.RBracket:
			if c.depth == 0 {
				return c.errAt(diag.SynUnmatchedBracket, tok.Span, "']' without a preceding '['")
			}
			if err := c.b.OptionalEnd(); err != nil {
				return c.wrap(err, tok.Span)
			}
			c.depth--
		case token.Letters:
			if err := c.letters(tok); err != nil {
				return err
			}
		default:
			return c.errAt(diag.SynInfo, tok.Span, fmt.Sprintf("unexpected %s token", tok.Kind))
		}
	}
}

func (c *compiler) letters(tok token.Token) *format.ConstructionError {
	kind := letterKinds[tok.Letter]
	switch kind {
	case letterNone:
		return c.errAt(diag.SynUnknownLetter, tok.Span, fmt.Sprintf("unknown pattern letter '%c'", tok.Letter))
	case letterPad:
		return c.pad(tok)
	case letterFraction:
		return c.fraction(tok)
	}
	if tok.Count > kind.maxRun() {
		return c.errAt(diag.SynTooManyLetters, tok.Span, fmt.Sprintf("too many pattern letters: %s", tok.Text))
	}
	if err := c.element(tok, kind); err != nil {
		return c.wrap(err, tok.Span)
	}
	c.elems++
	return nil
}

func (c *compiler) element(tok token.Token, kind letterKind) error {
	b, n := c.b, tok.Count
	switch kind {
	case letterZoneText:
		style := field.Short
		if n >= 4 {
			style = field.Full
		}
		return b.AppendZoneText(style)
	case letterZoneID:
		b.AppendZoneID()
		return nil
	case letterOffsetZ:
		if n == 3 {
			return b.AppendOffset("+00:00", "+HH:MM")
		}
		return b.AppendOffset("+0000", "+HHMM")
	case letterOffsetX:
		return b.AppendOffset("Z", offsetX[n])
	}

	f, ok := iso.ByLetter(tok.Letter)
	if !ok {
		return fmt.Errorf("no field bound to letter '%c'", tok.Letter)
	}
	switch {
	case kind == letterAmPm, kind == letterText && n >= 3:
		return b.AppendTextStyle(f, textStyleFor(n))
	case n == 1:
		return b.AppendValue(f)
	case n == 2 && kind == letterYear:
		return b.AppendValueReduced(f, 2, 2000)
	case kind == letterYear:
		return b.AppendValueRange(f, n, 19, format.SignExceedsPad)
	default:
		return b.AppendValueWidth(f, n)
	}
}

// pad applies a run of p to the single field element that follows it.
func (c *compiler) pad(tok token.Token) *format.ConstructionError {
	next := c.lx.Peek()
	if next.Kind == token.EOF {
		return c.errAt(diag.SynDanglingPad, tok.Span, fmt.Sprintf("pad modifier %s is not followed by an element", tok.Text))
	}
	nk := letterKinds[next.Letter]
	if next.Kind != token.Letters || (!nk.fieldElement() && nk != letterFraction) {
		return c.errAt(diag.SynPadTarget, next.Span, fmt.Sprintf("pad modifier %s cannot apply to %q", tok.Text, next.Text))
	}
	if err := c.b.PadNext(tok.Count); err != nil {
		return c.wrap(err, tok.Span)
	}
	return c.letters(c.lx.Next())
}

// fraction compiles f or ff and the fraction-capable letter run after it.
func (c *compiler) fraction(tok token.Token) *format.ConstructionError {
	if tok.Count > letterFraction.maxRun() {
		return c.errAt(diag.SynFractionRun, tok.Span, fmt.Sprintf("fraction modifier must be f or ff, got %s", tok.Text))
	}
	next := c.lx.Peek()
	if next.Kind == token.EOF {
		return c.errAt(diag.SynDanglingFraction, tok.Span, fmt.Sprintf("fraction modifier %s is not followed by a field", tok.Text))
	}
	if next.Kind != token.Letters || !strings.ContainsRune(fractionLetters, rune(next.Letter)) {
		return c.errAt(diag.SynFractionTarget, next.Span,
			fmt.Sprintf("fraction modifier %s needs one of %s, got %q", tok.Text, fractionLetters, next.Text))
	}
	c.lx.Next()
	f, _ := iso.ByLetter(next.Letter)
	maxWidth := next.Count
	if tok.Count == 2 {
		maxWidth = 9
	}
	if err := c.b.AppendFraction(f, next.Count, maxWidth); err != nil {
		return c.wrap(err, tok.Span.Cover(next.Span))
	}
	c.elems++
	return nil
}

func (c *compiler) errAt(code diag.Code, sp source.Span, msg string) *format.ConstructionError {
	return &format.ConstructionError{Code: code, Msg: msg, Pattern: c.src, Span: sp}
}

// wrap locates a builder error in the pattern.
func (c *compiler) wrap(err error, sp source.Span) *format.ConstructionError {
	var ce *format.ConstructionError
	if !errors.As(err, &ce) {
		return c.errAt(diag.BldInfo, sp, err.Error())
	}
	out := *ce
	out.Pattern, out.Span = c.src, sp
	return &out
}
